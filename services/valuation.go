package services

import "github.com/meera-jk/ReWear/models"

// conditionPoints maps a condition tier to the item's point value.
// Valuation depends on condition alone; category, size and tags do not
// affect it.
var conditionPoints = map[string]int{
	models.ConditionLikeNew:   50,
	models.ConditionExcellent: 40,
	models.ConditionVeryGood:  30,
	models.ConditionGood:      20,
	models.ConditionFair:      10,
}

// DefaultItemPoints is used for unrecognized condition values
const DefaultItemPoints = 20

// PointsForCondition returns the point value for a condition tier. This
// is the single valuation entry point: item creation, condition updates
// and the approval payout all price through it.
func PointsForCondition(condition string) int {
	if points, ok := conditionPoints[condition]; ok {
		return points
	}
	return DefaultItemPoints
}
