package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email through the configured SMTP server.
// When SMTP is not configured the message is dropped with a debug log,
// so notification failures never block a request.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, dropping email to %s: %s", to, subject)
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendSwapRequestEmail notifies an item owner about a new swap request
func SendSwapRequestEmail(to, itemTitle, requesterName string) error {
	body := fmt.Sprintf(`
		<h2>New swap request on ReWear</h2>
		<p><b>%s</b> wants to swap for your item <b>%s</b>.</p>
		<p>Log in to review and respond to the request.</p>
	`, requesterName, itemTitle)
	return SendEmail(to, "New swap request for "+itemTitle, body)
}

// SendSwapDecisionEmail notifies a requester that their swap was decided
func SendSwapDecisionEmail(to, itemTitle, decision string) error {
	body := fmt.Sprintf(`
		<h2>Your swap request was %s</h2>
		<p>The owner has %s your request for <b>%s</b>.</p>
	`, decision, decision, itemTitle)
	return SendEmail(to, fmt.Sprintf("Swap request %s: %s", decision, itemTitle), body)
}

// SendItemReviewEmail notifies an owner about the outcome of listing review
func SendItemReviewEmail(to, itemTitle, outcome, detail string) error {
	body := fmt.Sprintf(`
		<h2>Your listing was %s</h2>
		<p>Your item <b>%s</b> was %s.</p>
		<p>%s</p>
	`, outcome, itemTitle, outcome, detail)
	return SendEmail(to, fmt.Sprintf("Listing %s: %s", outcome, itemTitle), body)
}
