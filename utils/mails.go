package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendMail sends an HTML email through the configured SMTP relay. Failures are
// logged and swallowed: a lost receipt must never fail the payment flow.
func SendMail(email string, subject string, htmlBody string) {
	if email == "" {
		return
	}

	from := os.Getenv("GOOGLE_SMTP_FROM")
	password := os.Getenv("GOOGLE_SMTP_MDP")
	if from == "" || password == "" {
		LogInfo("SMTP credentials not configured, skipping email to " + email)
		return
	}

	host := os.Getenv("GOOGLE_SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("GOOGLE_SMTP_PORT")); err == nil {
		port = p
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(host, port, from, password)
	if err := d.DialAndSend(m); err != nil {
		LogError(err, "Error sending email to "+email)
		return
	}

	LogSuccess("Email sent to " + email)
}
