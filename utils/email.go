package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 465
	}
	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, from, os.Getenv("SMTP_PASSWORD"))

	return d.DialAndSend(m)
}

// SendEmailAttachment mails a file, used by the backup export-by-mail flow.
func SendEmailAttachment(to, subject, body, path string) error {
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(path)

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 465
	}
	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, from, os.Getenv("SMTP_PASSWORD"))

	return d.DialAndSend(m)
}
