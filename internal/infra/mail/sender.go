package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "no-reply@hireloop.io"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendConfirmationRequest asks the sender of a scheduling-looking email to
// confirm the call booking.
func (s *EmailSender) SendConfirmationRequest(to, contactName, subject string) error {
	data := ConfirmationEmailData{
		ContactName: contactName,
		Subject:     subject,
	}

	tmplPath := filepath.Join("templates", "confirmation.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("email template read failed: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("email template render failed: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Re: %s - please confirm the call", subject))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
