package mailer

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"hostelku_backend/internals/configs"
)

type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Mailer sends HTML mail over SMTP. Per-message failures are returned to the
// caller; batch jobs collect them instead of aborting.
type Mailer interface {
	Send(to, subject, html string, attachments ...Attachment) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewFromEnv() Mailer {
	if configs.SMTPHost == "" {
		log.Println("[MAIL] SMTP not configured, outgoing mail disabled")
		return disabledMailer{}
	}
	port, err := strconv.Atoi(configs.SMTPPort)
	if err != nil {
		port = 587
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(configs.SMTPHost, port, configs.SMTPUser, configs.SMTPPassword),
		from:   configs.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, html string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	for _, att := range attachments {
		content := att.Content
		msg.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(content))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.ContentType}}),
		)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

type disabledMailer struct{}

func (disabledMailer) Send(to, subject, html string, attachments ...Attachment) error {
	return fmt.Errorf("smtp not configured, cannot send to %s", to)
}
