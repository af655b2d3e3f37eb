// Package mailer sends transactional email for the farm store. All sends are
// best-effort from the caller's point of view; the farm's orders inbox is
// BCC'd on every message so staff can follow along.
package mailer

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender delivers mail through an SMTP relay (gmail or zoho in
// production).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	bcc    string
}

func NewSMTPSender(host string, port int, username, password, from, bcc string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		bcc:    bcc,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	if s.bcc != "" {
		m.SetHeader("Bcc", s.bcc)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

// LogSender is used in development when no SMTP relay is configured. It logs
// the message instead of delivering it.
type LogSender struct{}

func (LogSender) Send(to, subject, htmlBody string) error {
	log.Printf("mail (not sent): to=%s subject=%q body=%d bytes", to, subject, len(htmlBody))
	return nil
}
