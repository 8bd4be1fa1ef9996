package notify

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(m Message) error
}

// ===============================
// SMTP
// ===============================

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *SMTPMailer) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	return s.dialer.DialAndSend(msg)
}

// ===============================
// Sem SMTP configurado
// ===============================

// LogMailer só registra a mensagem; usado quando SMTP_HOST está vazio.
type LogMailer struct{}

func (LogMailer) Send(m Message) error {
	logrus.WithFields(logrus.Fields{
		"to":      m.To,
		"subject": m.Subject,
	}).Info("mail (log only)")
	return nil
}
