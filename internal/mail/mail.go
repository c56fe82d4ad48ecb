package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender delivers a single HTML email. Implementations are best-effort; callers
// treat failures as log-only.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends through a plain-auth SMTP relay.
type SMTPSender struct {
	name     string
	address  string
	password string
	host     string
	port     string
}

func NewSMTPSender(name, address, password, host, port string) *SMTPSender {
	return &SMTPSender{
		name:     name,
		address:  address,
		password: password,
		host:     host,
		port:     port,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.name, s.address)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	auth := smtp.PlainAuth("", s.address, s.password, s.host)
	return e.Send(s.host+":"+s.port, auth)
}
