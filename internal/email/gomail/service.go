package gomail

import (
	"context"

	"github.com/go-gomail/gomail"
	"github.com/webfolio/webfolio/internal/email"
)

type Service struct {
	d *gomail.Dialer
}

func NewService(dialer *gomail.Dialer) *Service {
	return &Service{
		d: dialer,
	}
}

func (svc *Service) SendMail(_ context.Context, mail email.Mail) error {
	from := mail.From
	if from == "" {
		from = svc.d.Username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/html", string(mail.Body))

	return svc.d.DialAndSend(m)
}
