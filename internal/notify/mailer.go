package notify

import (
	"fmt"

	"github.com/anmshpython/to-do-list/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// Sender relays a contact-form submission to the configured destination.
type Sender interface {
	Send(name, email, phone, message string) error
}

// Mailer sends contact notifications over SMTP (STARTTLS on the usual 587).
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer returns a Mailer for the configured account.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Address, cfg.Password),
		from:   cfg.Address,
		to:     cfg.To,
	}
}

// Send relays one formatted message. Errors are returned for logging; the
// caller decides what the submitter sees.
func (m *Mailer) Send(name, email, phone, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "New Message")
	msg.SetBody("text/plain", FormatContact(name, email, phone, message))
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// FormatContact renders the contact body with the labeled lines the
// notification inbox expects.
func FormatContact(name, email, phone, message string) string {
	return fmt.Sprintf("Name: %s\nemail: %s\nPhone: %s\nMassage: %s", name, email, phone, message)
}
