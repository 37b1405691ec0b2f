// Package mail delivers finished meeting artifacts over SMTP.
package mail

import (
	"fmt"
	"os"

	gomail "github.com/wneessen/go-mail"

	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting"
)

// Mailer sends a meeting summary to a preset recipient.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	UseTLS   bool
}

// Send delivers the summary body with the artifact attached. An
// incomplete configuration is reported before any connection is made.
func (m *Mailer) Send(subject, body, attachmentPath string) error {
	if m.Host == "" || m.Port <= 0 || m.From == "" || m.To == "" {
		return &meeting.ConfigurationError{Msg: "email configuration is incomplete; cannot send message"}
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if attachmentPath != "" {
		if _, err := os.Stat(attachmentPath); err == nil {
			msg.AttachFile(attachmentPath)
		}
	}

	opts := []gomail.Option{
		gomail.WithPort(m.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.Username),
		gomail.WithPassword(m.Password),
	}
	if m.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
