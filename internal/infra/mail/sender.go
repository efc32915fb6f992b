package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/justtry/crm/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	approval *template.Template
	custom   *template.Template
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = "no-reply@justtry-crm.com"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		approval: template.Must(template.New("approval").Parse(approvalTemplate)),
		custom:   template.Must(template.New("custom").Parse(customTemplate)),
	}
}

// SendStatusEmail delivers the automated approval email and returns the email
// id recorded in the lead's history.
func (s *EmailSender) SendStatusEmail(ctx context.Context, to, name string, serviceType entity.ServiceType, status, leadID string) (string, error) {
	subject, headline, body := statusContent(string(serviceType), status)

	var html bytes.Buffer
	if err := s.approval.Execute(&html, statusEmailData{Name: name, Headline: headline, Body: body}); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}

	return s.send(ctx, to, subject, html.String())
}

func (s *EmailSender) SendCustomEmail(ctx context.Context, to, name, subject, htmlBody, leadID string) (string, error) {
	var html bytes.Buffer
	if err := s.custom.Execute(&html, customEmailData{Body: htmlBody}); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return s.send(ctx, to, subject, html.String())
}

// send respects the caller's deadline even though gomail itself has no
// context support: the dial-and-send runs in a goroutine and the slow path is
// abandoned on timeout.
func (s *EmailSender) send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	errCh := make(chan error, 1)
	go func() { errCh <- d.DialAndSend(m) }()

	select {
	case err := <-errCh:
		if err != nil {
			return "", fmt.Errorf("SMTP send: %w", err)
		}
		return fmt.Sprintf("smtp-%s-%d", uuid.New().String()[:8], time.Now().Unix()), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
