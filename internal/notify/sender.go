// Package notify delivers best-effort operator notifications. Delivery
// runs off the request path; failures are logged, never propagated.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender pushes one message to the operator channel.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// SendGridSender emails the operator inbox through SendGrid.
type SendGridSender struct {
	apiKey string
	from   string
	to     string
}

func NewSendGrid(apiKey, from, to string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey, from: from, to: to}
}

func (s *SendGridSender) Send(_ context.Context, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	message := mail.NewSingleEmail(
		mail.NewEmail("Flower Shop", s.from),
		subject,
		mail.NewEmail("", s.to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)
	resp, err := sendgrid.NewSendClient(s.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogSender writes notifications to the process log. Used when no
// SendGrid key is configured, so local runs still show order traffic.
type LogSender struct {
	Logger *log.Logger
}

func (s *LogSender) Send(_ context.Context, subject, body string) error {
	s.Logger.Printf("notification: %s\n%s", subject, body)
	return nil
}
