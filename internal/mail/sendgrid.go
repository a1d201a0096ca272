// internal/mail/sendgrid.go

package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
}

// NewSendgridSender delivers through the SendGrid v3 API.
func NewSendgridSender(apiKey, fromEmail string) Sender {
	return &sendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *sendgridSender) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail("School Planner", s.fromEmail)
	to := sgmail.NewEmail("", msg.To)
	m := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
