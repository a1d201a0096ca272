// internal/mail/console.go

package mail

import (
	"context"
	"log/slog"
)

type consoleSender struct{}

// NewConsoleSender logs messages instead of delivering them.
func NewConsoleSender() Sender { return consoleSender{} }

func (consoleSender) Send(_ context.Context, msg Message) error {
	slog.Info("mail (console sender)", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
