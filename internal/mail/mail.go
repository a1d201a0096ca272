// internal/mail/mail.go

// Package mail sends the few transactional emails the planner needs
// (password resets). The sendgrid sender is used when a key is configured;
// otherwise the console sender logs the message so local development still
// shows the reset link.
package mail

import "context"

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender is any service that can deliver a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
