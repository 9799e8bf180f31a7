// Package mailer is the outbound email channel. Delivery itself happens
// outside this service: the production implementation hands messages to a
// message broker, the dev implementation writes them to the log.
package mailer

import (
	"context"
	"log/slog"
)

type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// LogMailer logs outbound mail instead of delivering it. Used in dev and in
// tests, and as the fallback when no broker is configured.
type LogMailer struct {
	Log *slog.Logger
}

func (l *LogMailer) Send(_ context.Context, m Message) error {
	l.Log.Info("outbound mail", "to", m.To, "subject", m.Subject, "body", m.Body)
	return nil
}
