package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPMailer publishes mail messages to a durable RabbitMQ queue consumed by
// external delivery infrastructure. Publishing is best-effort: callers treat
// the channel as fire-and-forget and a failed publish never fails the
// request that triggered it.
type AMQPMailer struct {
	url   string
	queue string
}

func NewAMQPMailer(url, queue string) *AMQPMailer {
	return &AMQPMailer{url: url, queue: queue}
}

func (m *AMQPMailer) Send(ctx context.Context, msg Message) error {
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(m.queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		m.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
