package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/recipe-api/internal/logging"
)

// AuditConsumer reads events from the queue and appends one line per event
// to an audit log file.
type AuditConsumer struct {
	URL     string
	Queue   string
	LogPath string
	Log     logging.Logger
}

// Run connects to the broker and consumes until ctx is cancelled. Connection
// failures are retried with exponential backoff capped at 30s.
func (a *AuditConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(a.URL)
		if err != nil {
			a.Log.Warn(ctx, "audit consumer: dial failed", "err", err, "retry_in", backoff.String())
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = a.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.Log.Warn(ctx, "audit consumer: consume loop ended, reconnecting", "err", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (a *AuditConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		a.Log.Warn(ctx, "audit consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(a.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(a.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := a.handle(d.Body); err != nil {
				a.Log.Error(ctx, "audit consumer: handle message failed", "err", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (a *AuditConsumer) handle(body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(filepath.Dir(a.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(a.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatAuditLine(ev)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// FormatAuditLine renders ev as a single human-friendly line.
func FormatAuditLine(ev Event) string {
	switch ev.Type {
	case EventUserCreated:
		return fmt.Sprintf("[%s] User created | event_id=%s | user_id=%d | email=%q | staff=%t\n",
			ev.OccurredAt, ev.ID, ev.UserID, ev.Email, ev.Staff)
	case EventTagCreated:
		return fmt.Sprintf("[%s] Tag created | event_id=%s | user_id=%d | tag_id=%d | name=%q\n",
			ev.OccurredAt, ev.ID, ev.UserID, ev.TagID, ev.TagName)
	}
	return fmt.Sprintf("[%s] %s | event_id=%s | user_id=%d\n", ev.OccurredAt, ev.Type, ev.ID, ev.UserID)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
