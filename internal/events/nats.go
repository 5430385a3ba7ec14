package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

type envelope struct {
	Source string `json:"source"`
	Change Change `json:"change"`
}

// NATSBus mirrors local changes to a NATS subject and replays changes made by
// other processes sharing the same store.
type NATSBus struct {
	local   *LocalBus
	conn    *nats.Conn
	subject string
	nodeID  string
	logger  zerolog.Logger
}

// NewNATSBus wraps local with a NATS fan-out on subject.
func NewNATSBus(local *LocalBus, conn *nats.Conn, subject string, logger zerolog.Logger) *NATSBus {
	if subject == "" {
		subject = "portfolio.changes"
	}
	return &NATSBus{
		local:   local,
		conn:    conn,
		subject: subject,
		nodeID:  uuid.NewString(),
		logger:  logger.With().Str("component", "nats_bus").Logger(),
	}
}

// Publish delivers locally first, then forwards to NATS.
func (b *NATSBus) Publish(ctx context.Context, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	if err := b.local.Publish(ctx, change); err != nil {
		return err
	}
	if b.conn == nil {
		return nil
	}

	payload, err := json.Marshal(envelope{Source: b.nodeID, Change: change})
	if err != nil {
		return err
	}
	return b.conn.Publish(b.subject, payload)
}

// Subscribe subscribes to the local broker.
func (b *NATSBus) Subscribe() (<-chan Change, func()) {
	return b.local.Subscribe()
}

// Start consumes remote changes until ctx is done.
func (b *NATSBus) Start(ctx context.Context) error {
	if b.conn == nil {
		return errors.New("nats connection is not configured")
	}

	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		b.handle(msg.Data)
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			b.logger.Warn().Err(err).Msg("failed to drain change subscription")
		}
	}()
	return nil
}

func (b *NATSBus) handle(payload []byte) {
	var event envelope
	if err := json.Unmarshal(payload, &event); err != nil {
		b.logger.Warn().Err(err).Msg("invalid change payload")
		return
	}
	if event.Source == b.nodeID {
		return
	}
	b.local.broadcast(event.Change)
}
