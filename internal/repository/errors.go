package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/observability"
)

var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrMissingID indicates an update was requested for a record without identity.
	ErrMissingID = errors.New("record id is required")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// notifier records mutation outcomes and announces committed changes.
type notifier struct {
	table     string
	publisher events.Publisher
	logger    zerolog.Logger
}

func newNotifier(table string, publisher events.Publisher, logger zerolog.Logger) notifier {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return notifier{
		table:     table,
		publisher: publisher,
		logger:    logger.With().Str("component", table+"_repository").Logger(),
	}
}

func (n notifier) done(ctx context.Context, op string, id uint, err error) error {
	if err != nil {
		observability.StoreMutations().WithLabelValues(n.table, op, "error").Inc()
		return err
	}
	observability.StoreMutations().WithLabelValues(n.table, op, "success").Inc()

	if pubErr := n.publisher.Publish(ctx, events.Change{Table: n.table, Op: op, ID: id}); pubErr != nil {
		n.logger.Warn().Err(pubErr).Str("op", op).Uint("id", id).Msg("failed to publish store change")
	}
	return nil
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const newestFirst = "created_at DESC, id DESC"
