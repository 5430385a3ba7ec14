package controller

import (
	"context"
	"errors"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
)

// ErrInvalidRecord is reported when a record fails its own validation.
var ErrInvalidRecord = errors.New("record is missing required fields")

// ChangeSource delivers store change notifications.
type ChangeSource interface {
	Subscribe() (<-chan events.Change, func())
}

// observe calls refresh once, then again for every change on table until ctx ends.
func observe(ctx context.Context, source ChangeSource, table string, refresh func(context.Context)) {
	if source == nil {
		refresh(ctx)
		return
	}

	changes, cancel := source.Subscribe()
	refresh(ctx)

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				if change.Table == table {
					refresh(ctx)
				}
			}
		}
	}()
}
