package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

// InboxState is a snapshot of locally stored contact messages.
type InboxState struct {
	Messages      []models.ContactMessage `json:"messages"`
	Unread        []models.ContactMessage `json:"unread"`
	StatusMessage *string                 `json:"status_message,omitempty"`
}

// InboxController observes sent contact messages.
type InboxController struct {
	repo   repository.ContactMessageRepository
	source ChangeSource
	logger zerolog.Logger

	mu    sync.Mutex
	state InboxState
	subs  *broadcaster[InboxState]
}

// NewInboxController constructs a controller; call Start to begin observing.
func NewInboxController(repo repository.ContactMessageRepository, source ChangeSource, logger zerolog.Logger) *InboxController {
	return &InboxController{
		repo:   repo,
		source: source,
		logger: logger.With().Str("component", "inbox_controller").Logger(),
		state: InboxState{
			Messages: []models.ContactMessage{},
			Unread:   []models.ContactMessage{},
		},
		subs: newBroadcaster[InboxState](),
	}
}

// Start loads the messages and keeps them current until ctx ends.
func (c *InboxController) Start(ctx context.Context) {
	observe(ctx, c.source, events.TableContactMessages, c.refresh)
}

// State returns the current snapshot.
func (c *InboxController) State() InboxState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe streams a snapshot after every change.
func (c *InboxController) Subscribe() (<-chan InboxState, func()) {
	return c.subs.subscribe()
}

func (c *InboxController) update(fn func(*InboxState)) InboxState {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.subs.publish(c.state)
	return c.state
}

func (c *InboxController) refresh(ctx context.Context) {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load messages")
		c.update(func(s *InboxState) { s.StatusMessage = status("Error loading messages: " + err.Error()) })
		return
	}
	unread, err := c.repo.ListUnread(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load unread messages")
		c.update(func(s *InboxState) { s.StatusMessage = status("Error loading messages: " + err.Error()) })
		return
	}
	c.update(func(s *InboxState) {
		s.Messages = all
		s.Unread = unread
	})
}

// MarkRead sets the read flag.
func (c *InboxController) MarkRead(ctx context.Context, id uint, read bool) (InboxState, error) {
	if err := c.repo.SetRead(ctx, id, read); err != nil {
		return c.update(func(s *InboxState) { s.StatusMessage = status("Error updating message: " + err.Error()) }), err
	}
	c.refresh(ctx)
	return c.State(), nil
}

// Delete removes a message.
func (c *InboxController) Delete(ctx context.Context, id uint) (InboxState, error) {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.update(func(s *InboxState) { s.StatusMessage = status("Error deleting message: " + err.Error()) }), err
	}
	c.refresh(ctx)
	return c.update(func(s *InboxState) { s.StatusMessage = status("Message deleted") }), nil
}

// ClearStatus drops the status message.
func (c *InboxController) ClearStatus() InboxState {
	return c.update(func(s *InboxState) { s.StatusMessage = nil })
}

// UnreadCount returns the number of unread messages.
func (c *InboxController) UnreadCount(ctx context.Context) (int64, error) {
	return c.repo.CountUnread(ctx)
}
