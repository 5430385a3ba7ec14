package dto

import (
	"time"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// MessageView is a locally stored contact message as shown in the inbox.
type MessageView struct {
	models.ContactMessage
	Location    string `json:"location"`
	DisplayDate string `json:"display_date"`
	SentToday   bool   `json:"sent_today"`
}

// NewMessageView converts a model into a DTO relative to now.
func NewMessageView(message models.ContactMessage, now time.Time) MessageView {
	return MessageView{
		ContactMessage: message,
		Location:       message.FormattedLocation(),
		DisplayDate:    utils.FormatDisplay(message.CreatedAt),
		SentToday:      utils.IsToday(message.CreatedAt, now),
	}
}

// NewMessageViewSlice converts a slice of models into DTOs.
func NewMessageViewSlice(messages []models.ContactMessage, now time.Time) []MessageView {
	out := make([]MessageView, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageView(message, now))
	}
	return out
}

// ReadRequest toggles a message's read flag.
type ReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// ImageResponse names a stored image.
type ImageResponse struct {
	Name      string `json:"name"`
	Exists    bool   `json:"exists"`
	RemoteURL string `json:"remote_url,omitempty"`
}
