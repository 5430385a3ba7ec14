package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
)

// ContactMessage is the local copy of a message sent through the contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:160;not null" json:"email"`
	Phone     *string   `gorm:"size:32" json:"phone,omitempty"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// IsEmailValid checks the email format.
func (m ContactMessage) IsEmailValid() bool {
	return validation.IsValidEmail(m.Email)
}

// IsPhoneValid accepts an absent phone.
func (m ContactMessage) IsPhoneValid() bool {
	if m.Phone == nil {
		return true
	}
	return validation.IsValidPhone(*m.Phone)
}

// IsValid aggregates every field rule.
func (m ContactMessage) IsValid() bool {
	return !isBlank(m.Name) &&
		utf8.RuneCountInString(m.Name) >= 3 &&
		m.IsEmailValid() &&
		!isBlank(m.Subject) &&
		utf8.RuneCountInString(m.Subject) >= 5 &&
		!isBlank(m.Message) &&
		utf8.RuneCountInString(m.Message) >= 10 &&
		m.IsPhoneValid()
}

// HasLocation reports whether both coordinates are present.
func (m ContactMessage) HasLocation() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// FormattedLocation renders the coordinates for display.
func (m ContactMessage) FormattedLocation() string {
	if !m.HasLocation() {
		return "No location"
	}
	return fmt.Sprintf("Lat: %.6f, Lng: %.6f", *m.Latitude, *m.Longitude)
}

// OptionalString returns nil for blank input and a pointer to the trimmed value otherwise.
func OptionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
