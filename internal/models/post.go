package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultSummaryLength is the summary cut-off used by list views.
const DefaultSummaryLength = 150

// Post is a blog entry.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Summary     string    `gorm:"type:text" json:"summary"`
	Author      string    `gorm:"size:128;not null" json:"author"`
	ImageURI    *string   `gorm:"size:512" json:"image_uri,omitempty"`
	Tags        string    `gorm:"type:text" json:"tags"`
	IsPublished bool      `gorm:"not null;index" json:"is_published"`
	ViewCount   int       `gorm:"not null;default:0" json:"view_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// NewPost returns a post with the published flag defaulted on.
func NewPost(title, content, summary, author, tags string) Post {
	return Post{
		Title:       title,
		Content:     content,
		Summary:     summary,
		Author:      author,
		Tags:        tags,
		IsPublished: true,
	}
}

// TagsList returns the tags in stored order.
func (p Post) TagsList() []string {
	return SplitList(p.Tags)
}

// IsValid requires title (5+), content (20+) and author.
func (p Post) IsValid() bool {
	return !isBlank(p.Title) &&
		!isBlank(p.Content) &&
		!isBlank(p.Author) &&
		utf8.RuneCountInString(p.Title) >= 5 &&
		utf8.RuneCountInString(p.Content) >= 20
}

// ShortSummary prefers the summary and falls back to the content, truncating
// past maxLength characters with an ellipsis. A non-positive maxLength uses
// DefaultSummaryLength.
func (p Post) ShortSummary(maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}
	text := p.Content
	if strings.TrimSpace(p.Summary) != "" {
		text = p.Summary
	}
	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return text
}
