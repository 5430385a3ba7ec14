package models

import "time"

// Project categories conventionally offered by the creation form.
const (
	CategoryWeb     = "Web"
	CategoryMobile  = "Mobile"
	CategoryBackend = "Backend"
	CategoryDesktop = "Desktop"
	CategoryOther   = "Other"
)

// Project is a portfolio entry shown in the gallery.
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	ImageURI     *string   `gorm:"size:512" json:"image_uri,omitempty"`
	Technologies string    `gorm:"type:text;not null" json:"technologies"`
	GithubURL    *string   `gorm:"size:512" json:"github_url,omitempty"`
	Category     string    `gorm:"size:64;not null;index" json:"category"`
	IsFavorite   bool      `gorm:"not null;default:false;index" json:"is_favorite"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TechnologiesList returns the technology tags in stored order.
func (p Project) TechnologiesList() []string {
	return SplitList(p.Technologies)
}

// IsValid requires title, description, category and technologies.
func (p Project) IsValid() bool {
	return !isBlank(p.Title) &&
		!isBlank(p.Description) &&
		!isBlank(p.Category) &&
		!isBlank(p.Technologies)
}
