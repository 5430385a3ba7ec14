package dto

import (
	"strings"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// ProjectRequest is the create/update payload for a project.
type ProjectRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Description  string  `json:"description" validate:"required"`
	ImageURI     *string `json:"image_uri" validate:"omitempty,max=512"`
	Technologies string  `json:"technologies" validate:"required"`
	GithubURL    *string `json:"github_url" validate:"omitempty,url,max=512"`
	Category     string  `json:"category" validate:"required,max=64"`
	IsFavorite   *bool   `json:"is_favorite"`
}

// ToModel converts the payload into a new project.
func (r ProjectRequest) ToModel() models.Project {
	return r.Apply(models.Project{})
}

// Apply copies the payload onto a stored project. An omitted favorite flag
// keeps the stored value.
func (r ProjectRequest) Apply(project models.Project) models.Project {
	project.Title = strings.TrimSpace(r.Title)
	project.Description = strings.TrimSpace(r.Description)
	project.ImageURI = trimmed(r.ImageURI)
	project.Technologies = strings.TrimSpace(r.Technologies)
	project.GithubURL = trimmed(r.GithubURL)
	project.Category = strings.TrimSpace(r.Category)
	if r.IsFavorite != nil {
		project.IsFavorite = *r.IsFavorite
	}
	return project
}

// PostRequest is the create/update payload for a blog post.
type PostRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Content     string  `json:"content" validate:"required"`
	Summary     string  `json:"summary"`
	Author      string  `json:"author" validate:"required,max=128"`
	ImageURI    *string `json:"image_uri" validate:"omitempty,max=512"`
	Tags        string  `json:"tags"`
	IsPublished *bool   `json:"is_published"`
}

// ToModel converts the payload into a new post. Posts are published unless
// the payload says otherwise.
func (r PostRequest) ToModel() models.Post {
	return r.Apply(models.NewPost(r.Title, r.Content, r.Summary, r.Author, r.Tags))
}

// Apply copies the payload onto a stored post. The view counter is never
// touched and an omitted publish flag keeps the stored value.
func (r PostRequest) Apply(post models.Post) models.Post {
	post.Title = r.Title
	post.Content = r.Content
	post.Summary = r.Summary
	post.Author = r.Author
	post.Tags = r.Tags
	post.ImageURI = trimmed(r.ImageURI)
	if r.IsPublished != nil {
		post.IsPublished = *r.IsPublished
	}
	return post
}

// ProjectResponse adds the split technology list to a project.
type ProjectResponse struct {
	models.Project
	TechnologyList []string `json:"technology_list"`
}

// NewProjectResponse converts a model into a DTO.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{Project: project, TechnologyList: project.TechnologiesList()}
}

// PostResponse adds derived display fields to a post.
type PostResponse struct {
	models.Post
	TagList      []string `json:"tag_list"`
	ShortSummary string   `json:"short_summary"`
	Date         string   `json:"date"`
}

// NewPostResponse converts a model into a DTO.
func NewPostResponse(post models.Post) PostResponse {
	return PostResponse{
		Post:         post,
		TagList:      post.TagsList(),
		ShortSummary: post.ShortSummary(0),
		Date:         utils.FormatDate(post.CreatedAt),
	}
}

// FavoriteRequest toggles a project's favorite flag.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

// PublishRequest toggles a post's published flag.
type PublishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// CountResponse wraps a single count.
type CountResponse struct {
	Count int64 `json:"count"`
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
