package controller

import (
	"strings"

	"github.com/samber/lo"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// FilterProjectsByCategory keeps projects whose category matches exactly.
func FilterProjectsByCategory(projects []models.Project, category string) []models.Project {
	category = strings.TrimSpace(category)
	if category == "" || category == CategoryAll {
		return projects
	}
	return lo.Filter(projects, func(p models.Project, _ int) bool {
		return p.Category == category
	})
}

// FilterPostsByTag keeps posts whose tags contain tag, ignoring case.
func FilterPostsByTag(posts []models.Post, tag string) []models.Post {
	needle := strings.ToLower(strings.TrimSpace(tag))
	if needle == "" {
		return posts
	}
	return lo.Filter(posts, func(p models.Post, _ int) bool {
		return strings.Contains(strings.ToLower(p.Tags), needle)
	})
}

// SearchPosts matches query against title, summary, content and tags, ignoring case.
func SearchPosts(posts []models.Post, query string) []models.Post {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return posts
	}
	return lo.Filter(posts, func(p models.Post, _ int) bool {
		return lo.SomeBy([]string{p.Title, p.Summary, p.Content, p.Tags}, func(field string) bool {
			return strings.Contains(strings.ToLower(field), needle)
		})
	})
}
