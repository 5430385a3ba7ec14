package controller

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

var (
	plainTextPolicy = bluemonday.StrictPolicy()
	richTextPolicy  = bluemonday.UGCPolicy()
)

func sanitizePlain(value string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(value)))
}

func sanitizePost(post models.Post) models.Post {
	post.Title = sanitizePlain(post.Title)
	post.Summary = sanitizePlain(post.Summary)
	post.Author = sanitizePlain(post.Author)
	post.Tags = sanitizePlain(post.Tags)
	post.Content = strings.TrimSpace(richTextPolicy.Sanitize(post.Content))
	return post
}
