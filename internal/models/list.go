package models

import (
	"strings"

	"github.com/samber/lo"
)

// SplitList splits a comma-separated field, trimming pieces and dropping empty ones.
// Order is preserved and duplicates are kept.
func SplitList(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ","), func(part string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(part)
		return trimmed, trimmed != ""
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
