// Package presence serves the canned presence research results. There is
// no retrieval: every non-empty query returns the same content under the
// query as its topic.
package presence

import (
	"strings"

	"github.com/theirongolddev/regimen/internal/model"
)

// Content is the canned result set.
type Content struct {
	Overview   string
	Categories []model.PresenceCategory
}

// Results is one search outcome.
type Results struct {
	Topic      string                   `json:"topic"`
	Overview   string                   `json:"overview"`
	Categories []model.PresenceCategory `json:"categories"`
}

// Search returns results for query. It reports false when the trimmed
// query is empty.
func (c Content) Search(query string) (Results, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Results{}, false
	}
	return Results{
		Topic:      q,
		Overview:   c.Overview,
		Categories: c.Categories,
	}, true
}

// Category returns the category with the given id.
func (r Results) Category(id string) (model.PresenceCategory, bool) {
	for _, cat := range r.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.PresenceCategory{}, false
}
