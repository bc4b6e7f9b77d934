package ledger

import (
	"iter"
	"strings"

	"github.com/theirongolddev/regimen/internal/model"
)

// Filter yields the catalog items whose name contains query, ignoring case.
// The sequence is lazy and restartable: every range over it scans the full
// catalog again. An empty query yields nothing.
func Filter(catalog []model.CatalogItem, query string) iter.Seq[model.CatalogItem] {
	return func(yield func(model.CatalogItem) bool) {
		if query == "" {
			return
		}
		q := strings.ToLower(query)
		for _, it := range catalog {
			if !strings.Contains(strings.ToLower(it.Name), q) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// Lookup returns the catalog item with the given id.
func Lookup(catalog []model.CatalogItem, id string) (model.CatalogItem, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return model.CatalogItem{}, false
}
