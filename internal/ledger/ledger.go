// Package ledger maintains an ordered list of entries with a fixed numeric
// schema and derives running totals and goal progress from it.
//
// A Ledger is a value. Add and Remove return a new Ledger and never modify
// the receiver, so a caller holding an older ledger keeps seeing it intact.
// Aggregates are recomputed from the entries on every call.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/regimen/internal/model"
)

// Schema fixes the numeric fields every entry carries. Primary is the field
// measured against the goal.
type Schema struct {
	Fields  []string
	Primary string
}

// Nutrition is the food ledger schema.
var Nutrition = Schema{
	Fields:  []string{"calories", "protein", "carbs", "fat"},
	Primary: "calories",
}

// Has reports whether name is one of the schema fields.
func (s Schema) Has(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func (s Schema) validate() error {
	if len(s.Fields) == 0 {
		return &model.ConfigError{Field: "schema", Reason: "no fields"}
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f == "" {
			return &model.ConfigError{Field: "schema", Reason: "empty field name"}
		}
		if _, dup := seen[f]; dup {
			return &model.ConfigError{Field: "schema", Reason: fmt.Sprintf("duplicate field %q", f)}
		}
		seen[f] = struct{}{}
	}
	if !s.Has(s.Primary) {
		return &model.ConfigError{Field: "schema", Reason: fmt.Sprintf("primary field %q not in schema", s.Primary)}
	}
	return nil
}

// conforms checks that item carries exactly the schema's fields.
func (s Schema) conforms(item model.CatalogItem) error {
	if len(item.Fields) != len(s.Fields) {
		return &model.ConfigError{
			Field:  item.ID,
			Reason: fmt.Sprintf("has %d fields, schema has %d", len(item.Fields), len(s.Fields)),
		}
	}
	for _, f := range s.Fields {
		if _, ok := item.Fields[f]; !ok {
			return &model.ConfigError{Field: item.ID, Reason: fmt.Sprintf("missing field %q", f)}
		}
	}
	return nil
}

// Entry is one added catalog item.
type Entry struct {
	Key        uuid.UUID          `json:"key"`
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Serving    string             `json:"serving"`
	Fields     map[string]float64 `json:"fields"`
	InsertedAt time.Time          `json:"inserted_at"`
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithEntries seeds the ledger, e.g. from a previous snapshot. Entries are
// checked against the schema by New.
func WithEntries(entries ...Entry) Option {
	return func(l *Ledger) { l.entries = append([]Entry(nil), entries...) }
}

// Ledger is an ordered list of entries measured against a goal.
type Ledger struct {
	schema  Schema
	goal    float64
	now     func() time.Time
	entries []Entry
}

// New returns an empty ledger. It fails with *model.ConfigError for an
// invalid schema or a non-positive goal.
func New(schema Schema, goal float64, opts ...Option) (Ledger, error) {
	if err := schema.validate(); err != nil {
		return Ledger{}, err
	}
	if goal <= 0 {
		return Ledger{}, &model.ConfigError{Field: "goal", Reason: fmt.Sprintf("must be positive, got %g", goal)}
	}

	l := Ledger{
		schema: Schema{Fields: append([]string(nil), schema.Fields...), Primary: schema.Primary},
		goal:   goal,
		now:    time.Now,
	}
	for _, o := range opts {
		o(&l)
	}
	for _, e := range l.entries {
		if err := l.schema.conforms(model.CatalogItem{ID: e.ID, Fields: e.Fields}); err != nil {
			return Ledger{}, err
		}
	}
	return l, nil
}

// Add appends item stamped with the ledger clock.
func (l Ledger) Add(item model.CatalogItem) (Ledger, error) {
	if err := l.schema.conforms(item); err != nil {
		return l, err
	}

	fields := make(map[string]float64, len(item.Fields))
	for k, v := range item.Fields {
		fields[k] = v
	}

	next := l
	next.entries = make([]Entry, len(l.entries), len(l.entries)+1)
	copy(next.entries, l.entries)
	next.entries = append(next.entries, Entry{
		Key:        uuid.New(),
		ID:         item.ID,
		Name:       item.Name,
		Serving:    item.Serving,
		Fields:     fields,
		InsertedAt: l.now(),
	})
	return next, nil
}

// Remove drops the entry at pos, keeping the order of the rest. An
// out-of-range pos returns the ledger unchanged and a *model.IndexError.
func (l Ledger) Remove(pos int) (Ledger, error) {
	if pos < 0 || pos >= len(l.entries) {
		return l, &model.IndexError{Pos: pos, Len: len(l.entries)}
	}

	next := l
	next.entries = make([]Entry, 0, len(l.entries)-1)
	next.entries = append(next.entries, l.entries[:pos]...)
	next.entries = append(next.entries, l.entries[pos+1:]...)
	return next, nil
}

// Len returns the number of entries.
func (l Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in insertion order.
func (l Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Schema returns the ledger schema.
func (l Ledger) Schema() Schema { return l.schema }

// FieldNames returns the schema fields in declaration order.
func (l Ledger) FieldNames() []string { return slices.Clone(l.schema.Fields) }

// Goal returns the goal for the primary field.
func (l Ledger) Goal() float64 { return l.goal }

// Totals sums every schema field over the current entries.
func (l Ledger) Totals() map[string]float64 {
	totals := make(map[string]float64, len(l.schema.Fields))
	for _, f := range l.schema.Fields {
		totals[f] = 0
	}
	for _, e := range l.entries {
		for f, v := range e.Fields {
			totals[f] += v
		}
	}
	return totals
}

// Total returns the sum of one field.
func (l Ledger) Total(field string) float64 {
	var sum float64
	for _, e := range l.entries {
		sum += e.Fields[field]
	}
	return sum
}

// ProgressRatio is total[primary] / goal, clamped to [0, 1].
func (l Ledger) ProgressRatio() float64 {
	if l.goal <= 0 {
		return 0
	}
	r := l.Total(l.schema.Primary) / l.goal
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Progress reports the primary total against the goal.
func (l Ledger) Progress() model.GoalProgress {
	cur := l.Total(l.schema.Primary)
	remaining := l.goal - cur
	if remaining < 0 {
		remaining = 0
	}
	return model.GoalProgress{
		Goal:      l.goal,
		Current:   cur,
		Remaining: remaining,
		Ratio:     l.ProgressRatio(),
	}
}

// ValidateCatalog checks that every item has a unique non-empty id and
// exactly the fields of schema.
func ValidateCatalog(schema Schema, items []model.CatalogItem) error {
	if err := schema.validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.ID == "" {
			return &model.ConfigError{Field: fmt.Sprintf("items[%d]", i), Reason: "empty id"}
		}
		if _, dup := seen[it.ID]; dup {
			return &model.ConfigError{Field: it.ID, Reason: "duplicate id"}
		}
		seen[it.ID] = struct{}{}
		if err := schema.conforms(it); err != nil {
			return err
		}
	}
	return nil
}
