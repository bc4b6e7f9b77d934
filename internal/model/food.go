// Package model defines domain types shared by the regimen catalogs,
// ledgers, flows and views.
package model

// CatalogItem is one selectable item of a ledger catalog, e.g. a food in
// the food database. Fields carries the numeric schema (calories, protein,
// ...) and must match the schema of the ledger it is added to.
type CatalogItem struct {
	ID       string             `yaml:"id" json:"id"`
	Name     string             `yaml:"name" json:"name"`
	Serving  string             `yaml:"serving" json:"serving"`
	Quantity float64            `yaml:"quantity" json:"quantity"`
	Fields   map[string]float64 `yaml:"nutrients" json:"nutrients"`
}

// Field returns the named quantity, or zero when absent.
func (c CatalogItem) Field(name string) float64 {
	return c.Fields[name]
}

// GoalProgress holds a running total measured against a fixed goal.
type GoalProgress struct {
	Goal      float64 `json:"goal"`
	Current   float64 `json:"current"`
	Remaining float64 `json:"remaining"`
	Ratio     float64 `json:"ratio"` // clamped to [0, 1]
}
