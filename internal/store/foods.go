// Package store provides a SQLite food database that can back the food
// catalog. The database is read-only at runtime; it only ever holds catalog
// data, never what the user logged.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/regimen/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// FoodDB is a SQLite-backed food catalog.
type FoodDB struct {
	db *sql.DB
}

// Open opens or creates the food database at the given path.
func Open(dbPath string) (*FoodDB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening food db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &FoodDB{db: db}, nil
}

// Close closes the database.
func (f *FoodDB) Close() error {
	return f.db.Close()
}

// ReplaceFoods swaps the stored catalog for foods in one transaction,
// keeping their order.
func (f *FoodDB) ReplaceFoods(foods []model.CatalogItem) error {
	tx, err := f.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// nutrients go with their foods via ON DELETE CASCADE
	if _, err := tx.Exec("DELETE FROM foods"); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, it := range foods {
		_, err = tx.Exec(`INSERT INTO foods
			(food_id, position, name, serving, quantity, exported_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, i, it.Name, it.Serving, it.Quantity, now,
		)
		if err != nil {
			return fmt.Errorf("inserting food %s: %w", it.ID, err)
		}
		for name, amount := range it.Fields {
			_, err = tx.Exec(`INSERT INTO food_nutrients (food_id, nutrient, amount)
				VALUES (?, ?, ?)`, it.ID, name, amount)
			if err != nil {
				return fmt.Errorf("inserting %s for food %s: %w", name, it.ID, err)
			}
		}
	}

	return tx.Commit()
}

// LoadFoods reads the stored catalog in its original order.
func (f *FoodDB) LoadFoods() ([]model.CatalogItem, error) {
	rows, err := f.db.Query(`SELECT food_id, name, serving, quantity
		FROM foods ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var foods []model.CatalogItem
	for rows.Next() {
		var it model.CatalogItem
		var serving sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &serving, &it.Quantity); err != nil {
			return nil, err
		}
		if serving.Valid {
			it.Serving = serving.String
		}
		it.Fields = make(map[string]float64)
		foods = append(foods, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load nutrients
	nutRows, err := f.db.Query("SELECT food_id, nutrient, amount FROM food_nutrients")
	if err != nil {
		return nil, err
	}
	defer func() { _ = nutRows.Close() }()

	idx := make(map[string]int, len(foods))
	for i, it := range foods {
		idx[it.ID] = i
	}

	for nutRows.Next() {
		var id, name string
		var amount float64
		if err := nutRows.Scan(&id, &name, &amount); err != nil {
			return nil, err
		}
		if i, ok := idx[id]; ok {
			foods[i].Fields[name] = amount
		}
	}

	return foods, nutRows.Err()
}

// FoodCount returns the number of stored foods.
func (f *FoodDB) FoodCount() (int, error) {
	var count int
	err := f.db.QueryRow("SELECT COUNT(*) FROM foods").Scan(&count)
	return count, err
}
