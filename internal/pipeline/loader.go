package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/ledger"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/store"
)

// LoadOptions selects where the catalog comes from.
type LoadOptions struct {
	CatalogPath  string // empty uses the embedded catalog
	FoodDatabase string // optional SQLite food database overriding the catalog foods
}

// LoadResult holds the loaded catalog and where its foods came from.
type LoadResult struct {
	Catalog    *catalog.Catalog
	FoodSource string
	FoodCount  int
}

// ProgressFunc is called as loading stages complete.
type ProgressFunc func(stage string, current, total int)

// Load reads the catalog and, when configured, the food database in
// parallel, then validates the merged result.
func Load(ctx context.Context, opts LoadOptions, progressFn ProgressFunc) (*LoadResult, error) {
	total := 1
	if opts.FoodDatabase != "" {
		total = 2
	}
	report := func(stage string, n int) {
		if progressFn != nil {
			progressFn(stage, n, total)
		}
	}

	var (
		cat   *catalog.Catalog
		foods []model.CatalogItem
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := catalog.Load(opts.CatalogPath)
		if err != nil {
			return err
		}
		cat = c
		return nil
	})
	if opts.FoodDatabase != "" {
		g.Go(func() error {
			db, err := store.Open(opts.FoodDatabase)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			f, err := db.LoadFoods()
			if err != nil {
				return fmt.Errorf("reading foods from %s: %w", opts.FoodDatabase, err)
			}
			foods = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report("catalog", 1)

	result := &LoadResult{Catalog: cat, FoodSource: sourceName(opts.CatalogPath)}
	if opts.FoodDatabase != "" && len(foods) > 0 {
		if err := ledger.ValidateCatalog(ledger.Nutrition, foods); err != nil {
			return nil, fmt.Errorf("food database %s: %w", opts.FoodDatabase, err)
		}
		cat.Foods = foods
		result.FoodSource = "sqlite:" + opts.FoodDatabase
		report("foods", 2)
	}
	result.FoodCount = len(cat.Foods)

	return result, nil
}

// Export writes the catalog foods to a SQLite food database.
func Export(c *catalog.Catalog, dbPath string) (int, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	if err := db.ReplaceFoods(c.Foods); err != nil {
		return 0, fmt.Errorf("exporting foods: %w", err)
	}
	return db.FoodCount()
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
