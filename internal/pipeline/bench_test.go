package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/ledger"
)

func BenchmarkLoadDefault(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Load(context.Background(), LoadOptions{}, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadWithFoodDatabase(b *testing.B) {
	c, err := catalog.Default()
	if err != nil {
		b.Fatal(err)
	}
	dbPath := filepath.Join(b.TempDir(), "foods.db")
	if _, err := Export(c, dbPath); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(context.Background(), LoadOptions{FoodDatabase: dbPath}, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterFoods(b *testing.B) {
	c, err := catalog.Default()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		for range ledger.Filter(c.Foods, "an") {
			n++
		}
		_ = n
	}
}
