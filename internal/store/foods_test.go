package store

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/regimen/internal/model"
)

func openTestDB(t *testing.T) *FoodDB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "foods.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceAndLoadFoods(t *testing.T) {
	db := openTestDB(t)

	foods := []model.CatalogItem{
		{ID: "2", Name: "Banana", Serving: "1 medium", Quantity: 1,
			Fields: map[string]float64{"calories": 105, "protein": 1.3, "carbs": 27, "fat": 0.4}},
		{ID: "1", Name: "Apple", Serving: "1 medium", Quantity: 1,
			Fields: map[string]float64{"calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3}},
	}
	if err := db.ReplaceFoods(foods); err != nil {
		t.Fatalf("ReplaceFoods: %v", err)
	}

	got, err := db.LoadFoods()
	if err != nil {
		t.Fatalf("LoadFoods: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadFoods len = %d, want 2", len(got))
	}
	if got[0].Name != "Banana" {
		t.Errorf("first food = %q, want Banana (insertion order)", got[0].Name)
	}
	if got[1].Field("calories") != 95 {
		t.Errorf("Apple calories = %v, want 95", got[1].Field("calories"))
	}
	if len(got[1].Fields) != 4 {
		t.Errorf("Apple fields = %d, want 4", len(got[1].Fields))
	}
}

func TestReplaceFoodsOverwrites(t *testing.T) {
	db := openTestDB(t)

	first := []model.CatalogItem{
		{ID: "1", Name: "Apple", Fields: map[string]float64{"calories": 95}},
		{ID: "2", Name: "Banana", Fields: map[string]float64{"calories": 105}},
	}
	second := []model.CatalogItem{
		{ID: "3", Name: "Eggs", Fields: map[string]float64{"calories": 155}},
	}
	if err := db.ReplaceFoods(first); err != nil {
		t.Fatalf("ReplaceFoods: %v", err)
	}
	if err := db.ReplaceFoods(second); err != nil {
		t.Fatalf("ReplaceFoods: %v", err)
	}

	n, err := db.FoodCount()
	if err != nil {
		t.Fatalf("FoodCount: %v", err)
	}
	if n != 1 {
		t.Errorf("FoodCount = %d, want 1", n)
	}

	got, err := db.LoadFoods()
	if err != nil {
		t.Fatalf("LoadFoods: %v", err)
	}
	if got[0].ID != "3" || len(got[0].Fields) != 1 {
		t.Errorf("LoadFoods = %+v, want only Eggs with one nutrient", got)
	}
}

func TestReplaceFoodsDuplicateIDRollsBack(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceFoods([]model.CatalogItem{{ID: "1", Name: "Apple"}}); err != nil {
		t.Fatalf("ReplaceFoods: %v", err)
	}
	dup := []model.CatalogItem{{ID: "9", Name: "A"}, {ID: "9", Name: "B"}}
	if err := db.ReplaceFoods(dup); err == nil {
		t.Fatal("ReplaceFoods with duplicate ids: want error")
	}

	got, err := db.LoadFoods()
	if err != nil {
		t.Fatalf("LoadFoods: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("after failed replace LoadFoods = %+v, want original Apple", got)
	}
}
