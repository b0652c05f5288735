package fake

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		transcript string
		kind       models.IntentKind
		name       string
		normalized string
		quantity   string
		unit       string
		location   string
		category   models.Category
	}{
		{
			transcript: "Add 2 liters of milk to the fridge.",
			kind:       models.IntentAddItem, name: "milk", normalized: "milk",
			quantity: "2", unit: "liters", location: "fridge", category: models.CategoryDairy,
		},
		{
			transcript: "please buy a dozen eggs",
			kind:       models.IntentAddItem, name: "eggs", normalized: "egg",
			quantity: "12", unit: DefaultUnit, category: models.CategoryDairy,
		},
		{
			transcript: "I bought three bags of potato chips",
			kind:       models.IntentAddItem, name: "potato chips", normalized: "potato chips",
			quantity: "3", unit: "bags", category: models.CategorySnacks,
		},
		{
			transcript: "put 0.5 kg of tomatoes in the pantry",
			kind:       models.IntentAddItem, name: "tomatoes", normalized: "tomato",
			quantity: "0.5", unit: "kg", location: "pantry", category: models.CategoryVegetables,
		},
		{
			transcript: "we finished the orange juice",
			kind:       models.IntentRemoveItem, name: "orange juice", normalized: "orange juice",
			quantity: "1", unit: DefaultUnit, category: models.CategoryFruits,
		},
		{
			transcript: "how much rice do we have?",
			kind:       models.IntentQueryItem, name: "rice", normalized: "rice",
			quantity: "1", unit: DefaultUnit, category: models.CategoryGrains,
		},
		{
			transcript: "kombucha",
			kind:       models.IntentAddItem, name: "kombucha", normalized: "kombucha",
			quantity: "1", unit: DefaultUnit, category: models.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			got, err := Interpret(tt.transcript)
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}
			if got.Intent != tt.kind {
				t.Errorf("intent = %s, want %s", got.Intent, tt.kind)
			}
			if got.Item.RawName != tt.name {
				t.Errorf("raw name = %q, want %q", got.Item.RawName, tt.name)
			}
			if got.Item.NormalizedName != tt.normalized {
				t.Errorf("normalized name = %q, want %q", got.Item.NormalizedName, tt.normalized)
			}
			if !got.Item.Quantity.Equal(decimal.RequireFromString(tt.quantity)) {
				t.Errorf("quantity = %s, want %s", got.Item.Quantity, tt.quantity)
			}
			if got.Item.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", got.Item.Unit, tt.unit)
			}
			if got.Item.Location != tt.location {
				t.Errorf("location = %q, want %q", got.Item.Location, tt.location)
			}
			if got.Item.Category != tt.category {
				t.Errorf("category = %s, want %s", got.Item.Category, tt.category)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("confidence = %v, want within (0,1]", got.Confidence)
			}
		})
	}
}

func TestInterpretRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "add", "?!"} {
		if _, err := Interpret(in); err == nil {
			t.Errorf("Interpret(%q) succeeded, want error", in)
		}
	}
}
