package models

import (
	"math"
	"strings"
)

// Category is one value of the fixed product taxonomy.
type Category string

const (
	CategorySnacks     Category = "snacks"
	CategoryFruits     Category = "fruits"
	CategoryVegetables Category = "vegetables"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryGrains     Category = "grains"
	CategoryBeverages  Category = "beverages"
	CategoryCondiments Category = "condiments"
	CategoryFrozen     Category = "frozen"
	CategoryOther      Category = "other"
)

// Categories lists the whole taxonomy in display order.
var Categories = []Category{
	CategorySnacks,
	CategoryFruits,
	CategoryVegetables,
	CategoryDairy,
	CategoryMeat,
	CategoryGrains,
	CategoryBeverages,
	CategoryCondiments,
	CategoryFrozen,
	CategoryOther,
}

// ParseCategory maps a free-form or wire value ("DAIRY", " Dairy ") onto the
// taxonomy. The boolean is false when the value is not a taxonomy member.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, true
	}
	return CategoryOther, false
}

// Valid reports whether c is one of the taxonomy values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Wire returns the upper-cased enum value the remote API expects.
func (c Category) Wire() string {
	return strings.ToUpper(string(c))
}

func (c Category) String() string { return string(c) }

// ClassificationResult is the output of the category classifier.
type ClassificationResult struct {
	Category Category `json:"category"`

	// Confidence is normalized to [0,1].
	Confidence float64 `json:"confidence"`

	Reasoning string `json:"reasoning"`
}

// ClampConfidence forces v into [0,1]. Values from 2 to 100 are read as
// percentages (e.g. 85 -> 0.85); values just above 1 are float drift and
// clamp to 1.
func ClampConfidence(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= 2 && v <= 100:
		return v / 100
	case v > 1:
		return 1
	case v < 0:
		return 0
	default:
		return v
	}
}
