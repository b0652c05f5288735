package models

import "github.com/shopspring/decimal"

// IntentKind is the action a voice or typed command asks for.
type IntentKind string

const (
	IntentAddItem    IntentKind = "add_item"
	IntentUpdateItem IntentKind = "update_item"
	IntentRemoveItem IntentKind = "remove_item"
	IntentQueryItem  IntentKind = "query_item"
)

// Intent is the structured interpretation of a transcript.
// It is held only until the user confirms or cancels it.
type Intent struct {
	Intent     IntentKind `json:"intent"`
	Item       IntentItem `json:"item"`
	Confidence float64    `json:"confidence"`
	Transcript string     `json:"transcript"`
}

// IntentItem is the item part of an Intent. Field names follow the
// interpretation endpoint, which uses snake_case.
type IntentItem struct {
	RawName        string          `json:"raw_name"`
	NormalizedName string          `json:"normalized_name"`
	Category       Category        `json:"category"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Location       string          `json:"location"`
}

// DisplayName prefers the normalized name and falls back to the raw one.
func (i IntentItem) DisplayName() string {
	if i.NormalizedName != "" {
		return i.NormalizedName
	}
	return i.RawName
}
