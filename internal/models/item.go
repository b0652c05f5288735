package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the stock health of an item, derived remotely from its batches.
type ItemStatus string

const (
	StatusGood     ItemStatus = "good"
	StatusWarning  ItemStatus = "warning"
	StatusCritical ItemStatus = "critical"
)

// UnmarshalText accepts the upper-cased wire enum.
func (s *ItemStatus) UnmarshalText(b []byte) error {
	*s = ItemStatus(strings.ToLower(strings.TrimSpace(string(b))))
	return nil
}

// UnmarshalText accepts the upper-cased wire enum. Unknown values are kept
// as-is (lower-cased) so callers can detect them with Valid.
func (c *Category) UnmarshalText(b []byte) error {
	*c = Category(strings.ToLower(strings.TrimSpace(string(b))))
	return nil
}

// InventoryItem is a distinct product tracked in a Kitchen.
type InventoryItem struct {
	ID        string `json:"id"`
	KitchenID string `json:"kitchenId"`
	Name      string `json:"name"`

	Category Category `json:"category"`

	// DefaultUnit is the unit new batches are recorded in (e.g. "liters").
	DefaultUnit string `json:"defaultUnit"`

	// Location is where the item is kept inside the house (e.g. "fridge").
	Location string `json:"location,omitempty"`

	// Threshold is the quantity at or below which the item is flagged.
	Threshold decimal.Decimal `json:"threshold"`

	Tags []string `json:"tags,omitempty"`

	// TotalQuantity is the sum of the item's batch quantities.
	// Read-only: computed by the remote store.
	TotalQuantity decimal.Decimal `json:"totalQuantity"`

	// Status is read-only: computed by the remote store.
	Status ItemStatus `json:"status"`

	// NextExpiry is the earliest batch expiry, if any batch has one.
	// Read-only: computed by the remote store.
	NextExpiry *time.Time `json:"nextExpiry,omitempty"`

	Batches []InventoryBatch `json:"batches,omitempty"`
}

// InventoryBatch is a quantity lot of an item with its own provenance.
type InventoryBatch struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"itemId,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Status       ItemStatus      `json:"status,omitempty"`
}
