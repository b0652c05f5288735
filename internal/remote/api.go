// Package remote is the boundary to the inventory endpoint.
//
// API is the transport abstraction every component depends on. Client talks
// GraphQL over HTTP to the real endpoint; package fake provides an in-memory
// implementation. The choice is made once at construction time, never inside
// business logic.
package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// API lists the remote operations the inventory core uses.
//
// Every method returns either a payload or an error of one of the apperr kinds
// (NetworkError, RemoteError, or ErrAuthenticationRequired). A missing record
// is reported as a nil payload with a nil error where noted.
type API interface {
	Houses(ctx context.Context) ([]models.House, error)
	CreateHouse(ctx context.Context, in CreateHouseInput) (*models.House, error)

	// Households returns every household visible to the user with its kitchens.
	Households(ctx context.Context) ([]models.Household, error)
	CreateHousehold(ctx context.Context, in CreateHouseholdInput) (*models.Household, error)
	CreateKitchen(ctx context.Context, in CreateKitchenInput) (*models.Kitchen, error)

	InventoryItems(ctx context.Context, kitchenID string) ([]models.InventoryItem, error)
	// InventoryItem returns nil, nil when no item has the given id.
	InventoryItem(ctx context.Context, id string) (*models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, in CreateItemInput) (*models.InventoryItem, error)
	CreateInventoryBatch(ctx context.Context, in CreateBatchInput) (*models.InventoryBatch, error)
	UpdateInventoryItem(ctx context.Context, id string, in UpdateItemInput) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id string) error

	ProcessVoiceCommand(ctx context.Context, transcript string) (*models.Intent, error)
	CategorizeProduct(ctx context.Context, productName string) (*models.ClassificationResult, error)
}

// CreateHouseInput is the input of createHouse.
type CreateHouseInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateHouseholdInput is the input of createHousehold.
type CreateHouseholdInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Kitchen types accepted by createKitchen.
const KitchenTypeHome = "HOME"

// CreateKitchenInput is the input of createKitchen.
type CreateKitchenInput struct {
	HouseholdID string `json:"householdId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// CreateItemInput is the input of createInventoryItem. The created item has
// no quantity; quantity arrives through a batch.
type CreateItemInput struct {
	KitchenID string `json:"kitchenId"`
	Name      string `json:"name"`

	// Category is the upper-cased wire enum, see models.Category.Wire.
	Category string `json:"category"`

	DefaultUnit string          `json:"defaultUnit"`
	Location    string          `json:"location"`
	Threshold   decimal.Decimal `json:"threshold"`
	Tags        []string        `json:"tags"`
}

// MarshalJSON sends the threshold as a bare number.
func (in CreateItemInput) MarshalJSON() ([]byte, error) {
	type plain CreateItemInput
	return json.Marshal(struct {
		plain
		Threshold json.Number `json:"threshold"`
	}{plain(in), number(in.Threshold)})
}

// CreateBatchInput is the input of createInventoryBatch.
type CreateBatchInput struct {
	ItemID       string          `json:"itemId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
}

// MarshalJSON sends the quantity as a bare number.
func (in CreateBatchInput) MarshalJSON() ([]byte, error) {
	type plain CreateBatchInput
	return json.Marshal(struct {
		plain
		Quantity json.Number `json:"quantity"`
	}{plain(in), number(in.Quantity)})
}

// UpdateItemInput is the input of updateInventoryItem. Only non-nil fields
// are sent; the remote store leaves the others untouched.
type UpdateItemInput struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	DefaultUnit *string          `json:"defaultUnit,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Threshold   *decimal.Decimal `json:"threshold,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

// MarshalJSON sends the threshold, when set, as a bare number.
func (in UpdateItemInput) MarshalJSON() ([]byte, error) {
	type plain UpdateItemInput
	out := struct {
		plain
		Threshold *json.Number `json:"threshold,omitempty"`
	}{plain: plain(in)}
	if in.Threshold != nil {
		n := number(*in.Threshold)
		out.Threshold = &n
	}
	return json.Marshal(out)
}

// number renders d for the endpoint's Float scalar, which rejects the quoted
// strings decimal.Decimal produces by default.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Empty reports whether no field is set.
func (in UpdateItemInput) Empty() bool {
	return in.Name == nil && in.Category == nil && in.DefaultUnit == nil &&
		in.Location == nil && in.Threshold == nil && in.Tags == nil
}

// Request is the JSON body posted to the endpoint.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is the JSON body returned by the endpoint.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ErrorPayload  `json:"errors,omitempty"`
}

// ErrorPayload is one entry of Response.Errors.
type ErrorPayload struct {
	Message    string          `json:"message"`
	Extensions ErrorExtensions `json:"extensions,omitempty"`
}

// ErrorExtensions carries the machine-readable error code.
type ErrorExtensions struct {
	Code string `json:"code,omitempty"`
}
