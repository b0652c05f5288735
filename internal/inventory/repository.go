// Package inventory reads and writes the remote inventory of the selected
// House.
//
// Every successful write is followed by a full re-read of the kitchen's item
// list; the in-memory list is never patched locally. Quantity, status and
// next expiry are computed by the remote store from batches and are only
// ever read here.
package inventory

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/metrics"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/resolver"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/session"
)

// DefaultUnit is recorded when an item is added without a unit.
const DefaultUnit = "pieces"

// Operation names used in logs and metrics.
const (
	opAddItem    = "add_item"
	opUpdateItem = "update_item"
	opDeleteItem = "delete_item"
	opGetItem    = "get_item"
	opAddBatch   = "add_batch"
	opRefresh    = "refresh"
)

// Result is the outcome of a repository write. Expected failures never
// escape as panics or bare errors: Success is false, Error holds the text to
// show the user and Err the underlying error for errors.Is / errors.As.
type Result struct {
	Success bool
	Error   string
	Err     error

	// ItemID is the id of the created or changed item, when there is one.
	ItemID string
}

func succeeded(itemID string) Result {
	return Result{Success: true, ItemID: itemID}
}

func failed(err error) Result {
	return Result{Error: apperr.UserMessage(err), Err: err}
}

// AddItemInput describes a new item and its initial batch.
type AddItemInput struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Category models.Category `json:"category" validate:"required,category"`

	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" validate:"max=50"`
	Location string          `json:"location" validate:"max=100"`

	Threshold decimal.Decimal `json:"threshold"`
	Tags      []string        `json:"tags"`

	// PurchaseDate defaults to now.
	PurchaseDate time.Time  `json:"purchaseDate"`
	ExpiryDate   *time.Time `json:"expiryDate"`
}

// UpdateItemInput lists the fields to change. Nil fields are left untouched.
type UpdateItemInput struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	Category    *models.Category `json:"category" validate:"omitempty,category"`
	DefaultUnit *string          `json:"defaultUnit" validate:"omitempty,max=50"`
	Location    *string          `json:"location" validate:"omitempty,max=100"`
	Threshold   *decimal.Decimal `json:"threshold"`
	Tags        []string         `json:"tags"`
}

// AddBatchInput records more stock of an existing item.
type AddBatchInput struct {
	ItemID       string          `json:"itemId" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"max=50"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	ExpiryDate   *time.Time      `json:"expiryDate"`
}

// Repository is the inventory of the selected House.
//
// Operations on one Repository run one at a time, each including its
// refetch. Separate Repository values do not coordinate with each other.
type Repository struct {
	mu sync.Mutex

	api      remote.API
	session  *session.Session
	kitchens *resolver.KitchenResolver
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time

	stateMu sync.RWMutex
	items   []models.InventoryItem
	loading bool
}

// NewRepository creates a Repository.
func NewRepository(api remote.API, sess *session.Session, kitchens *resolver.KitchenResolver, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		api:      api,
		session:  sess,
		kitchens: kitchens,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// Items returns a copy of the item list as of the last refetch.
func (r *Repository) Items() []models.InventoryItem {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	out := make([]models.InventoryItem, len(r.items))
	copy(out, r.items)
	return out
}

// Loading reports whether a refetch is in flight.
func (r *Repository) Loading() bool {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.loading
}

// --------------------------------------------------------------------
// Writes
// --------------------------------------------------------------------

// AddItem creates an item in the selected House's kitchen together with one
// batch holding the supplied quantity, then refetches.
//
// A missing name or category fails before any remote call. If the batch
// cannot be created the new item is deleted again so no item without stock
// is left behind.
func (r *Repository) AddItem(ctx context.Context, in AddItemInput) (res Result) {
	defer func() { metrics.ObserveRepositoryOp(opAddItem, res.Err) }()

	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := r.validate.Struct(in); err != nil {
		return failed(validationError(err))
	}
	category, _ := models.ParseCategory(string(in.Category))
	if in.Quantity.IsNegative() {
		return failed(apperr.Validation("quantity", "must not be negative"))
	}
	if in.Threshold.IsNegative() {
		return failed(apperr.Validation("threshold", "must not be negative"))
	}
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kitchenID, err := r.kitchen(ctx)
	if err != nil {
		return r.fail(opAddItem, err)
	}

	item, err := r.api.CreateInventoryItem(ctx, remote.CreateItemInput{
		KitchenID:   kitchenID,
		Name:        in.Name,
		Category:    category.Wire(),
		DefaultUnit: in.Unit,
		Location:    strings.TrimSpace(in.Location),
		Threshold:   in.Threshold,
		Tags:        in.Tags,
	})
	if err != nil {
		return r.fail(opAddItem, err)
	}

	purchased := in.PurchaseDate
	if purchased.IsZero() {
		purchased = r.now()
	}
	_, err = r.api.CreateInventoryBatch(ctx, remote.CreateBatchInput{
		ItemID:       item.ID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PurchaseDate: purchased.UTC(),
		ExpiryDate:   in.ExpiryDate,
	})
	if err != nil {
		if delErr := r.api.DeleteInventoryItem(ctx, item.ID); delErr != nil {
			r.logger.Warn("Failed to remove item after batch failure",
				"item_id", item.ID,
				"error", delErr,
			)
		}
		return r.fail(opAddItem, err)
	}

	r.logger.Info("Item added",
		"item_id", item.ID,
		"kitchen_id", kitchenID,
		"name", in.Name,
		"category", category,
		"quantity", in.Quantity.String(),
		"unit", in.Unit,
	)
	r.refetch(ctx, kitchenID)
	return succeeded(item.ID)
}

// UpdateItem changes the supplied fields of item id, then refetches.
func (r *Repository) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (res Result) {
	defer func() { metrics.ObserveRepositoryOp(opUpdateItem, res.Err) }()

	if strings.TrimSpace(id) == "" {
		return failed(apperr.Validation("id", "is required"))
	}
	if err := r.validate.Struct(in); err != nil {
		return failed(validationError(err))
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return failed(apperr.Validation("name", "is required"))
	}
	if in.Threshold != nil && in.Threshold.IsNegative() {
		return failed(apperr.Validation("threshold", "must not be negative"))
	}

	patch := remote.UpdateItemInput{
		Name:        trimmed(in.Name),
		DefaultUnit: trimmed(in.DefaultUnit),
		Location:    trimmed(in.Location),
		Threshold:   in.Threshold,
		Tags:        in.Tags,
	}
	if in.Category != nil {
		category, _ := models.ParseCategory(string(*in.Category))
		wire := category.Wire()
		patch.Category = &wire
	}
	if patch.Empty() {
		return failed(apperr.Validation("", "nothing to update"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.session.Token(ctx); err != nil {
		return r.fail(opUpdateItem, err)
	}
	item, err := r.api.UpdateInventoryItem(ctx, id, patch)
	if err != nil {
		return r.fail(opUpdateItem, err)
	}

	r.logger.Info("Item updated", "item_id", id, "kitchen_id", item.KitchenID)
	r.refetch(ctx, "")
	return succeeded(id)
}

// DeleteItem removes item id and its batches, then refetches.
func (r *Repository) DeleteItem(ctx context.Context, id string) (res Result) {
	defer func() { metrics.ObserveRepositoryOp(opDeleteItem, res.Err) }()

	if strings.TrimSpace(id) == "" {
		return failed(apperr.Validation("id", "is required"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.session.Token(ctx); err != nil {
		return r.fail(opDeleteItem, err)
	}
	if err := r.api.DeleteInventoryItem(ctx, id); err != nil {
		return r.fail(opDeleteItem, err)
	}

	r.logger.Info("Item deleted", "item_id", id)
	r.refetch(ctx, "")
	return succeeded(id)
}

// AddBatch records more stock for an existing item, then refetches.
func (r *Repository) AddBatch(ctx context.Context, in AddBatchInput) (res Result) {
	defer func() { metrics.ObserveRepositoryOp(opAddBatch, res.Err) }()

	in.ItemID = strings.TrimSpace(in.ItemID)
	if err := r.validate.Struct(in); err != nil {
		return failed(validationError(err))
	}
	if !in.Quantity.IsPositive() {
		return failed(apperr.Validation("quantity", "must be greater than zero"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.session.Token(ctx); err != nil {
		return r.fail(opAddBatch, err)
	}

	purchased := in.PurchaseDate
	if purchased.IsZero() {
		purchased = r.now()
	}
	batch, err := r.api.CreateInventoryBatch(ctx, remote.CreateBatchInput{
		ItemID:       in.ItemID,
		Quantity:     in.Quantity,
		Unit:         strings.TrimSpace(in.Unit),
		PurchaseDate: purchased.UTC(),
		ExpiryDate:   in.ExpiryDate,
	})
	if err != nil {
		return r.fail(opAddBatch, err)
	}

	r.logger.Info("Batch added", "item_id", in.ItemID, "batch_id", batch.ID, "quantity", in.Quantity.String())
	r.refetch(ctx, "")
	return succeeded(in.ItemID)
}

// --------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------

// GetItem fetches one item. It returns nil when the item does not exist or
// the lookup fails; failures are logged, not returned.
func (r *Repository) GetItem(ctx context.Context, id string) *models.InventoryItem {
	var err error
	defer func() { metrics.ObserveRepositoryOp(opGetItem, err) }()

	if strings.TrimSpace(id) == "" {
		return nil
	}
	if _, err = r.session.Token(ctx); err != nil {
		r.logger.Debug("Item lookup skipped", "item_id", id, "error", err)
		return nil
	}

	var item *models.InventoryItem
	item, err = r.api.InventoryItem(ctx, id)
	if err != nil {
		r.logger.Warn("Failed to get item", "item_id", id, "error", err)
		return nil
	}
	return item
}

// Refresh re-reads the item list of the selected House's kitchen.
func (r *Repository) Refresh(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRepositoryOp(opRefresh, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	kitchenID, err := r.kitchen(ctx)
	if err != nil {
		return err
	}
	return r.load(ctx, kitchenID)
}

// --------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------

// kitchen checks the session and resolves the selected House's kitchen.
func (r *Repository) kitchen(ctx context.Context) (string, error) {
	if _, err := r.session.Token(ctx); err != nil {
		return "", err
	}
	house, ok, err := r.session.SelectedHouse(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Validation("house", "no house selected")
	}
	kitchenID, err := r.kitchens.GetOrCreateContainer(ctx, house.ID, house.Name)
	if err != nil {
		return "", err
	}
	return kitchenID, nil
}

// refetch reloads the selected House's item list after a successful write.
// kitchenID is the kitchen the write just resolved; when empty, only an
// already cached kitchen is used so the refetch never creates containers.
// The write already happened, so a failed reload is logged and does not fail
// the operation.
func (r *Repository) refetch(ctx context.Context, kitchenID string) {
	if kitchenID == "" {
		id, ok, err := r.cachedKitchen(ctx)
		if err != nil || !ok {
			r.logger.Debug("Skipping refetch after write", "reason", "no resolved kitchen", "error", err)
			return
		}
		kitchenID = id
	}
	if err := r.load(ctx, kitchenID); err != nil {
		r.logger.Warn("Refetch after write failed", "kitchen_id", kitchenID, "error", err)
	}
}

// cachedKitchen returns the selected House's kitchen if it was resolved before.
func (r *Repository) cachedKitchen(ctx context.Context) (string, bool, error) {
	house, ok, err := r.session.SelectedHouse(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	return r.kitchens.Cached(ctx, house.ID)
}

func (r *Repository) load(ctx context.Context, kitchenID string) error {
	r.setLoading(true)
	defer r.setLoading(false)

	items, err := r.api.InventoryItems(ctx, kitchenID)
	if err != nil {
		return err
	}

	r.stateMu.Lock()
	r.items = items
	r.stateMu.Unlock()

	r.logger.Debug("Items loaded", "kitchen_id", kitchenID, "count", len(items))
	return nil
}

func (r *Repository) setLoading(v bool) {
	r.stateMu.Lock()
	r.loading = v
	r.stateMu.Unlock()
}

func (r *Repository) fail(op string, err error) Result {
	switch {
	case apperr.IsAuthentication(err):
		r.logger.Info("Not authenticated", "op", op, "error", err)
	case apperr.IsValidation(err):
		r.logger.Debug("Invalid input", "op", op, "error", err)
	case errors.Is(err, context.Canceled):
		r.logger.Debug("Canceled", "op", op)
	default:
		r.logger.Error("Inventory operation failed", "op", op, "error", err)
	}
	return failed(err)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
