// Package fake provides an in-memory implementation of remote.API.
//
// Backend keeps houses, households, kitchens, items and batches in maps and
// derives item aggregates the way the real store does. It counts calls per
// operation and can be told to fail an operation, which is what the tests of
// the inventory core rely on. Handler exposes the same backend as a GraphQL
// endpoint for the dev server.
package fake

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/aggregate"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
)

// Ensure Backend implements remote.API
var _ remote.API = (*Backend)(nil)

// InterpretFunc turns a transcript into an Intent.
type InterpretFunc func(transcript string) (*models.Intent, error)

// Option configures a Backend.
type Option func(*Backend)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithInterpreter replaces the built-in transcript parser.
func WithInterpreter(fn InterpretFunc) Option {
	return func(b *Backend) { b.interpret = fn }
}

// WithCatalog adds fixed answers for CategorizeProduct, keyed by lower-cased name.
func WithCatalog(catalog map[string]models.ClassificationResult) Option {
	return func(b *Backend) {
		for name, res := range catalog {
			b.catalog[strings.ToLower(strings.TrimSpace(name))] = res
		}
	}
}

type household struct {
	id       string
	name     string
	kitchens []models.Kitchen
}

type item struct {
	models.InventoryItem
	seq     int
	batches []models.InventoryBatch
}

type failure struct {
	err       error
	remaining int // -1 means every call
}

// Backend is an in-memory remote store. The zero value is not usable; call New.
type Backend struct {
	mu sync.Mutex

	now       func() time.Time
	interpret InterpretFunc
	catalog   map[string]models.ClassificationResult

	houses     []models.House
	households []*household
	items      map[string]*item
	seq        int

	calls    map[string]int
	failures map[string]*failure
	onCall   func(ctx context.Context, op string)
}

// New creates an empty Backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		now:       time.Now,
		interpret: Interpret,
		catalog:   defaultCatalog(),
		items:     make(map[string]*item),
		calls:     make(map[string]int),
		failures:  make(map[string]*failure),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// --------------------------------------------------------------------
// Test controls
// --------------------------------------------------------------------

// Calls returns how many times op was invoked.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// TotalCalls returns the number of invocations across all operations.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// ResetCalls zeroes the call counters.
func (b *Backend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = make(map[string]int)
}

// FailNext makes the next call of op return err.
func (b *Backend) FailNext(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = &failure{err: err, remaining: 1}
}

// FailAlways makes every call of op return err until ClearFailures.
func (b *Backend) FailAlways(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = &failure{err: err, remaining: -1}
}

// ClearFailures removes every injected failure.
func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]*failure)
}

// OnCall registers a hook run at the start of every call, outside the lock.
// Tests use it to block a call until they release it.
func (b *Backend) OnCall(fn func(ctx context.Context, op string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCall = fn
}

// SeedHousehold stores a household with kitchens of the given names without
// counting a call.
func (b *Backend) SeedHousehold(name string, kitchens ...string) models.Household {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := &household{id: uuid.NewString(), name: name}
	for _, k := range kitchens {
		h.kitchens = append(h.kitchens, models.Kitchen{ID: uuid.NewString(), HouseholdID: h.id, Name: k})
	}
	b.households = append(b.households, h)
	return h.view()
}

// begin counts the call, runs the hook and reports an injected failure.
func (b *Backend) begin(ctx context.Context, op string) error {
	b.mu.Lock()
	b.calls[op]++
	hook := b.onCall
	var err error
	if f, ok := b.failures[op]; ok {
		err = f.err
		if f.remaining > 0 {
			f.remaining--
			if f.remaining == 0 {
				delete(b.failures, op)
			}
		}
	}
	b.mu.Unlock()

	if hook != nil {
		hook(ctx, op)
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// --------------------------------------------------------------------
// Houses
// --------------------------------------------------------------------

func (b *Backend) Houses(ctx context.Context) ([]models.House, error) {
	if err := b.begin(ctx, remote.OpHouses); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.House, len(b.houses))
	copy(out, b.houses)
	return out, nil
}

func (b *Backend) CreateHouse(ctx context.Context, in remote.CreateHouseInput) (*models.House, error) {
	if err := b.begin(ctx, remote.OpCreateHouse); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, badInput(remote.OpCreateHouse, "name is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	h := models.House{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatedDate: b.now().UTC(),
	}
	b.houses = append(b.houses, h)
	return &h, nil
}

// --------------------------------------------------------------------
// Households and kitchens
// --------------------------------------------------------------------

func (h *household) view() models.Household {
	out := models.Household{ID: h.id, Name: h.name}
	if len(h.kitchens) > 0 {
		out.Kitchens = make([]models.Kitchen, len(h.kitchens))
		copy(out.Kitchens, h.kitchens)
	}
	return out
}

func (b *Backend) Households(ctx context.Context) ([]models.Household, error) {
	if err := b.begin(ctx, remote.OpHouseholds); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Household, 0, len(b.households))
	for _, h := range b.households {
		out = append(out, h.view())
	}
	return out, nil
}

func (b *Backend) CreateHousehold(ctx context.Context, in remote.CreateHouseholdInput) (*models.Household, error) {
	if err := b.begin(ctx, remote.OpCreateHousehold); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, badInput(remote.OpCreateHousehold, "name is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	h := &household{id: uuid.NewString(), name: in.Name}
	b.households = append(b.households, h)
	out := h.view()
	return &out, nil
}

func (b *Backend) CreateKitchen(ctx context.Context, in remote.CreateKitchenInput) (*models.Kitchen, error) {
	if err := b.begin(ctx, remote.OpCreateKitchen); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var owner *household
	for _, h := range b.households {
		if h.id == in.HouseholdID {
			owner = h
			break
		}
	}
	if owner == nil {
		return nil, notFound(remote.OpCreateKitchen, "household %s", in.HouseholdID)
	}

	k := models.Kitchen{ID: uuid.NewString(), HouseholdID: owner.id, Name: in.Name}
	owner.kitchens = append(owner.kitchens, k)
	return &k, nil
}

func (b *Backend) kitchenExists(id string) bool {
	for _, h := range b.households {
		for _, k := range h.kitchens {
			if k.ID == id {
				return true
			}
		}
	}
	return false
}

// --------------------------------------------------------------------
// Inventory
// --------------------------------------------------------------------

// view returns the item with its aggregates derived from its batches.
func (b *Backend) view(it *item) models.InventoryItem {
	out := it.InventoryItem
	out.Tags = append([]string(nil), it.Tags...)
	out.Batches = nil

	batches := make([]aggregate.Batch, 0, len(it.batches))
	now := b.now()
	for _, v := range it.batches {
		v.Status = aggregate.BatchStatus(v.ExpiryDate, now)
		out.Batches = append(out.Batches, v)
		batches = append(batches, aggregate.Batch{Quantity: v.Quantity, ExpiryDate: v.ExpiryDate})
	}

	sum := aggregate.Summarize(batches, it.Threshold, now)
	out.TotalQuantity = sum.TotalQuantity
	out.Status = sum.Status
	out.NextExpiry = sum.NextExpiry
	return out
}

func (b *Backend) InventoryItems(ctx context.Context, kitchenID string) ([]models.InventoryItem, error) {
	if err := b.begin(ctx, remote.OpInventoryItems); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	matched := make([]*item, 0)
	for _, it := range b.items {
		if it.KitchenID == kitchenID {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]models.InventoryItem, 0, len(matched))
	for _, it := range matched {
		out = append(out, b.view(it))
	}
	return out, nil
}

func (b *Backend) InventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	if err := b.begin(ctx, remote.OpInventoryItem); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[id]
	if !ok {
		return nil, nil
	}
	out := b.view(it)
	return &out, nil
}

func (b *Backend) CreateInventoryItem(ctx context.Context, in remote.CreateItemInput) (*models.InventoryItem, error) {
	op := remote.OpCreateInventoryItem
	if err := b.begin(ctx, op); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, badInput(op, "name is required")
	}
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, badInput(op, "unknown category %q", in.Category)
	}
	if in.Threshold.IsNegative() {
		return nil, badInput(op, "threshold must not be negative")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.kitchenExists(in.KitchenID) {
		return nil, notFound(op, "kitchen %s", in.KitchenID)
	}

	b.seq++
	it := &item{
		seq: b.seq,
		InventoryItem: models.InventoryItem{
			ID:          uuid.NewString(),
			KitchenID:   in.KitchenID,
			Name:        in.Name,
			Category:    category,
			DefaultUnit: in.DefaultUnit,
			Location:    in.Location,
			Threshold:   in.Threshold,
			Tags:        append([]string{}, in.Tags...),
		},
	}
	b.items[it.ID] = it
	out := b.view(it)
	return &out, nil
}

func (b *Backend) CreateInventoryBatch(ctx context.Context, in remote.CreateBatchInput) (*models.InventoryBatch, error) {
	op := remote.OpCreateInventoryBatch
	if err := b.begin(ctx, op); err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() {
		return nil, badInput(op, "quantity must not be negative")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[in.ItemID]
	if !ok {
		return nil, notFound(op, "item %s", in.ItemID)
	}

	purchased := in.PurchaseDate
	if purchased.IsZero() {
		purchased = b.now()
	}
	unit := in.Unit
	if unit == "" {
		unit = it.DefaultUnit
	}

	bt := models.InventoryBatch{
		ID:           uuid.NewString(),
		ItemID:       it.ID,
		Quantity:     in.Quantity,
		Unit:         unit,
		PurchaseDate: purchased.UTC(),
		ExpiryDate:   in.ExpiryDate,
	}
	it.batches = append(it.batches, bt)

	out := bt
	out.Status = aggregate.BatchStatus(out.ExpiryDate, b.now())
	return &out, nil
}

func (b *Backend) UpdateInventoryItem(ctx context.Context, id string, in remote.UpdateItemInput) (*models.InventoryItem, error) {
	op := remote.OpUpdateInventoryItem
	if err := b.begin(ctx, op); err != nil {
		return nil, err
	}

	var category models.Category
	if in.Category != nil {
		c, ok := models.ParseCategory(*in.Category)
		if !ok {
			return nil, badInput(op, "unknown category %q", *in.Category)
		}
		category = c
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, badInput(op, "name must not be empty")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[id]
	if !ok {
		return nil, notFound(op, "item %s", id)
	}
	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Category != nil {
		it.Category = category
	}
	if in.DefaultUnit != nil {
		it.DefaultUnit = *in.DefaultUnit
	}
	if in.Location != nil {
		it.Location = *in.Location
	}
	if in.Threshold != nil {
		it.Threshold = *in.Threshold
	}
	if in.Tags != nil {
		it.Tags = append([]string{}, in.Tags...)
	}

	out := b.view(it)
	return &out, nil
}

func (b *Backend) DeleteInventoryItem(ctx context.Context, id string) error {
	op := remote.OpDeleteInventoryItem
	if err := b.begin(ctx, op); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[id]; !ok {
		return notFound(op, "item %s", id)
	}
	delete(b.items, id)
	return nil
}

// --------------------------------------------------------------------
// Interpretation and classification
// --------------------------------------------------------------------

func (b *Backend) ProcessVoiceCommand(ctx context.Context, transcript string) (*models.Intent, error) {
	op := remote.OpProcessVoiceCommand
	if err := b.begin(ctx, op); err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, badInput(op, "transcript is required")
	}

	b.mu.Lock()
	interpret := b.interpret
	b.mu.Unlock()

	intent, err := interpret(transcript)
	if err != nil {
		return nil, &apperr.RemoteError{Op: op, Code: apperr.CodeBadInput, Message: err.Error()}
	}
	return intent, nil
}

func (b *Backend) CategorizeProduct(ctx context.Context, productName string) (*models.ClassificationResult, error) {
	if err := b.begin(ctx, remote.OpCategorizeProduct); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(productName))
	if res, ok := b.catalog[key]; ok {
		return &res, nil
	}
	return &models.ClassificationResult{
		Category:   models.CategoryOther,
		Confidence: 0.5,
		Reasoning:  "no close match in catalog",
	}, nil
}

// defaultCatalog covers names the keyword rules miss.
func defaultCatalog() map[string]models.ClassificationResult {
	entry := func(c models.Category) models.ClassificationResult {
		return models.ClassificationResult{Category: c, Confidence: 0.85, Reasoning: "catalog match"}
	}
	return map[string]models.ClassificationResult{
		"kombucha":  entry(models.CategoryBeverages),
		"tofu":      entry(models.CategoryOther),
		"hummus":    entry(models.CategoryCondiments),
		"ice cream": entry(models.CategoryFrozen),
		"tempeh":    entry(models.CategoryOther),
		"paneer":    entry(models.CategoryDairy),
		"lentils":   entry(models.CategoryVegetables),
		"granola":   entry(models.CategoryGrains),
		"nutella":   entry(models.CategoryCondiments),
		"edamame":   entry(models.CategoryFrozen),
	}
}

func badInput(op, format string, args ...any) error {
	return &apperr.RemoteError{Op: op, Code: apperr.CodeBadInput, Message: fmt.Sprintf(format, args...)}
}

func notFound(op, format string, args ...any) error {
	return &apperr.RemoteError{Op: op, Code: apperr.CodeNotFound, Message: fmt.Sprintf(format, args...) + " not found"}
}
