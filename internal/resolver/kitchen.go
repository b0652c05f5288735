// Package resolver maps a House to the Kitchen that holds its inventory.
//
// A House has no direct link to its Kitchen on the remote side. The resolver
// finds the Household whose name equals the House name, or creates one, and
// uses (or creates) a Kitchen inside it. The result is cached in the local
// key-value store under "kitchen_<houseId>" so later calls make no remote
// requests.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/metrics"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage"
)

// Resolution results reported to metrics.
const (
	resultCacheHit = "cache_hit"
	resultMatched  = "matched"
	resultCreated  = "created"
	resultError    = "error"
)

// KitchenResolver resolves House ids to Kitchen ids.
//
// Resolutions inside one resolver are serialized. Two resolvers (or two
// processes) resolving the same new House at once can still both create a
// Household; nothing on the remote side prevents it.
type KitchenResolver struct {
	mu     sync.Mutex
	api    remote.API
	cache  storage.Store
	logger *slog.Logger
}

// NewKitchenResolver creates a resolver caching into cache.
func NewKitchenResolver(api remote.API, cache storage.Store, logger *slog.Logger) *KitchenResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &KitchenResolver{api: api, cache: cache, logger: logger}
}

// GetOrCreateContainer returns the Kitchen id backing houseID, creating the
// Household and Kitchen when none exist. Any remote failure fails the whole
// resolution with an empty id; nothing is cached in that case.
func (r *KitchenResolver) GetOrCreateContainer(ctx context.Context, houseID, houseName string) (string, error) {
	if strings.TrimSpace(houseID) == "" {
		return "", apperr.Validation("houseId", "is required")
	}
	if strings.TrimSpace(houseName) == "" {
		return "", apperr.Validation("houseName", "is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := storage.KitchenKey(houseID)
	cached, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Failed to read kitchen cache", "house_id", houseID, "error", err)
	} else if ok && cached != "" {
		r.logger.Debug("Kitchen resolved from cache", "house_id", houseID, "kitchen_id", cached)
		metrics.ObserveKitchenResolution(resultCacheHit)
		return cached, nil
	}

	kitchenID, result, err := r.resolve(ctx, houseName)
	if err != nil {
		metrics.ObserveKitchenResolution(resultError)
		r.logger.Error("Failed to resolve kitchen", "house_id", houseID, "house_name", houseName, "error", err)
		return "", err
	}
	metrics.ObserveKitchenResolution(result)

	if err := r.cache.Set(ctx, key, kitchenID); err != nil {
		r.logger.Warn("Failed to cache kitchen", "house_id", houseID, "kitchen_id", kitchenID, "error", err)
	}
	r.logger.Info("Kitchen resolved", "house_id", houseID, "kitchen_id", kitchenID, "result", result)
	return kitchenID, nil
}

// Cached returns the kitchen already resolved for houseID without any remote
// call. ok is false when nothing is cached.
func (r *KitchenResolver) Cached(ctx context.Context, houseID string) (kitchenID string, ok bool, err error) {
	if strings.TrimSpace(houseID) == "" {
		return "", false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kitchenID, ok, err = r.cache.Get(ctx, storage.KitchenKey(houseID))
	if err != nil || kitchenID == "" {
		return "", false, err
	}
	return kitchenID, ok, nil
}

// Forget drops the cached kitchen of houseID.
func (r *KitchenResolver) Forget(ctx context.Context, houseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Delete(ctx, storage.KitchenKey(houseID))
}

func (r *KitchenResolver) resolve(ctx context.Context, houseName string) (string, string, error) {
	households, err := r.api.Households(ctx)
	if err != nil {
		return "", "", fmt.Errorf("list households: %w", err)
	}

	household := findHousehold(households, houseName)
	if household != nil && len(household.Kitchens) > 0 {
		return household.Kitchens[0].ID, resultMatched, nil
	}

	if household == nil {
		created, err := r.api.CreateHousehold(ctx, remote.CreateHouseholdInput{
			Name:        houseName,
			Description: fmt.Sprintf("Household for %s", houseName),
		})
		if err != nil {
			return "", "", fmt.Errorf("create household: %w", err)
		}
		household = created
	}

	kitchen, err := r.api.CreateKitchen(ctx, remote.CreateKitchenInput{
		HouseholdID: household.ID,
		Name:        fmt.Sprintf("%s Kitchen", houseName),
		Description: fmt.Sprintf("Kitchen for %s", houseName),
		Type:        remote.KitchenTypeHome,
	})
	if err != nil {
		// The household stays behind without a kitchen. The next resolution
		// matches it by name and only creates the kitchen.
		r.logger.Warn("Household left without kitchen",
			"household_id", household.ID,
			"household_name", household.Name,
			"error", err,
		)
		return "", "", fmt.Errorf("create kitchen: %w", err)
	}
	return kitchen.ID, resultCreated, nil
}

func findHousehold(households []models.Household, name string) *models.Household {
	for i := range households {
		if households[i].Name == name {
			return &households[i]
		}
	}
	return nil
}
