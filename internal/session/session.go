// Package session gives typed access to the per-device session values kept in
// the local key-value store: the auth token and the selected house.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage"
)

// Session reads and writes session values. One active user per device is
// assumed, so there is no locking beyond what the store provides.
type Session struct {
	store storage.Store
	now   func() time.Time
}

// New creates a Session over store.
func New(store storage.Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Token returns the stored auth token. A missing, empty or visibly expired
// token yields apperr.ErrAuthenticationRequired so callers can short-circuit
// before any network call.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.store.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return "", fmt.Errorf("read auth token: %w", err)
	}
	if !ok || token == "" {
		return "", apperr.ErrAuthenticationRequired
	}
	if exp, ok := auth.ExpiresAt(token); ok && !exp.After(s.now()) {
		return "", fmt.Errorf("token expired at %s: %w", exp.Format(time.RFC3339), apperr.ErrAuthenticationRequired)
	}
	return token, nil
}

// SetToken stores the auth token.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, storage.KeyAuthToken, token)
}

// ClearToken removes the auth token.
func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, storage.KeyAuthToken)
}

// SelectedHouse is the house currently chosen in the app.
type SelectedHouse struct {
	ID   string
	Name string
}

// SelectedHouse returns the current house. ok is false when none is selected.
func (s *Session) SelectedHouse(ctx context.Context) (house SelectedHouse, ok bool, err error) {
	id, found, err := s.store.Get(ctx, storage.KeySelectedHouseID)
	if err != nil {
		return SelectedHouse{}, false, fmt.Errorf("read selected house id: %w", err)
	}
	if !found || id == "" {
		return SelectedHouse{}, false, nil
	}
	name, _, err := s.store.Get(ctx, storage.KeySelectedHouseName)
	if err != nil {
		return SelectedHouse{}, false, fmt.Errorf("read selected house name: %w", err)
	}
	return SelectedHouse{ID: id, Name: name}, true, nil
}

// SelectHouse persists id and name as the current house.
func (s *Session) SelectHouse(ctx context.Context, id, name string) error {
	if err := s.store.Set(ctx, storage.KeySelectedHouseID, id); err != nil {
		return err
	}
	return s.store.Set(ctx, storage.KeySelectedHouseName, name)
}

// Store exposes the underlying key-value store for components that keep
// their own keys in it, such as the kitchen resolver cache.
func (s *Session) Store() storage.Store { return s.store }
