package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage"
)

func TestTokenMissing(t *testing.T) {
	s := New(storage.NewMemoryStore())
	_, err := s.Token(context.Background())
	assert.True(t, errors.Is(err, apperr.ErrAuthenticationRequired))
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryStore())
	require.NoError(t, s.SetToken(ctx, "opaque"))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque", tok)

	require.NoError(t, s.ClearToken(ctx))
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestExpiredJWTIsTreatedAsMissing(t *testing.T) {
	ctx := context.Background()
	m := auth.NewJWTManager("secret", time.Hour)
	tok, err := m.Generate("u1", "")
	require.NoError(t, err)

	s := New(storage.NewMemoryStore())
	require.NoError(t, s.SetToken(ctx, tok))

	_, err = s.Token(ctx)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
	assert.True(t, apperr.IsAuthentication(err))
}

func TestSelectedHouse(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryStore())

	_, ok, err := s.SelectedHouse(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SelectHouse(ctx, "h1", "My Home"))
	h, ok, err := s.SelectedHouse(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SelectedHouse{ID: "h1", Name: "My Home"}, h)
}
