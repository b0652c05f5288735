package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/middleware"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote/fake"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", apperr.ErrAuthenticationRequired
	}
	return string(s), nil
}

type testServer struct {
	*httptest.Server
	backend *fake.Backend
	jwt     *auth.JWTManager
	hits    atomic.Int32
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		backend: fake.New(),
		jwt:     auth.NewJWTManager("test-secret-123", time.Hour),
	}
	handler := middleware.RequireAuth(ts.jwt)(ts.backend.Handler(nil))
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) client(t *testing.T, token string) *remote.Client {
	t.Helper()
	c, err := remote.New(ts.URL, staticToken(token), remote.WithRetryInterval(time.Millisecond))
	require.NoError(t, err)
	return c
}

func (ts *testServer) token(t *testing.T) string {
	t.Helper()
	tok, err := ts.jwt.Generate("user-1", "user@example.com")
	require.NoError(t, err)
	return tok
}

func TestClientInventoryFlow(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := ts.client(t, ts.token(t))

	house, err := c.CreateHouse(ctx, remote.CreateHouseInput{Name: "My Home"})
	require.NoError(t, err)
	houses, err := c.Houses(ctx)
	require.NoError(t, err)
	require.Len(t, houses, 1)
	assert.Equal(t, house.ID, houses[0].ID)

	household, err := c.CreateHousehold(ctx, remote.CreateHouseholdInput{Name: "My Home", Description: "d"})
	require.NoError(t, err)
	kitchen, err := c.CreateKitchen(ctx, remote.CreateKitchenInput{HouseholdID: household.ID, Name: "Kitchen", Type: remote.KitchenTypeHome})
	require.NoError(t, err)
	assert.Equal(t, household.ID, kitchen.HouseholdID)

	households, err := c.Households(ctx)
	require.NoError(t, err)
	require.Len(t, households, 1)
	require.Len(t, households[0].Kitchens, 1)

	item, err := c.CreateInventoryItem(ctx, remote.CreateItemInput{
		KitchenID:   kitchen.ID,
		Name:        "Milk",
		Category:    models.CategoryDairy.Wire(),
		DefaultUnit: "liters",
		Location:    "fridge",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDairy, item.Category)

	_, err = c.CreateInventoryBatch(ctx, remote.CreateBatchInput{
		ItemID:       item.ID,
		Quantity:     decimal.RequireFromString("1.5"),
		Unit:         "liters",
		PurchaseDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	items, err := c.InventoryItems(ctx, kitchen.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].TotalQuantity.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, models.StatusGood, items[0].Status)

	name := "Skim Milk"
	updated, err := c.UpdateInventoryItem(ctx, item.ID, remote.UpdateItemInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Skim Milk", updated.Name)
	assert.Equal(t, "liters", updated.DefaultUnit)

	got, err := c.InventoryItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Skim Milk", got.Name)

	require.NoError(t, c.DeleteInventoryItem(ctx, item.ID))
	got, err = c.InventoryItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = c.DeleteInventoryItem(ctx, item.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestClientInterpretationAndClassification(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	c := ts.client(t, ts.token(t))

	intent, err := c.ProcessVoiceCommand(ctx, "add 3 bottles of water")
	require.NoError(t, err)
	assert.Equal(t, models.IntentAddItem, intent.Intent)
	assert.Equal(t, "water", intent.Item.RawName)
	assert.Equal(t, "bottles", intent.Item.Unit)
	assert.Equal(t, models.CategoryBeverages, intent.Item.Category)
	assert.True(t, intent.Item.Quantity.Equal(decimal.NewFromInt(3)))

	res, err := c.CategorizeProduct(ctx, "kombucha")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBeverages, res.Category)
}

func TestClientAuthentication(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	t.Run("missing token never reaches the network", func(t *testing.T) {
		c := ts.client(t, "")
		_, err := c.Houses(ctx)
		assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
		assert.Zero(t, ts.hits.Load())
	})

	t.Run("rejected token is an authentication error", func(t *testing.T) {
		c := ts.client(t, "not-a-jwt")
		_, err := c.Houses(ctx)
		require.Error(t, err)
		assert.True(t, apperr.IsAuthentication(err))
		assert.Equal(t, int32(1), ts.hits.Load(), "401 is not retried")
	})
}

func TestClientRetriesReadsOnly(t *testing.T) {
	ctx := context.Background()
	backend := fake.New()
	var hits atomic.Int32
	var failures atomic.Int32
	failures.Store(2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if failures.Load() > 0 {
			failures.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		backend.Handler(nil).ServeHTTP(w, r)
	}))
	defer srv.Close()

	c, err := remote.New(srv.URL, staticToken("t"), remote.WithRetryInterval(time.Millisecond), remote.WithReadAttempts(3))
	require.NoError(t, err)

	_, err = c.Houses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())

	hits.Store(0)
	failures.Store(1)
	_, err = c.CreateHouse(ctx, remote.CreateHouseInput{Name: "Flat"})
	require.Error(t, err)
	assert.True(t, apperr.IsRecoverable(err))
	assert.Equal(t, int32(1), hits.Load(), "mutations are sent once")
	assert.Zero(t, backend.Calls(remote.OpCreateHouse))
}

func TestClientRemoteErrors(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req remote.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remote.Response{Errors: []remote.ErrorPayload{{
			Message:    "kitchen is archived",
			Extensions: remote.ErrorExtensions{Code: apperr.CodeBadInput},
		}}})
	}))
	defer srv.Close()

	c, err := remote.New(srv.URL, staticToken("t"), remote.WithRetryInterval(time.Millisecond))
	require.NoError(t, err)

	_, err = c.InventoryItems(ctx, "k1")
	var remoteErr *apperr.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, apperr.CodeBadInput, remoteErr.Code)
	assert.Equal(t, remote.OpInventoryItems, remoteErr.Op)
	assert.Equal(t, int32(1), hits.Load(), "explicit errors are not retried")
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := remote.New(url, staticToken("t"), remote.WithRetryInterval(time.Millisecond), remote.WithReadAttempts(2))
	require.NoError(t, err)

	_, err = c.Houses(context.Background())
	var netErr *apperr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, apperr.MsgRetryable, apperr.UserMessage(err))
}

func TestNewValidation(t *testing.T) {
	_, err := remote.New("", staticToken("t"))
	assert.Error(t, err)
	_, err = remote.New("http://x", nil)
	assert.Error(t, err)
	_, err = remote.New("http://x", staticToken("t"), remote.WithReadAttempts(0))
	assert.Error(t, err)
}
