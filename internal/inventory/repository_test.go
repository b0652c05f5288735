package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote/fake"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/resolver"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/session"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage"
)

type fixture struct {
	repo    *Repository
	backend *fake.Backend
	session *session.Session
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	backend := fake.New()
	store := storage.NewMemoryStore()
	sess := session.New(store)
	require.NoError(t, sess.SetToken(ctx, "test-token"))
	require.NoError(t, sess.SelectHouse(ctx, "house-1", "My Home"))

	kitchens := resolver.NewKitchenResolver(backend, store, nil)
	return fixture{
		repo:    NewRepository(backend, sess, kitchens, nil),
		backend: backend,
		session: sess,
	}
}

func milk() AddItemInput {
	return AddItemInput{
		Name:     "Milk",
		Category: models.CategoryDairy,
		Quantity: decimal.NewFromInt(2),
		Unit:     "liters",
		Location: "fridge",
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	res := f.repo.AddItem(ctx, milk())
	require.True(t, res.Success, res.Error)
	require.NotEmpty(t, res.ItemID)

	items := f.repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
	assert.True(t, items[0].TotalQuantity.Equal(decimal.NewFromInt(2)), "total = %s", items[0].TotalQuantity)
	assert.Equal(t, "liters", items[0].DefaultUnit)
	require.Len(t, items[0].Batches, 1)
	assert.Equal(t, "liters", items[0].Batches[0].Unit)

	assert.Equal(t, 1, f.backend.Calls(remote.OpCreateInventoryItem))
	assert.Equal(t, 1, f.backend.Calls(remote.OpCreateInventoryBatch))
	assert.Equal(t, 1, f.backend.Calls(remote.OpInventoryItems), "write must be followed by a refetch")
	assert.False(t, f.repo.Loading())
}

func TestAddItem_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	res := f.repo.AddItem(ctx, milk())
	require.True(t, res.Success, res.Error)

	got := f.repo.GetItem(ctx, res.ItemID)
	require.NotNil(t, got)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, models.CategoryDairy, got.Category)
	assert.Equal(t, "liters", got.DefaultUnit)
	assert.Equal(t, "fridge", got.Location)
	assert.True(t, got.TotalQuantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, models.StatusGood, got.Status)
}

func TestAddItem_ValidationMakesNoRemoteCalls(t *testing.T) {
	tests := []struct {
		name  string
		input AddItemInput
		field string
	}{
		{name: "missing category", input: AddItemInput{Name: "Milk"}, field: "category"},
		{name: "missing name", input: AddItemInput{Category: models.CategoryDairy}, field: "name"},
		{name: "blank name", input: AddItemInput{Name: "   ", Category: models.CategoryDairy}, field: "name"},
		{name: "unknown category", input: AddItemInput{Name: "Milk", Category: "spaceship"}, field: "category"},
		{name: "negative quantity", input: AddItemInput{Name: "Milk", Category: models.CategoryDairy, Quantity: decimal.NewFromInt(-1)}, field: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			res := f.repo.AddItem(context.Background(), tt.input)

			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			var v *apperr.ValidationError
			require.True(t, errors.As(res.Err, &v), "got %v", res.Err)
			assert.Equal(t, tt.field, v.Field)
			assert.Zero(t, f.backend.TotalCalls())
		})
	}
}

func TestAddItem_AcceptsWireCategory(t *testing.T) {
	f := setup(t)
	in := milk()
	in.Category = "DAIRY"

	res := f.repo.AddItem(context.Background(), in)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, models.CategoryDairy, f.repo.Items()[0].Category)
}

func TestAddItem_DefaultUnit(t *testing.T) {
	f := setup(t)
	res := f.repo.AddItem(context.Background(), AddItemInput{
		Name:     "Apples",
		Category: models.CategoryFruits,
		Quantity: decimal.NewFromInt(6),
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, DefaultUnit, f.repo.Items()[0].DefaultUnit)
}

func TestAddItem_NotAuthenticated(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	require.NoError(t, f.session.ClearToken(ctx))

	res := f.repo.AddItem(ctx, milk())
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, apperr.ErrAuthenticationRequired)
	assert.Equal(t, apperr.MsgNotAuthenticated, res.Error)
	assert.Zero(t, f.backend.TotalCalls())
}

func TestAddItem_NoHouseSelected(t *testing.T) {
	ctx := context.Background()
	backend := fake.New()
	store := storage.NewMemoryStore()
	sess := session.New(store)
	require.NoError(t, sess.SetToken(ctx, "test-token"))
	repo := NewRepository(backend, sess, resolver.NewKitchenResolver(backend, store, nil), nil)

	res := repo.AddItem(ctx, milk())
	assert.False(t, res.Success)
	assert.True(t, apperr.IsValidation(res.Err))
	assert.Zero(t, backend.TotalCalls())
}

func TestAddItem_ResolverFailureAborts(t *testing.T) {
	f := setup(t)
	f.backend.FailAlways(remote.OpHouseholds, &apperr.NetworkError{Op: remote.OpHouseholds, Err: errors.New("offline")})

	res := f.repo.AddItem(context.Background(), milk())
	assert.False(t, res.Success)
	assert.Equal(t, apperr.MsgRetryable, res.Error)
	assert.Zero(t, f.backend.Calls(remote.OpCreateInventoryItem))
}

func TestAddItem_BatchFailureLeavesNoItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.backend.FailNext(remote.OpCreateInventoryBatch, &apperr.RemoteError{Code: apperr.CodeInternal, Message: "db down"})

	res := f.repo.AddItem(ctx, milk())
	assert.False(t, res.Success)
	assert.Equal(t, 1, f.backend.Calls(remote.OpDeleteInventoryItem))

	require.NoError(t, f.repo.Refresh(ctx))
	assert.Empty(t, f.repo.Items())
}

func TestAddItem_RefetchFailureStillSucceeds(t *testing.T) {
	f := setup(t)
	f.backend.FailAlways(remote.OpInventoryItems, &apperr.RemoteError{Code: apperr.CodeInternal})

	res := f.repo.AddItem(context.Background(), milk())
	assert.True(t, res.Success)
	assert.Empty(t, f.repo.Items())
	assert.False(t, f.repo.Loading())
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added := f.repo.AddItem(ctx, milk())
	require.True(t, added.Success, added.Error)

	name := "Oat Milk"
	location := "pantry"
	f.backend.ResetCalls()
	res := f.repo.UpdateItem(ctx, added.ItemID, UpdateItemInput{Name: &name, Location: &location})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, f.backend.Calls(remote.OpInventoryItems))

	items := f.repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Oat Milk", items[0].Name)
	assert.Equal(t, "pantry", items[0].Location)
	assert.Equal(t, models.CategoryDairy, items[0].Category, "unsupplied fields are untouched")
	assert.Equal(t, "liters", items[0].DefaultUnit)
}

func TestUpdateItem_Validation(t *testing.T) {
	f := setup(t)
	blank := " "
	bad := models.Category("spaceship")

	tests := []struct {
		name string
		id   string
		in   UpdateItemInput
	}{
		{name: "missing id", id: "", in: UpdateItemInput{Name: &blank}},
		{name: "nothing to update", id: "x", in: UpdateItemInput{}},
		{name: "blank name", id: "x", in: UpdateItemInput{Name: &blank}},
		{name: "unknown category", id: "x", in: UpdateItemInput{Category: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.repo.UpdateItem(context.Background(), tt.id, tt.in)
			assert.False(t, res.Success)
			assert.True(t, apperr.IsValidation(res.Err), "got %v", res.Err)
		})
	}
	assert.Zero(t, f.backend.TotalCalls())
}

func TestUpdateItem_NotFound(t *testing.T) {
	f := setup(t)
	name := "Ghost"
	res := f.repo.UpdateItem(context.Background(), "missing", UpdateItemInput{Name: &name})
	assert.False(t, res.Success)
	assert.True(t, apperr.IsNotFound(res.Err))
	assert.Zero(t, f.backend.Calls(remote.OpInventoryItems), "failed writes are not refetched")
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added := f.repo.AddItem(ctx, milk())
	require.True(t, added.Success, added.Error)
	require.Len(t, f.repo.Items(), 1)

	res := f.repo.DeleteItem(ctx, added.ItemID)
	require.True(t, res.Success, res.Error)
	assert.Empty(t, f.repo.Items())
	assert.Nil(t, f.repo.GetItem(ctx, added.ItemID))

	res = f.repo.DeleteItem(ctx, added.ItemID)
	assert.False(t, res.Success)
}

func TestAddBatch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added := f.repo.AddItem(ctx, milk())
	require.True(t, added.Success, added.Error)

	expiry := time.Now().Add(24 * time.Hour)
	res := f.repo.AddBatch(ctx, AddBatchInput{
		ItemID:     added.ItemID,
		Quantity:   decimal.RequireFromString("0.5"),
		Unit:       "liters",
		ExpiryDate: &expiry,
	})
	require.True(t, res.Success, res.Error)

	items := f.repo.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].TotalQuantity.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, models.StatusWarning, items[0].Status)
	require.NotNil(t, items[0].NextExpiry)

	res = f.repo.AddBatch(ctx, AddBatchInput{ItemID: added.ItemID})
	assert.True(t, apperr.IsValidation(res.Err))
}

func TestGetItem_FailureReturnsNil(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added := f.repo.AddItem(ctx, milk())
	require.True(t, added.Success, added.Error)

	f.backend.FailAlways(remote.OpInventoryItem, &apperr.NetworkError{Op: remote.OpInventoryItem, Err: errors.New("timeout")})
	assert.Nil(t, f.repo.GetItem(ctx, added.ItemID))
	assert.Nil(t, f.repo.GetItem(ctx, "unknown"))
	assert.Nil(t, f.repo.GetItem(ctx, ""))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	require.NoError(t, f.repo.Refresh(ctx))
	assert.Empty(t, f.repo.Items())

	require.NoError(t, f.session.ClearToken(ctx))
	err := f.repo.Refresh(ctx)
	assert.True(t, apperr.IsAuthentication(err))
}

// foreignItem creates an item directly in a kitchen that does not belong to
// the selected house.
func foreignItem(t *testing.T, f fixture, name string) *models.InventoryItem {
	t.Helper()
	h := f.backend.SeedHousehold("Cabin", "Cabin Kitchen")
	item, err := f.backend.CreateInventoryItem(context.Background(), remote.CreateItemInput{
		KitchenID:   h.Kitchens[0].ID,
		Name:        name,
		Category:    models.CategoryGrains.Wire(),
		DefaultUnit: "kg",
	})
	require.NoError(t, err)
	return item
}

func TestWritesWithColdCacheDoNotCreateContainers(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	rice := foreignItem(t, f, "Rice")
	oats := foreignItem(t, f, "Oats")
	f.backend.ResetCalls()

	res := f.repo.DeleteItem(ctx, rice.ID)
	require.True(t, res.Success, res.Error)

	res = f.repo.AddBatch(ctx, AddBatchInput{ItemID: oats.ID, Quantity: decimal.NewFromInt(1)})
	require.True(t, res.Success, res.Error)

	assert.Zero(t, f.backend.Calls(remote.OpHouseholds))
	assert.Zero(t, f.backend.Calls(remote.OpCreateHousehold))
	assert.Zero(t, f.backend.Calls(remote.OpCreateKitchen))
	assert.Zero(t, f.backend.Calls(remote.OpInventoryItems), "nothing to refetch before the kitchen is resolved")
}

func TestUpdateItem_RefetchesSelectedHouse(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added := f.repo.AddItem(ctx, milk())
	require.True(t, added.Success, added.Error)
	rice := foreignItem(t, f, "Rice")

	name := "Brown Rice"
	res := f.repo.UpdateItem(ctx, rice.ID, UpdateItemInput{Name: &name})
	require.True(t, res.Success, res.Error)

	items := f.repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, added.ItemID, items[0].ID, "list must stay on the selected house")
	assert.Equal(t, "Milk", items[0].Name)
}
