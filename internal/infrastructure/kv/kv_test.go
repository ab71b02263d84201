package kv_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
)

func TestSnapshot_GetOrDefault(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	settings := kv.NewSnapshot(store, kv.KeySettings, entity.DefaultCompanySettings)

	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCompanySettings(), got)

	got.Name = "Enjaz"
	got.TaxRate = decimal.RequireFromString("14")
	require.NoError(t, settings.Put(ctx, got))

	again, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Enjaz", again.Name)
	assert.True(t, again.TaxRate.Equal(decimal.NewFromInt(14)))
}

func TestNewList_VacioNoNil(t *testing.T) {
	items, err := kv.NewList[entity.InventoryItem](memory.NewStore(), kv.KeyInventory).Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSnapshot_JSONCorrupto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, kv.KeyExpenses, []byte(`{"no":"lista"}`)))
	_, err := kv.NewList[entity.Expense](store, kv.KeyExpenses).Get(ctx)
	assert.Error(t, err)
}

func TestBatch_Commit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	emps := kv.NewList[entity.Employee](store, kv.KeyEmployees)
	invs := kv.NewList[entity.Invoice](store, kv.KeyInvoices)

	b := kv.NewBatch()
	kv.Stage(b, emps, []entity.Employee{{ID: "e1", Name: "Karim"}})
	kv.Stage(b, invs, []entity.Invoice{{ID: "i1", Number: "INV-2025-001"}})
	require.NoError(t, b.Commit(ctx, store))

	e, err := emps.Get(ctx)
	require.NoError(t, err)
	require.Len(t, e, 1)
	i, err := invs.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-001", i[0].Number)
}

func TestUserDirectory(t *testing.T) {
	ctx := context.Background()
	dir := kv.NewUserDirectory(memory.NewStore())

	require.NoError(t, dir.CreateUser(ctx, entity.User{ID: "u1", Username: "Karim", Role: entity.RoleSales}))
	err := dir.CreateUser(ctx, entity.User{ID: "u1", Username: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	err = dir.CreateUser(ctx, entity.User{ID: "u2", Username: "karim"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := dir.FindByUsername(ctx, "KARIM")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	u.Role = entity.RoleManager
	require.NoError(t, dir.UpdateUser(ctx, u))
	got, err := dir.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, got.Role)

	assert.ErrorIs(t, dir.UpdateUser(ctx, entity.User{ID: "nadie"}), domain.ErrNotFound)
	require.NoError(t, dir.DeleteUser(ctx, "u1"))
	assert.ErrorIs(t, dir.DeleteUser(ctx, "u1"), domain.ErrNotFound)
	_, err = dir.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := dir.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
