package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/application/billing"
	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/pkg/logger"
)

func newInvoiceUseCase() *billing.InvoiceUseCase {
	invoices := kv.NewList[entity.Invoice](memory.NewStore(), kv.KeyInvoices)
	return billing.NewInvoiceUseCase(invoices, logger.Nop()).
		WithClock(func() time.Time { return time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC) })
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-001", billing.InvoiceNumber(2025, 1))
	assert.Equal(t, "INV-2025-042", billing.InvoiceNumber(2025, 42))
	assert.Equal(t, "INV-2026-1000", billing.InvoiceNumber(2026, 1000))
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, entity.InvoicePending, billing.NextStatus(entity.InvoicePaid))
	assert.Equal(t, entity.InvoicePaid, billing.NextStatus(entity.InvoicePending))
	assert.Equal(t, entity.InvoicePaid, billing.NextStatus(entity.InvoiceOverdue))
}

func TestCreate_NumeraYAntepone(t *testing.T) {
	uc := newInvoiceUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "Shop El Nour", Amount: decimal.NewFromInt(150), ItemCount: 3})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "Ali", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-001", first.Number)
	assert.Equal(t, "INV-2025-002", second.Number)
	assert.Equal(t, entity.InvoicePending, first.Status)
	assert.Equal(t, "2025-03-03", first.Date)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCreate_Validacion(t *testing.T) {
	uc := newInvoiceUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "Ali", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleStatus(t *testing.T) {
	uc := newInvoiceUseCase()
	ctx := context.Background()
	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{CustomerName: "Ali", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	paid, err := uc.ToggleStatus(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, paid.Status)

	back, err := uc.ToggleStatus(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePending, back.Status)

	got, err := uc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePending, got.Status)

	_, err = uc.ToggleStatus(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
