package expense_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/application/expense"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/pkg/logger"
)

func TestAdd_CategoriaPorDefectoYOrden(t *testing.T) {
	uc := expense.NewExpenseUseCase(kv.NewList[entity.Expense](memory.NewStore(), kv.KeyExpenses), logger.Nop())
	ctx := context.Background()

	rent, err := uc.Add(ctx, dto.AddExpenseRequest{Category: "Rent", Amount: decimal.NewFromInt(3000)})
	require.NoError(t, err)
	misc, err := uc.Add(ctx, dto.AddExpenseRequest{Description: "tea", Amount: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Equal(t, "Misc", misc.Category)
	assert.NotEmpty(t, misc.Date)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, misc.ID, list[0].ID)
	assert.Equal(t, rent.ID, list[1].ID)
}

func TestAdd_MontoInvalido(t *testing.T) {
	uc := expense.NewExpenseUseCase(kv.NewList[entity.Expense](memory.NewStore(), kv.KeyExpenses), logger.Nop())
	_, err := uc.Add(context.Background(), dto.AddExpenseRequest{Amount: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
