// Package expense registra gastos operativos.
package expense

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/ledger"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
	"github.com/enjaz/bizledger/pkg/validation"
)

const defaultCategory = "Misc"

// ExpenseUseCase alta y consulta de gastos.
type ExpenseUseCase struct {
	mu       sync.Mutex
	expenses repository.Aggregate[[]entity.Expense]
	log      *logger.Logger
	now      func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenses repository.Aggregate[[]entity.Expense], log *logger.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, log: log.Component("expense"), now: time.Now}
}

// List devuelve los gastos, el más reciente primero.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]entity.Expense, error) {
	return uc.expenses.Get(ctx)
}

// Add registra un gasto con la fecha de hoy.
func (uc *ExpenseUseCase) Add(ctx context.Context, in dto.AddExpenseRequest) (entity.Expense, error) {
	if err := validation.Struct(in); err != nil {
		return entity.Expense{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.Amount.IsPositive() {
		return entity.Expense{}, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrValidation)
	}
	category := in.Category
	if category == "" {
		category = defaultCategory
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.expenses.Get(ctx)
	if err != nil {
		return entity.Expense{}, fmt.Errorf("expense: cargar gastos: %w", err)
	}
	e := entity.Expense{
		ID:          uuid.New().String(),
		Category:    category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        ledger.FormatDate(uc.now()),
		ApprovedBy:  in.ApprovedBy,
	}
	if err := uc.expenses.Put(ctx, append([]entity.Expense{e}, list...)); err != nil {
		return entity.Expense{}, fmt.Errorf("expense: guardar gastos: %w", err)
	}
	uc.log.Info().Str("expense_id", e.ID).Str("category", e.Category).Str("amount", e.Amount.String()).Msg("gasto registrado")
	return e, nil
}
