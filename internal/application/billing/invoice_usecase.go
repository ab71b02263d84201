package billing

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

// InvoiceUseCase facturas de venta: alta y cambio de estado de cobro.
type InvoiceUseCase struct {
	mu       sync.Mutex
	invoices repository.Aggregate[[]entity.Invoice]
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoices repository.Aggregate[[]entity.Invoice], log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, log: log.Component("billing"), now: time.Now}
}

// WithClock reemplaza la fuente de fecha (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// List devuelve las facturas, la más reciente primero.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]entity.Invoice, error) {
	return uc.invoices.Get(ctx)
}

// Get busca una factura por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (entity.Invoice, error) {
	list, err := uc.invoices.Get(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return entity.Invoice{}, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
}

// Create emite una factura PENDING numerada INV-<año>-<NNN>.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (entity.Invoice, error) {
	if err := validation.Struct(in); err != nil {
		return entity.Invoice{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.Amount.IsPositive() {
		return entity.Invoice{}, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrValidation)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.invoices.Get(ctx)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("billing: cargar facturas: %w", err)
	}
	now := uc.now()
	inv := entity.Invoice{
		ID:           uuid.New().String(),
		Number:       InvoiceNumber(now.Year(), len(list)+1),
		CustomerName: in.CustomerName,
		Date:         ledger.FormatDate(now),
		Amount:       in.Amount,
		Status:       entity.InvoicePending,
		ItemCount:    in.ItemCount,
	}
	next := make([]entity.Invoice, 0, len(list)+1)
	next = append(next, inv)
	next = append(next, list...)
	if err := uc.invoices.Put(ctx, next); err != nil {
		return entity.Invoice{}, fmt.Errorf("billing: guardar facturas: %w", err)
	}
	uc.log.Info().Str("invoice", inv.Number).Str("amount", inv.Amount.String()).Msg("factura emitida")
	return inv, nil
}

// ToggleStatus PAID pasa a PENDING; cualquier otro estado pasa a PAID.
func (uc *InvoiceUseCase) ToggleStatus(ctx context.Context, id string) (entity.Invoice, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.invoices.Get(ctx)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("billing: cargar facturas: %w", err)
	}
	i := indexOf(list, id)
	if i < 0 {
		return entity.Invoice{}, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	inv := list[i]
	inv.Status = NextStatus(inv.Status)
	next := make([]entity.Invoice, len(list))
	copy(next, list)
	next[i] = inv
	if err := uc.invoices.Put(ctx, next); err != nil {
		return entity.Invoice{}, fmt.Errorf("billing: guardar facturas: %w", err)
	}
	uc.log.Info().Str("invoice", inv.Number).Str("status", string(inv.Status)).Msg("estado de factura cambiado")
	return inv, nil
}

// InvoiceNumber formato INV-2025-007.
func InvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}

// NextStatus regla del interruptor de cobro.
func NextStatus(s entity.InvoiceStatus) entity.InvoiceStatus {
	if s == entity.InvoicePaid {
		return entity.InvoicePending
	}
	return entity.InvoicePaid
}

func indexOf(list []entity.Invoice, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
