// Package purchasing gestiona proveedores y los pagos que se les hacen.
package purchasing

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

// SupplierUseCase proveedores y su historial de pagos.
type SupplierUseCase struct {
	mu        sync.Mutex
	suppliers repository.Aggregate[[]entity.Supplier]
	payments  repository.Aggregate[[]entity.PaymentTransaction]
	save      SaveFunc
	log       *logger.Logger
	now       func() time.Time
}

// SaveFunc guarda proveedores e historial de pagos como una sola escritura.
type SaveFunc func(ctx context.Context, suppliers []entity.Supplier, payments []entity.PaymentTransaction) error

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	suppliers repository.Aggregate[[]entity.Supplier],
	payments repository.Aggregate[[]entity.PaymentTransaction],
	log *logger.Logger,
) *SupplierUseCase {
	uc := &SupplierUseCase{suppliers: suppliers, payments: payments, log: log.Component("purchasing"), now: time.Now}
	uc.save = uc.saveSequential
	return uc
}

// WithAtomicSave reemplaza el guardado secuencial por uno atómico.
func (uc *SupplierUseCase) WithAtomicSave(fn SaveFunc) *SupplierUseCase {
	uc.save = fn
	return uc
}

func (uc *SupplierUseCase) saveSequential(ctx context.Context, suppliers []entity.Supplier, payments []entity.PaymentTransaction) error {
	if err := uc.suppliers.Put(ctx, suppliers); err != nil {
		return fmt.Errorf("purchasing: guardar proveedores: %w", err)
	}
	if err := uc.payments.Put(ctx, payments); err != nil {
		return fmt.Errorf("purchasing: guardar pagos: %w", err)
	}
	return nil
}

// List devuelve los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]entity.Supplier, error) {
	return uc.suppliers.Get(ctx)
}

// Payments devuelve el historial de pagos, el más reciente primero.
func (uc *SupplierUseCase) Payments(ctx context.Context) ([]entity.PaymentTransaction, error) {
	return uc.payments.Get(ctx)
}

// Add da de alta un proveedor con su deuda inicial.
func (uc *SupplierUseCase) Add(ctx context.Context, in dto.AddSupplierRequest) (entity.Supplier, error) {
	if err := validation.Struct(in); err != nil {
		return entity.Supplier{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.suppliers.Get(ctx)
	if err != nil {
		return entity.Supplier{}, fmt.Errorf("purchasing: cargar proveedores: %w", err)
	}
	s := entity.Supplier{ID: uuid.New().String(), Name: in.Name, Contact: in.Contact, Balance: in.OpeningBalance}
	next := append(append(make([]entity.Supplier, 0, len(list)+1), list...), s)
	if err := uc.suppliers.Put(ctx, next); err != nil {
		return entity.Supplier{}, fmt.Errorf("purchasing: guardar proveedores: %w", err)
	}
	uc.log.Info().Str("supplier_id", s.ID).Str("balance", s.Balance.String()).Msg("proveedor creado")
	return s, nil
}

// RecordPayment resta el pago del saldo del proveedor (puede quedar negativo)
// y lo agrega al historial.
func (uc *SupplierUseCase) RecordPayment(ctx context.Context, in dto.RecordPaymentRequest) (entity.PaymentTransaction, error) {
	if err := validation.Struct(in); err != nil {
		return entity.PaymentTransaction{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.Amount.IsPositive() {
		return entity.PaymentTransaction{}, fmt.Errorf("%w: el pago debe ser mayor que cero", domain.ErrValidation)
	}
	method := entity.PaymentMethod(in.Method)
	if method == "" {
		method = entity.MethodCash
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.suppliers.Get(ctx)
	if err != nil {
		return entity.PaymentTransaction{}, fmt.Errorf("purchasing: cargar proveedores: %w", err)
	}
	i := -1
	for k := range list {
		if list[k].ID == in.SupplierID {
			i = k
			break
		}
	}
	if i < 0 {
		return entity.PaymentTransaction{}, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}
	history, err := uc.payments.Get(ctx)
	if err != nil {
		return entity.PaymentTransaction{}, fmt.Errorf("purchasing: cargar pagos: %w", err)
	}

	next := make([]entity.Supplier, len(list))
	copy(next, list)
	next[i].Balance = next[i].Balance.Sub(in.Amount)
	tx := entity.PaymentTransaction{
		ID:           uuid.New().String(),
		SupplierID:   next[i].ID,
		SupplierName: next[i].Name,
		Date:         ledger.FormatDate(uc.now()),
		Amount:       in.Amount,
		Type:         entity.PaymentRegular,
		Method:       method,
		Reference:    in.Reference,
	}
	if err := uc.save(ctx, next, append([]entity.PaymentTransaction{tx}, history...)); err != nil {
		return entity.PaymentTransaction{}, err
	}
	uc.log.Info().Str("supplier_id", tx.SupplierID).Str("amount", tx.Amount.String()).
		Str("balance", next[i].Balance.String()).Msg("pago a proveedor registrado")
	return tx, nil
}
