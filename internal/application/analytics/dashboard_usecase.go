// Package analytics arma el resumen del tablero a partir de las instantáneas
// persistidas.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/inventory"
	"github.com/enjaz/bizledger/internal/domain/ledger"
	"github.com/enjaz/bizledger/internal/domain/repository"
)

// Sources raíces de agregado que alimentan el tablero.
type Sources struct {
	Invoices  repository.Aggregate[[]entity.Invoice]
	Expenses  repository.Aggregate[[]entity.Expense]
	Suppliers repository.Aggregate[[]entity.Supplier]
	Items     repository.Aggregate[[]entity.InventoryItem]
	Employees repository.Aggregate[[]entity.Employee]
	Settings  repository.Aggregate[entity.CompanySettings]
}

// DashboardUseCase genera el resumen financiero. Abierto a todos los roles.
type DashboardUseCase struct {
	src Sources
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Sources) *DashboardUseCase {
	return &DashboardUseCase{src: src}
}

type result[T any] struct {
	v   T
	err error
}

func load[T any](ctx context.Context, a repository.Aggregate[T]) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := a.Get(ctx)
		ch <- result[T]{v, err}
	}()
	return ch
}

// GetSummary carga las seis instantáneas en paralelo y deriva las métricas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (dto.DashboardSummary, error) {
	invCh := load(ctx, uc.src.Invoices)
	expCh := load(ctx, uc.src.Expenses)
	supCh := load(ctx, uc.src.Suppliers)
	itemCh := load(ctx, uc.src.Items)
	empCh := load(ctx, uc.src.Employees)
	setCh := load(ctx, uc.src.Settings)

	inv, exp, sup := <-invCh, <-expCh, <-supCh
	items, emps, settings := <-itemCh, <-empCh, <-setCh

	for _, c := range []struct {
		name string
		err  error
	}{
		{"facturas", inv.err}, {"gastos", exp.err}, {"proveedores", sup.err},
		{"inventario", items.err}, {"empleados", emps.err}, {"configuración", settings.err},
	} {
		if c.err != nil {
			return dto.DashboardSummary{}, fmt.Errorf("dashboard: %s: %w", c.name, c.err)
		}
	}

	payroll := decimal.Zero
	for _, e := range emps.v {
		payroll = payroll.Add(e.NetSalary)
	}

	return dto.DashboardSummary{
		Metrics:          ledger.ComputeMetrics(inv.v, exp.v),
		MonthlyFlows:     ledger.ComputeMonthlyFlows(inv.v, exp.v),
		Balances:         ledger.ComputeReceivablesPayables(inv.v, sup.v),
		Cash:             ledger.ComputeCashPosition(inv.v, exp.v),
		OutstandingCount: ledger.CountOutstanding(inv.v),
		LowStock:         inventory.LowStockItems(items.v, settings.v.StockAlert),
		PayrollTotal:     payroll,
		EmployeeCount:    len(emps.v),
	}, nil
}
