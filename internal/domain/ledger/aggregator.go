// Package ledger deriva métricas financieras a partir de facturas, gastos y
// proveedores. Todas las funciones son puras: no guardan estado derivado.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Metrics KPIs del tablero.
type Metrics struct {
	TotalSales          decimal.Decimal `json:"totalSales"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	UniqueCustomerCount int             `json:"uniqueCustomerCount"`
}

// MonthlyFlow ingresos y egresos de un mes calendario.
type MonthlyFlow struct {
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balances cuentas por cobrar y por pagar.
type Balances struct {
	TotalReceivables decimal.Decimal `json:"totalReceivables"`
	TotalPayables    decimal.Decimal `json:"totalPayables"`
}

// CashPosition flujo de caja simplificado: sólo cuenta facturas cobradas.
type CashPosition struct {
	PaidIncome    decimal.Decimal `json:"paidIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	CashOnHand    decimal.Decimal `json:"cashOnHand"`
}

// ComputeMetrics suma ventas (sin importar el estado), gastos, utilidad neta y
// cuenta clientes distintos por nombre.
func ComputeMetrics(invoices []entity.Invoice, expenses []entity.Expense) Metrics {
	sales := decimal.Zero
	customers := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		sales = sales.Add(inv.Amount)
		customers[inv.CustomerName] = struct{}{}
	}
	spent := sumExpenses(expenses)
	return Metrics{
		TotalSales:          sales,
		TotalExpenses:       spent,
		NetProfit:           sales.Sub(spent),
		UniqueCustomerCount: len(customers),
	}
}

// ComputeMonthlyFlows reparte ingresos y gastos en 12 meses (enero primero).
// Los registros con fecha no parseable se omiten en silencio.
func ComputeMonthlyFlows(invoices []entity.Invoice, expenses []entity.Expense) [12]MonthlyFlow {
	var flows [12]MonthlyFlow
	for i := range flows {
		flows[i] = MonthlyFlow{Month: time.Month(i + 1), Income: decimal.Zero, Expense: decimal.Zero}
	}
	for _, inv := range invoices {
		if d, ok := ParseDate(inv.Date); ok {
			b := &flows[d.Month()-1]
			b.Income = b.Income.Add(inv.Amount)
		}
	}
	for _, exp := range expenses {
		if d, ok := ParseDate(exp.Date); ok {
			b := &flows[d.Month()-1]
			b.Expense = b.Expense.Add(exp.Amount)
		}
	}
	return flows
}

// ComputeReceivablesPayables: por cobrar = facturas PENDING; por pagar = suma
// de saldos de proveedores, incluidos los negativos.
func ComputeReceivablesPayables(invoices []entity.Invoice, suppliers []entity.Supplier) Balances {
	recv := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == entity.InvoicePending {
			recv = recv.Add(inv.Amount)
		}
	}
	pay := decimal.Zero
	for _, s := range suppliers {
		pay = pay.Add(s.Balance)
	}
	return Balances{TotalReceivables: recv, TotalPayables: pay}
}

// ComputeCashPosition caja = facturas PAID − gastos.
func ComputeCashPosition(invoices []entity.Invoice, expenses []entity.Expense) CashPosition {
	paid := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == entity.InvoicePaid {
			paid = paid.Add(inv.Amount)
		}
	}
	spent := sumExpenses(expenses)
	return CashPosition{PaidIncome: paid, TotalExpenses: spent, CashOnHand: paid.Sub(spent)}
}

// CountOutstanding cuenta facturas sin cobrar (PENDING u OVERDUE).
func CountOutstanding(invoices []entity.Invoice) int {
	n := 0
	for _, inv := range invoices {
		if inv.Status == entity.InvoicePending || inv.Status == entity.InvoiceOverdue {
			n++
		}
	}
	return n
}

func sumExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
