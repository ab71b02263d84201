package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/ledger"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleInvoices() []entity.Invoice {
	return []entity.Invoice{
		{ID: "1", CustomerName: "Ahmed", Date: "2025-01-15", Amount: d(100), Status: entity.InvoicePaid},
		{ID: "2", CustomerName: "Mona", Date: "2025-03-02", Amount: d(50), Status: entity.InvoicePending},
	}
}

func TestComputeMetrics_EjemploBasico(t *testing.T) {
	m := ledger.ComputeMetrics(sampleInvoices(), []entity.Expense{{Amount: d(30), Date: "2025-01-20"}})

	assert.True(t, d(150).Equal(m.TotalSales), "totalSales=%s", m.TotalSales)
	assert.True(t, d(30).Equal(m.TotalExpenses))
	assert.True(t, d(120).Equal(m.NetProfit))
	assert.Equal(t, 2, m.UniqueCustomerCount)
}

func TestComputeMetrics_ClientesRepetidosYVacios(t *testing.T) {
	inv := append(sampleInvoices(), entity.Invoice{CustomerName: "Ahmed", Amount: d(10)})
	m := ledger.ComputeMetrics(inv, nil)
	assert.Equal(t, 2, m.UniqueCustomerCount)

	empty := ledger.ComputeMetrics(nil, nil)
	assert.True(t, empty.NetProfit.IsZero())
	assert.Equal(t, 0, empty.UniqueCustomerCount)
}

func TestComputeReceivablesPayables(t *testing.T) {
	suppliers := []entity.Supplier{
		{ID: "s1", Balance: d(200)},
		{ID: "s2", Balance: d(-20)}, // sobrepago, no se limita
	}
	b := ledger.ComputeReceivablesPayables(sampleInvoices(), suppliers)
	assert.True(t, d(50).Equal(b.TotalReceivables), "receivables=%s", b.TotalReceivables)
	assert.True(t, d(180).Equal(b.TotalPayables), "payables=%s", b.TotalPayables)
}

func TestComputeMonthlyFlows(t *testing.T) {
	invoices := append(sampleInvoices(),
		entity.Invoice{Date: "no-es-fecha", Amount: d(999)},
		entity.Invoice{Date: "2024-01-03T10:00:00Z", Amount: d(5)},
	)
	expenses := []entity.Expense{
		{Date: "2025-03-10", Amount: d(30)},
		{Date: "", Amount: d(70)},
	}
	flows := ledger.ComputeMonthlyFlows(invoices, expenses)

	assert.Len(t, flows, 12)
	assert.Equal(t, time.January, flows[0].Month)
	assert.Equal(t, time.December, flows[11].Month)
	assert.True(t, d(105).Equal(flows[0].Income), "enero=%s", flows[0].Income)
	assert.True(t, d(50).Equal(flows[2].Income))
	assert.True(t, d(30).Equal(flows[2].Expense))

	total := decimal.Zero
	for _, f := range flows {
		total = total.Add(f.Income).Add(f.Expense)
	}
	assert.True(t, d(185).Equal(total), "los registros con fecha inválida no deben sumarse")
}

func TestComputeCashPositionYOutstanding(t *testing.T) {
	invoices := append(sampleInvoices(), entity.Invoice{Amount: d(7), Status: entity.InvoiceOverdue})
	cash := ledger.ComputeCashPosition(invoices, []entity.Expense{{Amount: d(30)}})

	assert.True(t, d(100).Equal(cash.PaidIncome))
	assert.True(t, d(70).Equal(cash.CashOnHand))
	assert.Equal(t, 2, ledger.CountOutstanding(invoices))
}

func TestParseDate(t *testing.T) {
	_, ok := ledger.ParseDate("2025-02-30")
	assert.False(t, ok)
	got, ok := ledger.ParseDate(" 2025-02-03 ")
	assert.True(t, ok)
	assert.Equal(t, "2025-02-03", ledger.FormatDate(got))
}
