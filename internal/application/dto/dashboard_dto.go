package dto

import (
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/ledger"
)

// DashboardSummary datos del panel principal.
type DashboardSummary struct {
	Metrics          ledger.Metrics         `json:"metrics"`
	MonthlyFlows     [12]ledger.MonthlyFlow `json:"monthlyFlows"`
	Balances         ledger.Balances        `json:"balances"`
	Cash             ledger.CashPosition    `json:"cash"`
	OutstandingCount int                    `json:"outstandingInvoices"`
	LowStock         []entity.InventoryItem `json:"lowStock"`
	PayrollTotal     decimal.Decimal        `json:"payrollTotal"`
	EmployeeCount    int                    `json:"employeeCount"`
}
