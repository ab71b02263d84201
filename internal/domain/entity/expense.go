package entity

import "github.com/shopspring/decimal"

// Expense gasto operativo. Sólo se agrega; nunca se edita.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	ApprovedBy  string          `json:"approvedBy"`
}
