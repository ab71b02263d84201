package entity

import "github.com/shopspring/decimal"

// InvoiceStatus estado de cobro de una factura de venta.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "PAID"
	InvoicePending InvoiceStatus = "PENDING"
	// InvoiceOverdue está reservado: ninguna operación actual lo asigna.
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// Invoice factura de venta.
type Invoice struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customerName"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Amount       decimal.Decimal `json:"amount"`
	Status       InvoiceStatus   `json:"status"`
	ItemCount    int             `json:"items"`
}
