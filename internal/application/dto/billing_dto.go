package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest alta de factura de venta.
type CreateInvoiceRequest struct {
	CustomerName string          `json:"customerName" validate:"required,max=120"`
	Amount       decimal.Decimal `json:"amount"`
	ItemCount    int             `json:"items" validate:"min=0"`
}

// AddSupplierRequest alta de proveedor. OpeningBalance es la deuda inicial.
type AddSupplierRequest struct {
	Name           string          `json:"name" validate:"required,max=120"`
	Contact        string          `json:"contact" validate:"max=120"`
	OpeningBalance decimal.Decimal `json:"balance"`
}

// RecordPaymentRequest pago a un proveedor.
type RecordPaymentRequest struct {
	SupplierID string          `json:"supplierId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"omitempty,oneof=CASH VISA CHEQUE"`
	Reference  string          `json:"reference" validate:"max=60"`
}

// AddExpenseRequest registro de gasto.
type AddExpenseRequest struct {
	Category    string          `json:"category" validate:"max=60"`
	Description string          `json:"description" validate:"max=250"`
	Amount      decimal.Decimal `json:"amount"`
	ApprovedBy  string          `json:"approvedBy" validate:"max=120"`
}
