package entity

import "github.com/shopspring/decimal"

// Supplier proveedor. Balance es la deuda pendiente; puede quedar negativo
// tras un sobrepago y no se limita.
type Supplier struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Contact string          `json:"contact"`
	Balance decimal.Decimal `json:"balance"`
}

// PaymentType clase de movimiento con un proveedor.
type PaymentType string

const (
	PaymentRegular         PaymentType = "PAYMENT"
	PaymentPurchasePartial PaymentType = "PURCHASE_PARTIAL"
	PaymentPurchaseFull    PaymentType = "PURCHASE_FULL"
)

// PaymentMethod medio de pago.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodVisa   PaymentMethod = "VISA"
	MethodCheque PaymentMethod = "CHEQUE"
)

// PaymentTransaction registro de un pago hecho a un proveedor.
type PaymentTransaction struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Type         PaymentType     `json:"type"`
	Method       PaymentMethod   `json:"method"`
	Reference    string          `json:"reference,omitempty"` // número de cheque o de factura
}
