package dto

import "github.com/shopspring/decimal"

// AddItemRequest alta de artículo de inventario. SKU, Unit y Category son
// opcionales.
type AddItemRequest struct {
	SKU          string          `json:"sku" validate:"max=40"`
	Name         string          `json:"name" validate:"required,max=120"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"max=20"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Category     string          `json:"category" validate:"max=60"`
}
