package entity

import "github.com/shopspring/decimal"

// InventoryItem artículo de inventario con su punto de reorden.
type InventoryItem struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Category     string          `json:"category"`
}
