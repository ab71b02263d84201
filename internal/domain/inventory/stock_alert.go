package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Threshold devuelve el umbral de stock bajo del artículo según la configuración.
//
//	REORDER_LEVEL → item.ReorderLevel
//	GLOBAL_MIN    → cfg.Value (se ignora el punto de reorden)
//	PERCENTAGE    → item.ReorderLevel * cfg.Value / 100
//
// Un modo desconocido se trata como REORDER_LEVEL.
func Threshold(item entity.InventoryItem, cfg entity.StockAlertConfig) decimal.Decimal {
	switch cfg.Mode {
	case entity.AlertGlobalMin:
		return cfg.Value
	case entity.AlertPercentage:
		return item.ReorderLevel.Mul(cfg.Value.Div(hundred))
	default:
		return item.ReorderLevel
	}
}

// IsLowStock informa si la cantidad está en o por debajo del umbral.
// Función pura: se recalcula cada vez que cambian el inventario o la configuración.
func IsLowStock(item entity.InventoryItem, cfg entity.StockAlertConfig) bool {
	return item.Quantity.LessThanOrEqual(Threshold(item, cfg))
}

// LowStockItems filtra los artículos en alerta conservando el orden original.
func LowStockItems(items []entity.InventoryItem, cfg entity.StockAlertConfig) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0)
	for _, it := range items {
		if IsLowStock(it, cfg) {
			out = append(out, it)
		}
	}
	return out
}
