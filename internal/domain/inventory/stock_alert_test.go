package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/inventory"
)

func item(qty, reorder int64) entity.InventoryItem {
	return entity.InventoryItem{
		ID:           "it-1",
		SKU:          "SKU-001",
		Name:         "Cable",
		Quantity:     decimal.NewFromInt(qty),
		ReorderLevel: decimal.NewFromInt(reorder),
	}
}

func cfg(mode entity.StockAlertMode, v int64) entity.StockAlertConfig {
	return entity.StockAlertConfig{Mode: mode, Value: decimal.NewFromInt(v)}
}

func TestIsLowStock_PorModo(t *testing.T) {
	cases := []struct {
		name string
		item entity.InventoryItem
		cfg  entity.StockAlertConfig
		want bool
	}{
		{"global_min ignora el punto de reorden", item(5, 100), cfg(entity.AlertGlobalMin, 10), true},
		{"global_min por encima del mínimo", item(11, 100), cfg(entity.AlertGlobalMin, 10), false},
		{"reorder_level bajo el punto", item(5, 100), cfg(entity.AlertReorderLevel, 0), true},
		{"reorder_level sobre el punto", item(5, 2), cfg(entity.AlertReorderLevel, 0), false},
		{"reorder_level igual al punto", item(2, 2), cfg(entity.AlertReorderLevel, 0), true},
		{"percentage 50% de 100 = 50", item(50, 100), cfg(entity.AlertPercentage, 50), true},
		{"percentage 50% de 100 con 51", item(51, 100), cfg(entity.AlertPercentage, 50), false},
		{"modo desconocido usa reorder_level", item(3, 4), entity.StockAlertConfig{Mode: "OTRO"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.IsLowStock(tc.item, tc.cfg))
		})
	}
}

func TestIsLowStock_GlobalMinSoloDependeDeValorYCantidad(t *testing.T) {
	c := cfg(entity.AlertGlobalMin, 10)
	for _, reorder := range []int64{0, 2, 10, 1000} {
		assert.True(t, inventory.IsLowStock(item(5, reorder), c), "reorder=%d", reorder)
		assert.False(t, inventory.IsLowStock(item(15, reorder), c), "reorder=%d", reorder)
	}
}

func TestThreshold_Percentage(t *testing.T) {
	got := inventory.Threshold(item(0, 40), cfg(entity.AlertPercentage, 25))
	assert.True(t, decimal.NewFromInt(10).Equal(got), "25%% de 40 debe ser 10, fue %s", got)
}

func TestLowStockItems_ConservaOrden(t *testing.T) {
	a, b, c := item(1, 5), item(9, 5), item(5, 5)
	a.ID, b.ID, c.ID = "a", "b", "c"
	got := inventory.LowStockItems([]entity.InventoryItem{a, b, c}, cfg(entity.AlertReorderLevel, 0))
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	}
	assert.NotNil(t, inventory.LowStockItems(nil, cfg(entity.AlertReorderLevel, 0)))
}
