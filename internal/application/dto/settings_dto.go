package dto

import (
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// UpdateSettingsRequest cambios de la configuración de la empresa; los campos
// nil no se tocan.
type UpdateSettingsRequest struct {
	Name       *string                  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	LogoURL    *string                  `json:"logoUrl,omitempty" validate:"omitempty,max=500"`
	Currency   *string                  `json:"currency,omitempty" validate:"omitempty,len=3"`
	TaxRate    *decimal.Decimal         `json:"taxRate,omitempty"`
	Address    *string                  `json:"address,omitempty" validate:"omitempty,max=250"`
	StockAlert *entity.StockAlertConfig `json:"stockAlert,omitempty"`
}

// SetPermissionRequest cambio de una celda de la matriz de permisos.
type SetPermissionRequest struct {
	Role       entity.Role       `json:"role" validate:"required"`
	Capability entity.Capability `json:"capability" validate:"required"`
	Allowed    bool              `json:"allowed"`
}
