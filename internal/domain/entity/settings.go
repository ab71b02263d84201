package entity

import "github.com/shopspring/decimal"

// StockAlertMode política de umbral de stock bajo.
type StockAlertMode string

const (
	AlertReorderLevel StockAlertMode = "REORDER_LEVEL"
	AlertGlobalMin    StockAlertMode = "GLOBAL_MIN"
	AlertPercentage   StockAlertMode = "PERCENTAGE"
)

// Valid informa si el modo es conocido.
func (m StockAlertMode) Valid() bool {
	switch m {
	case AlertReorderLevel, AlertGlobalMin, AlertPercentage:
		return true
	}
	return false
}

// StockAlertConfig configuración de alerta. Value se interpreta según Mode:
// cantidad absoluta en GLOBAL_MIN, porcentaje del punto de reorden en PERCENTAGE.
type StockAlertConfig struct {
	Mode  StockAlertMode  `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

// CompanySettings datos generales de la empresa.
type CompanySettings struct {
	Name       string           `json:"name"`
	LogoURL    string           `json:"logoUrl,omitempty"`
	Currency   string           `json:"currency"`
	TaxRate    decimal.Decimal  `json:"taxRate"`
	Address    string           `json:"address,omitempty"`
	StockAlert StockAlertConfig `json:"stockAlert"`
}

// DefaultCompanySettings valores iniciales (alerta por punto de reorden).
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		Name:       "My Company",
		Currency:   "EGP",
		TaxRate:    decimal.Zero,
		StockAlert: StockAlertConfig{Mode: AlertReorderLevel, Value: decimal.Zero},
	}
}
