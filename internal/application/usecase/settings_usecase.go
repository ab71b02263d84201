package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
	"github.com/enjaz/bizledger/pkg/validation"
)

// SettingsUseCase configuración de la empresa y matriz de permisos.
type SettingsUseCase struct {
	mu          sync.Mutex
	settings    repository.Aggregate[entity.CompanySettings]
	permissions repository.Aggregate[[]entity.RolePermission]
	gate        *authz.Gate
	log         *logger.Logger
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(
	settings repository.Aggregate[entity.CompanySettings],
	permissions repository.Aggregate[[]entity.RolePermission],
	gate *authz.Gate,
	log *logger.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, permissions: permissions, gate: gate, log: log.Component("settings")}
}

// LoadPermissions carga la matriz persistida en el gate. Si no hay matriz
// guardada se conserva la del gate.
func (uc *SettingsUseCase) LoadPermissions(ctx context.Context) error {
	rows, err := uc.permissions.Get(ctx)
	if err != nil {
		return fmt.Errorf("settings: cargar permisos: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	uc.gate.Replace(authz.NewMatrix(rows))
	return nil
}

// Get devuelve la configuración de la empresa.
func (uc *SettingsUseCase) Get(ctx context.Context) (entity.CompanySettings, error) {
	return uc.settings.Get(ctx)
}

// Update aplica los cambios. Requiere canEditSettings.
func (uc *SettingsUseCase) Update(ctx context.Context, actor dto.Actor, in dto.UpdateSettingsRequest) (entity.CompanySettings, error) {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanEditSettings); err != nil {
		return entity.CompanySettings{}, err
	}
	if err := validation.Struct(in); err != nil {
		return entity.CompanySettings{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if in.TaxRate != nil && in.TaxRate.IsNegative() {
		return entity.CompanySettings{}, fmt.Errorf("%w: la tasa de impuesto no puede ser negativa", domain.ErrValidation)
	}
	if in.StockAlert != nil {
		if !in.StockAlert.Mode.Valid() {
			return entity.CompanySettings{}, fmt.Errorf("%w: modo de alerta %q desconocido", domain.ErrValidation, in.StockAlert.Mode)
		}
		if in.StockAlert.Value.IsNegative() {
			return entity.CompanySettings{}, fmt.Errorf("%w: el valor de alerta no puede ser negativo", domain.ErrValidation)
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return entity.CompanySettings{}, fmt.Errorf("settings: cargar: %w", err)
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.LogoURL != nil {
		s.LogoURL = *in.LogoURL
	}
	if in.Currency != nil {
		s.Currency = *in.Currency
	}
	if in.TaxRate != nil {
		s.TaxRate = *in.TaxRate
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.StockAlert != nil {
		s.StockAlert = *in.StockAlert
	}
	if err := uc.settings.Put(ctx, s); err != nil {
		return entity.CompanySettings{}, fmt.Errorf("settings: guardar: %w", err)
	}
	uc.log.Info().Str("actor", actor.UserID).Str("alert_mode", string(s.StockAlert.Mode)).Msg("configuración actualizada")
	return s, nil
}

// Permissions filas de la matriz vigente.
func (uc *SettingsUseCase) Permissions() []entity.RolePermission {
	return uc.gate.Matrix().Rows()
}

// SetPermission cambia una celda de la matriz (sólo OWNER) y la persiste. Si
// no se puede guardar, el gate vuelve a la matriz anterior.
func (uc *SettingsUseCase) SetPermission(ctx context.Context, actor dto.Actor, in dto.SetPermissionRequest) ([]entity.RolePermission, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	prev := uc.gate.Matrix()
	m, err := uc.gate.SetPermission(actor.Role, in.Role, in.Capability, in.Allowed)
	if err != nil {
		return nil, err
	}
	if err := uc.permissions.Put(ctx, m.Rows()); err != nil {
		uc.gate.Replace(prev)
		return nil, fmt.Errorf("settings: guardar permisos: %w", err)
	}
	uc.log.Info().Str("role", string(in.Role)).Str("capability", string(in.Capability)).
		Bool("allowed", in.Allowed).Msg("permiso actualizado")
	return m.Rows(), nil
}
