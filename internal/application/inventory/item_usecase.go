package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/inventory"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
	"github.com/enjaz/bizledger/pkg/validation"
)

const (
	defaultUnit     = "pcs"
	defaultCategory = "General"
)

// ItemUseCase artículos de inventario y alertas de stock bajo.
type ItemUseCase struct {
	mu       sync.Mutex
	items    repository.Aggregate[[]entity.InventoryItem]
	settings repository.Aggregate[entity.CompanySettings]
	gate     *authz.Gate
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	items repository.Aggregate[[]entity.InventoryItem],
	settings repository.Aggregate[entity.CompanySettings],
	gate *authz.Gate,
	log *logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{items: items, settings: settings, gate: gate, log: log.Component("inventory")}
}

// List devuelve todos los artículos.
func (uc *ItemUseCase) List(ctx context.Context) ([]entity.InventoryItem, error) {
	return uc.items.Get(ctx)
}

// Add da de alta un artículo. SKU, unidad y categoría toman valores por defecto.
func (uc *ItemUseCase) Add(ctx context.Context, in dto.AddItemRequest) (entity.InventoryItem, error) {
	if err := validation.Struct(in); err != nil {
		return entity.InventoryItem{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() || in.ReorderLevel.IsNegative() {
		return entity.InventoryItem{}, fmt.Errorf("%w: cantidad, precio y punto de reorden no pueden ser negativos", domain.ErrValidation)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.items.Get(ctx)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("inventory: cargar artículos: %w", err)
	}
	item := entity.InventoryItem{
		ID:           uuid.New().String(),
		SKU:          orDefault(in.SKU, fmt.Sprintf("SKU-%03d", len(list)+1)),
		Name:         in.Name,
		Quantity:     in.Quantity,
		Unit:         orDefault(in.Unit, defaultUnit),
		UnitPrice:    in.UnitPrice,
		ReorderLevel: in.ReorderLevel,
		Category:     orDefault(in.Category, defaultCategory),
	}
	next := append(append(make([]entity.InventoryItem, 0, len(list)+1), list...), item)
	if err := uc.items.Put(ctx, next); err != nil {
		return entity.InventoryItem{}, fmt.Errorf("inventory: guardar artículos: %w", err)
	}
	uc.log.Info().Str("item_id", item.ID).Str("sku", item.SKU).Msg("artículo creado")
	return item, nil
}

// Delete elimina un artículo. Requiere canDeleteItems.
func (uc *ItemUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanDeleteItems); err != nil {
		return err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.items.Get(ctx)
	if err != nil {
		return fmt.Errorf("inventory: cargar artículos: %w", err)
	}
	next := make([]entity.InventoryItem, 0, len(list))
	for _, it := range list {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if len(next) == len(list) {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	if err := uc.items.Put(ctx, next); err != nil {
		return fmt.Errorf("inventory: guardar artículos: %w", err)
	}
	uc.log.Info().Str("item_id", id).Str("actor", actor.UserID).Msg("artículo eliminado")
	return nil
}

// LowStock artículos en alerta según la configuración de la empresa.
func (uc *ItemUseCase) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	items, err := uc.items.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.LowStockItems(items, cfg.StockAlert), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
