// Package authz implementa la autorización en dos niveles:
//
//   - nivel fijo: primitivas sensibles reservadas al OWNER, no configurables;
//   - nivel configurable: matriz rol → capacidad editable sólo por el OWNER.
//
// Los dos niveles son objetos de política separados que Gate compone; nunca se
// mezclan en un mismo árbol de decisiones.
package authz

import (
	"fmt"
	"sync"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Gate compone la política fija y la matriz configurable.
type Gate struct {
	fixed fixedPolicy

	mu     sync.RWMutex
	matrix Matrix
}

// NewGate construye el gate con la matriz indicada.
func NewGate(m Matrix) *Gate {
	return &Gate{matrix: m}
}

// Require verifica una primitiva del nivel fijo.
func (g *Gate) Require(actor entity.Role, action Action) error {
	return g.fixed.authorize(actor, action)
}

// IsAllowed consulta el nivel configurable.
func (g *Gate) IsAllowed(role entity.Role, c entity.Capability) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.matrix.IsAllowed(role, c)
}

// RequireCapability como IsAllowed pero devuelve ErrForbidden.
func (g *Gate) RequireCapability(role entity.Role, c entity.Capability) error {
	if !g.IsAllowed(role, c) {
		return fmt.Errorf("%w: el rol %s no tiene %s", domain.ErrForbidden, role, c)
	}
	return nil
}

// Matrix devuelve la matriz vigente (valor inmutable).
func (g *Gate) Matrix() Matrix {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.matrix
}

// Replace instala una matriz cargada desde persistencia.
func (g *Gate) Replace(m Matrix) {
	g.mu.Lock()
	g.matrix = m
	g.mu.Unlock()
}

// SetPermission cambia una celda de la matriz. Sólo el OWNER puede hacerlo y
// la fila del OWNER no es editable. Devuelve la nueva matriz para persistirla.
func (g *Gate) SetPermission(actor entity.Role, role entity.Role, c entity.Capability, v bool) (Matrix, error) {
	if err := g.Require(actor, ActionEditPermissionMatrix); err != nil {
		return Matrix{}, err
	}
	if !role.Valid() || role == entity.RoleOwner {
		return Matrix{}, fmt.Errorf("%w: rol %q no configurable", domain.ErrValidation, role)
	}
	if !c.Valid() {
		return Matrix{}, fmt.Errorf("%w: capacidad %q desconocida", domain.ErrValidation, c)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.matrix = g.matrix.With(role, c, v)
	return g.matrix, nil
}
