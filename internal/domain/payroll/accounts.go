package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/pkg/validation"
)

// Credentials datos de acceso para la cuenta vinculada. Password vacío al
// actualizar conserva la contraseña anterior.
type Credentials struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"max=72"`
	Role     entity.Role
}

// LinkedUserID ID determinista de la cuenta de un empleado.
func LinkedUserID(employeeID string) string { return "user-" + employeeID }

func canLinkAccounts(actor entity.Role) bool {
	switch actor {
	case entity.RoleOwner, entity.RoleAdmin, entity.RoleManager:
		return true
	}
	return false
}

// LinkUserAccount crea la cuenta del empleado o, si ya tiene una, la actualiza
// en lugar de crear un duplicado. Elevar a ADMIN u OWNER exige OWNER.
func (e *Engine) LinkUserAccount(ctx context.Context, staff []entity.Employee, id string, c Credentials, actor entity.Role) ([]entity.Employee, entity.User, error) {
	if !canLinkAccounts(actor) {
		return staff, entity.User{}, fmt.Errorf("%w: el rol %s no puede gestionar cuentas", domain.ErrForbidden, actor)
	}
	if c.Role == "" {
		c.Role = entity.RoleViewer
	}
	if !c.Role.Valid() {
		return staff, entity.User{}, fmt.Errorf("%w: rol %q desconocido", domain.ErrValidation, c.Role)
	}
	if c.Role.Privileged() {
		if err := e.gate.Require(actor, authz.ActionElevateUser); err != nil {
			return staff, entity.User{}, err
		}
	}
	if err := validation.Struct(c); err != nil {
		return staff, entity.User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, entity.User{}, err
	}
	emp := staff[i]

	if emp.Linked() {
		u, err := e.users.GetUser(ctx, emp.LinkedUserID)
		switch {
		case err == nil:
			u.Username = c.Username
			u.Role = c.Role
			u.Name = emp.Name
			if c.Password != "" {
				if u.PasswordHash, err = e.opts.HashPassword(c.Password); err != nil {
					return staff, entity.User{}, fmt.Errorf("payroll: hash de contraseña: %w", err)
				}
			}
			if err := e.users.UpdateUser(ctx, u); err != nil {
				return staff, entity.User{}, fmt.Errorf("payroll: actualizar usuario %s: %w", u.ID, err)
			}
			return replaceAt(staff, i, emp), u, nil
		case errors.Is(err, domain.ErrNotFound):
			// referencia colgante: se recrea la cuenta con el mismo ID
		default:
			return staff, entity.User{}, fmt.Errorf("payroll: obtener usuario %s: %w", emp.LinkedUserID, err)
		}
	}

	u := entity.User{
		ID:          LinkedUserID(emp.ID),
		Username:    c.Username,
		Name:        emp.Name,
		Role:        c.Role,
		Permissions: []string{},
	}
	if emp.Linked() {
		u.ID = emp.LinkedUserID
	}
	if c.Password != "" {
		if u.PasswordHash, err = e.opts.HashPassword(c.Password); err != nil {
			return staff, entity.User{}, fmt.Errorf("payroll: hash de contraseña: %w", err)
		}
	}
	if err := e.users.CreateUser(ctx, u); err != nil {
		return staff, entity.User{}, fmt.Errorf("payroll: crear usuario %s: %w", u.ID, err)
	}
	emp = emp.Clone()
	emp.LinkedUserID = u.ID
	return replaceAt(staff, i, emp), u, nil
}

// UnlinkUserAccount borra la cuenta vinculada en el directorio y limpia la
// referencia. El empleado se conserva. Sólo OWNER.
func (e *Engine) UnlinkUserAccount(ctx context.Context, staff []entity.Employee, id string, actor entity.Role) ([]entity.Employee, error) {
	if err := e.gate.Require(actor, authz.ActionUnlinkUserAccount); err != nil {
		return staff, err
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, err
	}
	emp := staff[i]
	if !emp.Linked() {
		return staff, fmt.Errorf("%w: el empleado %s no tiene cuenta vinculada", domain.ErrValidation, id)
	}
	if err := e.users.DeleteUser(ctx, emp.LinkedUserID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return staff, fmt.Errorf("payroll: borrar usuario %s: %w", emp.LinkedUserID, err)
	}
	emp = emp.Clone()
	emp.LinkedUserID = ""
	return replaceAt(staff, i, emp), nil
}

// ReleaseUser limpia toda referencia a userID tras borrar el usuario desde el
// directorio. Devuelve la nueva instantánea y cuántos empleados cambiaron.
func ReleaseUser(staff []entity.Employee, userID string) ([]entity.Employee, int) {
	out := make([]entity.Employee, len(staff))
	copy(out, staff)
	n := 0
	for i := range out {
		if out[i].LinkedUserID == userID {
			emp := out[i].Clone()
			emp.LinkedUserID = ""
			out[i] = emp
			n++
		}
	}
	return out, n
}

// Account cuenta del directorio con ID id; nil si no existe.
func (e *Engine) Account(ctx context.Context, id string) (*entity.User, error) {
	u, err := e.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("payroll: obtener usuario %s: %w", id, err)
	}
	return &u, nil
}

// RestoreAccount devuelve la cuenta id del directorio al estado prev leído con
// Account: la borra si prev es nil y si no la reescribe o la recrea.
func (e *Engine) RestoreAccount(ctx context.Context, id string, prev *entity.User) error {
	if prev == nil {
		if err := e.users.DeleteUser(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("payroll: restaurar usuario %s: %w", id, err)
		}
		return nil
	}
	err := e.users.UpdateUser(ctx, *prev)
	if errors.Is(err, domain.ErrNotFound) {
		err = e.users.CreateUser(ctx, *prev)
	}
	if err != nil {
		return fmt.Errorf("payroll: restaurar usuario %s: %w", id, err)
	}
	return nil
}

// AccountFor ID de la cuenta que LinkUserAccount o UnlinkUserAccount tocarían
// para el empleado id. false si el empleado no existe.
func AccountFor(staff []entity.Employee, id string) (string, bool) {
	i, err := find(staff, id)
	if err != nil {
		return "", false
	}
	if staff[i].Linked() {
		return staff[i].LinkedUserID, true
	}
	return LinkedUserID(id), true
}
