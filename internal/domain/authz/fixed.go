package authz

import (
	"fmt"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Action primitiva sensible protegida por el nivel fijo.
type Action string

const (
	ActionEditBaseSalary       Action = "edit_base_salary"
	ActionDeleteEmployee       Action = "delete_employee"
	ActionElevateUser          Action = "elevate_user"
	ActionDeleteUser           Action = "delete_user"
	ActionEditPermissionMatrix Action = "edit_permission_matrix"
	ActionUnlinkUserAccount    Action = "unlink_user_account"
)

// fixedPolicy reglas codificadas que ninguna configuración puede relajar.
// Todas exigen OWNER.
type fixedPolicy struct{}

var ownerOnly = map[Action]struct{}{
	ActionEditBaseSalary:       {},
	ActionDeleteEmployee:       {},
	ActionElevateUser:          {},
	ActionDeleteUser:           {},
	ActionEditPermissionMatrix: {},
	ActionUnlinkUserAccount:    {},
}

// authorize devuelve ErrForbidden si el actor no puede ejecutar la acción.
// Una acción no registrada se deniega.
func (fixedPolicy) authorize(actor entity.Role, action Action) error {
	if _, ok := ownerOnly[action]; !ok {
		return fmt.Errorf("%w: acción desconocida %q", domain.ErrForbidden, action)
	}
	if actor != entity.RoleOwner {
		return fmt.Errorf("%w: %s requiere rol OWNER", domain.ErrForbidden, action)
	}
	return nil
}
