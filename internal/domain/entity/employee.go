package entity

import "github.com/shopspring/decimal"

// OwnerPlaceholderEmployeeID es el registro inicial del dueño; no se puede borrar.
const OwnerPlaceholderEmployeeID = "admin-emp"

// EmployeeStatus estado laboral. Nunca cambia automáticamente.
type EmployeeStatus string

const (
	EmployeeActive EmployeeStatus = "ACTIVE"
	EmployeeLeave  EmployeeStatus = "LEAVE"
)

// DeductionType clase de descuento sobre el salario.
type DeductionType string

const (
	DeductionQuarterDay DeductionType = "QUARTER_DAY"
	DeductionHalfDay    DeductionType = "HALF_DAY"
	DeductionFullDay    DeductionType = "FULL_DAY"
	DeductionOther      DeductionType = "OTHER"
	DeductionAdvance    DeductionType = "ADVANCE"
)

// Deduction movimiento inmutable sobre el salario neto (descuento o adelanto).
type Deduction struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Type   DeductionType   `json:"type"`
	Reason string          `json:"reason"`
}

// Employee agregado de nómina. LinkedUserID es una referencia débil a User.ID.
type Employee struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Position     string          `json:"position"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
	NetSalary    decimal.Decimal `json:"netSalary"`
	Status       EmployeeStatus  `json:"status"`
	JoinDate     string          `json:"joinDate"`
	Deductions   []Deduction     `json:"deductions"`
	LinkedUserID string          `json:"linkedUserId,omitempty"`
}

// Clone copia el empleado sin compartir el slice de descuentos.
func (e Employee) Clone() Employee {
	out := e
	out.Deductions = make([]Deduction, len(e.Deductions))
	copy(out.Deductions, e.Deductions)
	return out
}

// Linked informa si el empleado tiene cuenta de usuario vinculada.
func (e Employee) Linked() bool { return e.LinkedUserID != "" }
