// Package payroll contiene el motor de nómina: ciclo de vida del empleado,
// descuentos, adelantos y vínculo con cuentas de usuario.
//
// Todas las operaciones reciben la instantánea actual de empleados y devuelven
// una nueva; nunca modifican el slice recibido ni los descuentos que contiene.
// Si una operación falla, el llamador conserva su instantánea intacta.
package payroll

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/ledger"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/password"
	"github.com/enjaz/bizledger/pkg/validation"
)

// DaysPerMonth divisor del salario base para la tarifa diaria.
const DaysPerMonth = 30

const (
	defaultPosition      = "Employee"
	defaultAdvanceReason = "Salary advance"
)

var dayFactors = map[entity.DeductionType]decimal.Decimal{
	entity.DeductionQuarterDay: decimal.NewFromFloat(0.25),
	entity.DeductionHalfDay:    decimal.NewFromFloat(0.5),
	entity.DeductionFullDay:    decimal.NewFromInt(1),
}

// Options ajustes del motor.
type Options struct {
	// FloorNetSalary limita los descuentos por días al salario neto positivo
	// restante. Por defecto false: el neto puede quedar negativo. Los adelantos
	// siempre están acotados por el neto, con o sin esta opción.
	FloorNetSalary bool
	// Clock fuente de la fecha de los movimientos (time.Now si es nil).
	Clock func() time.Time
	// NewID generador de IDs (uuid v4 si es nil).
	NewID func() string
	// HashPassword hashea contraseñas de cuentas vinculadas (bcrypt si es nil).
	HashPassword func(string) (string, error)
}

// Engine motor de nómina. Autoriza con el Gate y delega el almacenamiento de
// usuarios al directorio.
type Engine struct {
	gate  *authz.Gate
	users repository.UserDirectory
	opts  Options
}

// NewEngine construye el motor.
func NewEngine(gate *authz.Gate, users repository.UserDirectory, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.HashPassword == nil {
		opts.HashPassword = password.Hash
	}
	return &Engine{gate: gate, users: users, opts: opts}
}

// NewEmployee datos de alta.
type NewEmployee struct {
	Name       string `validate:"required,max=120"`
	Position   string `validate:"max=120"`
	BaseSalary decimal.Decimal
}

// Patch cambios parciales; los campos nil no se tocan.
type Patch struct {
	Name       *string
	Position   *string
	BaseSalary *decimal.Decimal
	Status     *entity.EmployeeStatus
}

// OwnerPlaceholder registro inicial del dueño, vinculado al super administrador.
func OwnerPlaceholder(joinDate string) entity.Employee {
	return entity.Employee{
		ID:           entity.OwnerPlaceholderEmployeeID,
		Name:         "General Manager",
		Position:     "Owner",
		BaseSalary:   decimal.Zero,
		NetSalary:    decimal.Zero,
		Status:       entity.EmployeeActive,
		JoinDate:     joinDate,
		Deductions:   []entity.Deduction{},
		LinkedUserID: entity.SuperAdminUserID,
	}
}

// AddEmployee da de alta un empleado ACTIVE con neto = base y sin descuentos.
// Requiere la capacidad canManageUsers del actor.
func (e *Engine) AddEmployee(staff []entity.Employee, in NewEmployee, actor entity.Role) ([]entity.Employee, entity.Employee, error) {
	if err := e.gate.RequireCapability(actor, entity.CanManageUsers); err != nil {
		return staff, entity.Employee{}, err
	}
	if err := validation.Struct(in); err != nil {
		return staff, entity.Employee{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !in.BaseSalary.IsPositive() {
		return staff, entity.Employee{}, fmt.Errorf("%w: el salario base debe ser mayor que cero", domain.ErrValidation)
	}
	position := in.Position
	if position == "" {
		position = defaultPosition
	}
	emp := entity.Employee{
		ID:         e.opts.NewID(),
		Name:       in.Name,
		Position:   position,
		BaseSalary: in.BaseSalary,
		NetSalary:  in.BaseSalary,
		Status:     entity.EmployeeActive,
		JoinDate:   e.today(),
		Deductions: []entity.Deduction{},
	}
	out := make([]entity.Employee, len(staff), len(staff)+1)
	copy(out, staff)
	return append(out, emp), emp, nil
}

// DailyRate tarifa diaria = salario base / 30.
func DailyRate(base decimal.Decimal) decimal.Decimal {
	return base.Div(decimal.NewFromInt(DaysPerMonth))
}

// ApplyDeduction descuenta una fracción de día (1/4, 1/2 o 1) del neto y
// registra el movimiento. OTHER y ADVANCE tienen operaciones propias.
func (e *Engine) ApplyDeduction(staff []entity.Employee, id string, t entity.DeductionType, reason string) ([]entity.Employee, entity.Deduction, error) {
	factor, ok := dayFactors[t]
	if !ok {
		return staff, entity.Deduction{}, fmt.Errorf("%w: tipo de descuento %q no es por días", domain.ErrValidation, t)
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, entity.Deduction{}, err
	}
	amount := DailyRate(staff[i].BaseSalary).Mul(factor)
	return e.deduct(staff, i, amount, t, reason)
}

// ApplyOtherDeduction registra una penalización de monto fijo (tipo OTHER).
func (e *Engine) ApplyOtherDeduction(staff []entity.Employee, id string, amount decimal.Decimal, reason string) ([]entity.Employee, entity.Deduction, error) {
	if !amount.IsPositive() {
		return staff, entity.Deduction{}, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrValidation)
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, entity.Deduction{}, err
	}
	return e.deduct(staff, i, amount, entity.DeductionOther, reason)
}

func (e *Engine) deduct(staff []entity.Employee, i int, amount decimal.Decimal, t entity.DeductionType, reason string) ([]entity.Employee, entity.Deduction, error) {
	emp := staff[i].Clone()
	if e.opts.FloorNetSalary && amount.GreaterThan(emp.NetSalary) {
		amount = decimal.Max(emp.NetSalary, decimal.Zero)
	}
	d := entity.Deduction{
		ID:     e.opts.NewID(),
		Date:   e.today(),
		Amount: amount,
		Type:   t,
		Reason: reason,
	}
	emp.NetSalary = emp.NetSalary.Sub(amount)
	emp.Deductions = append(emp.Deductions, d)
	return replaceAt(staff, i, emp), d, nil
}

// ApplyAdvance retira un adelanto acotado por el salario neto actual.
func (e *Engine) ApplyAdvance(staff []entity.Employee, id string, amount decimal.Decimal, reason string) ([]entity.Employee, entity.Deduction, error) {
	if !amount.IsPositive() {
		return staff, entity.Deduction{}, fmt.Errorf("%w: el adelanto debe ser mayor que cero", domain.ErrValidation)
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, entity.Deduction{}, err
	}
	if amount.GreaterThan(staff[i].NetSalary) {
		return staff, entity.Deduction{}, fmt.Errorf("%w: adelanto %s mayor que el neto %s",
			domain.ErrInsufficientBalance, amount, staff[i].NetSalary)
	}
	if reason == "" {
		reason = defaultAdvanceReason
	}
	emp := staff[i].Clone()
	d := entity.Deduction{
		ID:     e.opts.NewID(),
		Date:   e.today(),
		Amount: amount,
		Type:   entity.DeductionAdvance,
		Reason: reason,
	}
	emp.NetSalary = emp.NetSalary.Sub(amount)
	emp.Deductions = append(emp.Deductions, d)
	return replaceAt(staff, i, emp), d, nil
}

// UpdateEmployee aplica el parche. Cambiar el salario base exige OWNER y
// desplaza el neto en la misma diferencia.
func (e *Engine) UpdateEmployee(staff []entity.Employee, id string, p Patch, actor entity.Role) ([]entity.Employee, entity.Employee, error) {
	if p.BaseSalary != nil {
		if err := e.gate.Require(actor, authz.ActionEditBaseSalary); err != nil {
			return staff, entity.Employee{}, err
		}
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, entity.Employee{}, err
	}
	emp := staff[i].Clone()
	if p.Name != nil {
		if *p.Name == "" {
			return staff, entity.Employee{}, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
		}
		emp.Name = *p.Name
	}
	if p.Position != nil {
		emp.Position = *p.Position
	}
	if p.Status != nil {
		if *p.Status != entity.EmployeeActive && *p.Status != entity.EmployeeLeave {
			return staff, entity.Employee{}, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, *p.Status)
		}
		emp.Status = *p.Status
	}
	if p.BaseSalary != nil {
		if !p.BaseSalary.IsPositive() {
			return staff, entity.Employee{}, fmt.Errorf("%w: el salario base debe ser mayor que cero", domain.ErrValidation)
		}
		emp.NetSalary = emp.NetSalary.Add(p.BaseSalary.Sub(emp.BaseSalary))
		emp.BaseSalary = *p.BaseSalary
	}
	return replaceAt(staff, i, emp), emp, nil
}

// DeleteEmployee elimina un empleado. Sólo OWNER; el registro del dueño está
// protegido. No borra la cuenta vinculada: eso es UnlinkUserAccount.
func (e *Engine) DeleteEmployee(staff []entity.Employee, id string, actor entity.Role) ([]entity.Employee, error) {
	if err := e.gate.Require(actor, authz.ActionDeleteEmployee); err != nil {
		return staff, err
	}
	if id == entity.OwnerPlaceholderEmployeeID {
		return staff, fmt.Errorf("%w: no se puede eliminar el registro del dueño", domain.ErrProtectedRecord)
	}
	i, err := find(staff, id)
	if err != nil {
		return staff, err
	}
	out := make([]entity.Employee, 0, len(staff)-1)
	out = append(out, staff[:i]...)
	return append(out, staff[i+1:]...), nil
}

func (e *Engine) today() string { return ledger.FormatDate(e.opts.Clock()) }

func find(staff []entity.Employee, id string) (int, error) {
	for i := range staff {
		if staff[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
}

func replaceAt(staff []entity.Employee, i int, emp entity.Employee) []entity.Employee {
	out := make([]entity.Employee, len(staff))
	copy(out, staff)
	out[i] = emp
	return out
}
