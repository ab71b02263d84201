// Package payroll orquesta el motor de nómina: carga la instantánea de
// empleados, aplica la operación y persiste el resultado sólo si tuvo éxito.
package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/payroll"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
)

// PayrollUseCase casos de uso de empleados, descuentos, adelantos y cuentas.
type PayrollUseCase struct {
	mu        sync.Mutex
	employees repository.Aggregate[[]entity.Employee]
	engine    *payroll.Engine
	log       *logger.Logger
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(employees repository.Aggregate[[]entity.Employee], engine *payroll.Engine, log *logger.Logger) *PayrollUseCase {
	return &PayrollUseCase{employees: employees, engine: engine, log: log.Component("payroll")}
}

// List devuelve todos los empleados.
func (uc *PayrollUseCase) List(ctx context.Context) ([]entity.Employee, error) {
	return uc.employees.Get(ctx)
}

// Get devuelve un empleado por ID.
func (uc *PayrollUseCase) Get(ctx context.Context, id string) (entity.Employee, error) {
	staff, err := uc.employees.Get(ctx)
	if err != nil {
		return entity.Employee{}, err
	}
	for _, e := range staff {
		if e.ID == id {
			return e, nil
		}
	}
	return entity.Employee{}, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
}

// Add da de alta un empleado.
func (uc *PayrollUseCase) Add(ctx context.Context, actor dto.Actor, in payroll.NewEmployee) (entity.Employee, error) {
	var out entity.Employee
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, emp, err := uc.engine.AddEmployee(staff, in, actor.Role)
		out = emp
		return next, err
	})
	if err != nil {
		return entity.Employee{}, err
	}
	uc.log.Info().Str("employee_id", out.ID).Str("actor", actor.UserID).Msg("empleado creado")
	return out, nil
}

// ApplyDeduction descuenta una fracción de día.
func (uc *PayrollUseCase) ApplyDeduction(ctx context.Context, id string, t entity.DeductionType, reason string) (entity.Deduction, error) {
	var out entity.Deduction
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, d, err := uc.engine.ApplyDeduction(staff, id, t, reason)
		out = d
		return next, err
	})
	if err != nil {
		return entity.Deduction{}, err
	}
	uc.log.Info().Str("employee_id", id).Str("type", string(t)).Str("amount", out.Amount.String()).Msg("descuento aplicado")
	return out, nil
}

// ApplyOtherDeduction registra una penalización de monto fijo.
func (uc *PayrollUseCase) ApplyOtherDeduction(ctx context.Context, id string, amount decimal.Decimal, reason string) (entity.Deduction, error) {
	var out entity.Deduction
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, d, err := uc.engine.ApplyOtherDeduction(staff, id, amount, reason)
		out = d
		return next, err
	})
	if err != nil {
		return entity.Deduction{}, err
	}
	uc.log.Info().Str("employee_id", id).Str("amount", amount.String()).Msg("penalización aplicada")
	return out, nil
}

// ApplyAdvance registra un adelanto de salario.
func (uc *PayrollUseCase) ApplyAdvance(ctx context.Context, id string, amount decimal.Decimal, reason string) (entity.Deduction, error) {
	var out entity.Deduction
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, d, err := uc.engine.ApplyAdvance(staff, id, amount, reason)
		out = d
		return next, err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("employee_id", id).Str("amount", amount.String()).Msg("adelanto rechazado")
		return entity.Deduction{}, err
	}
	uc.log.Info().Str("employee_id", id).Str("amount", amount.String()).Msg("adelanto registrado")
	return out, nil
}

// Update aplica cambios parciales.
func (uc *PayrollUseCase) Update(ctx context.Context, actor dto.Actor, id string, p payroll.Patch) (entity.Employee, error) {
	var out entity.Employee
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, emp, err := uc.engine.UpdateEmployee(staff, id, p, actor.Role)
		out = emp
		return next, err
	})
	if err != nil {
		return entity.Employee{}, err
	}
	uc.log.Info().Str("employee_id", id).Str("actor", actor.UserID).Msg("empleado actualizado")
	return out, nil
}

// Delete elimina un empleado (sólo OWNER).
func (uc *PayrollUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		return uc.engine.DeleteEmployee(staff, id, actor.Role)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("employee_id", id).Str("actor", actor.UserID).Msg("baja de empleado rechazada")
		return err
	}
	uc.log.Info().Str("employee_id", id).Str("actor", actor.UserID).Msg("empleado eliminado")
	return nil
}

// LinkAccount crea o actualiza la cuenta de usuario del empleado. Si no se
// puede guardar la nómina, la cuenta vuelve a su estado anterior.
func (uc *PayrollUseCase) LinkAccount(ctx context.Context, actor dto.Actor, id string, c payroll.Credentials) (dto.UserResponse, error) {
	var out entity.User
	err := uc.mutateAccount(ctx, id, func(staff []entity.Employee) ([]entity.Employee, error) {
		next, u, err := uc.engine.LinkUserAccount(ctx, staff, id, c, actor.Role)
		out = u
		return next, err
	})
	if err != nil {
		return dto.UserResponse{}, err
	}
	uc.log.Info().Str("employee_id", id).Str("user_id", out.ID).Str("role", string(out.Role)).Msg("cuenta vinculada")
	return dto.ToUserResponse(out), nil
}

// UnlinkAccount borra la cuenta vinculada (sólo OWNER).
func (uc *PayrollUseCase) UnlinkAccount(ctx context.Context, actor dto.Actor, id string) error {
	err := uc.mutateAccount(ctx, id, func(staff []entity.Employee) ([]entity.Employee, error) {
		return uc.engine.UnlinkUserAccount(ctx, staff, id, actor.Role)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("employee_id", id).Str("actor", actor.UserID).Msg("cuenta desvinculada")
	return nil
}

// ReleaseUser limpia las referencias a un usuario borrado desde el directorio.
func (uc *PayrollUseCase) ReleaseUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := uc.mutate(ctx, func(staff []entity.Employee) ([]entity.Employee, error) {
		var next []entity.Employee
		next, n = payroll.ReleaseUser(staff, userID)
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Str("user_id", userID).Int("employees", n).Msg("referencias a usuario liberadas")
	}
	return n, nil
}

// Statement estado de cuenta salarial del empleado.
func (uc *PayrollUseCase) Statement(ctx context.Context, id string) (payroll.Statement, error) {
	emp, err := uc.Get(ctx, id)
	if err != nil {
		return payroll.Statement{}, err
	}
	return payroll.BuildStatement(emp), nil
}

// mutate serializa carga → operación → guardado. Si fn falla no se persiste nada.
func (uc *PayrollUseCase) mutate(ctx context.Context, fn func([]entity.Employee) ([]entity.Employee, error)) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	staff, err := uc.employees.Get(ctx)
	if err != nil {
		return fmt.Errorf("payroll: cargar empleados: %w", err)
	}
	_, err = uc.apply(ctx, staff, fn)
	return err
}

// mutateAccount como mutate para operaciones que además escriben la cuenta
// del empleado id en el directorio. Si el guardado de la nómina falla, la
// cuenta se restaura al estado leído antes de fn.
func (uc *PayrollUseCase) mutateAccount(ctx context.Context, id string, fn func([]entity.Employee) ([]entity.Employee, error)) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	staff, err := uc.employees.Get(ctx)
	if err != nil {
		return fmt.Errorf("payroll: cargar empleados: %w", err)
	}
	userID, ok := payroll.AccountFor(staff, id)
	if !ok {
		_, err = uc.apply(ctx, staff, fn)
		return err
	}
	prev, err := uc.engine.Account(ctx, userID)
	if err != nil {
		return err
	}
	putFailed, err := uc.apply(ctx, staff, fn)
	if !putFailed {
		return err
	}
	if rerr := uc.engine.RestoreAccount(ctx, userID, prev); rerr != nil {
		uc.log.Error().Err(rerr).Str("employee_id", id).Str("user_id", userID).Msg("no se pudo restaurar la cuenta")
		return errors.Join(err, rerr)
	}
	uc.log.Warn().Err(err).Str("employee_id", id).Str("user_id", userID).Msg("cuenta restaurada tras fallo de guardado")
	return err
}

// apply ejecuta fn y guarda el resultado. putFailed indica que fn tuvo éxito
// pero el guardado no.
func (uc *PayrollUseCase) apply(ctx context.Context, staff []entity.Employee, fn func([]entity.Employee) ([]entity.Employee, error)) (putFailed bool, err error) {
	next, err := fn(staff)
	if err != nil {
		return false, err
	}
	if err := uc.employees.Put(ctx, next); err != nil {
		return true, fmt.Errorf("payroll: guardar empleados: %w", err)
	}
	return false, nil
}
