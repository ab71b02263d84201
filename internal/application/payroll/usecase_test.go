package payroll_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/application/dto"
	apppayroll "github.com/enjaz/bizledger/internal/application/payroll"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/payroll"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/pkg/logger"
)

var (
	owner   = dto.Actor{UserID: entity.SuperAdminUserID, Role: entity.RoleOwner}
	manager = dto.Actor{UserID: "u-mgr", Role: entity.RoleManager}
)

// failingStore guarda en memoria pero falla Save cuando failSave es true o
// cuando la clave es failKey.
type failingStore struct {
	*memory.Store
	failSave bool
	failKey  string
}

func (s *failingStore) Save(ctx context.Context, key string, value []byte) error {
	if s.failSave || key == s.failKey {
		return errors.New("disco lleno")
	}
	return s.Store.Save(ctx, key, value)
}

type fixture struct {
	uc        *apppayroll.PayrollUseCase
	store     *failingStore
	employees *kv.Snapshot[[]entity.Employee]
	users     *kv.UserDirectory
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := &failingStore{Store: memory.NewStore()}
	users := kv.NewUserDirectory(store)
	employees := kv.NewList[entity.Employee](store, kv.KeyEmployees)
	seq := 0
	engine := payroll.NewEngine(authz.NewGate(authz.DefaultMatrix()), users, payroll.Options{
		Clock:        func() time.Time { return time.Date(2025, time.May, 14, 0, 0, 0, 0, time.UTC) },
		NewID:        func() string { seq++; return fmt.Sprintf("emp-%d", seq) },
		HashPassword: func(p string) (string, error) { return "hash:" + p, nil },
	})
	return fixture{
		uc:        apppayroll.NewPayrollUseCase(employees, engine, logger.Nop()),
		store:     store,
		employees: employees,
		users:     users,
	}
}

func (f fixture) add(t *testing.T, name, base string) entity.Employee {
	t.Helper()
	emp, err := f.uc.Add(context.Background(), owner, payroll.NewEmployee{Name: name, BaseSalary: decimal.RequireFromString(base)})
	require.NoError(t, err)
	return emp
}

func TestPayroll_AddPersiste(t *testing.T) {
	f := setup(t)
	emp := f.add(t, "Karim", "3000")

	stored, err := f.employees.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, emp.ID, stored[0].ID)
	assert.True(t, stored[0].NetSalary.Equal(decimal.NewFromInt(3000)))

	got, err := f.uc.Get(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Karim", got.Name)

	_, err = f.uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayroll_DescuentoYAdelanto(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")

	d, err := f.uc.ApplyDeduction(ctx, emp.ID, entity.DeductionHalfDay, "late")
	require.NoError(t, err)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(50)))

	_, err = f.uc.ApplyAdvance(ctx, emp.ID, decimal.NewFromInt(500), "")
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(2450)))
	assert.Len(t, got.Deductions, 2)

	st, err := f.uc.Statement(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, st.NetSalary.Equal(got.NetSalary))
}

func TestPayroll_ErrorNoPersiste(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "1000")

	_, err := f.uc.ApplyAdvance(ctx, emp.ID, decimal.NewFromInt(1001), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.NetSalary.Equal(decimal.NewFromInt(1000)))
	assert.Empty(t, got.Deductions)
}

func TestPayroll_FalloDeGuardado(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")

	f.store.failSave = true
	_, err := f.uc.ApplyDeduction(ctx, emp.ID, entity.DeductionFullDay, "")
	require.Error(t, err)

	f.store.failSave = false
	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Deductions)
}

func TestPayroll_DeleteSoloOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")

	assert.ErrorIs(t, f.uc.Delete(ctx, manager, emp.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.Delete(ctx, owner, emp.ID))

	list, err := f.uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPayroll_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")
	base := decimal.NewFromInt(3600)

	_, err := f.uc.Update(ctx, manager, emp.ID, payroll.Patch{BaseSalary: &base})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.Update(ctx, owner, emp.ID, payroll.Patch{BaseSalary: &base})
	require.NoError(t, err)
	assert.True(t, got.NetSalary.Equal(base))
}

func TestPayroll_CuentaVinculadaYLiberacion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")

	u, err := f.uc.LinkAccount(ctx, manager, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, payroll.LinkedUserID(emp.ID), u.ID)
	assert.Equal(t, entity.RoleViewer, u.Role)

	stored, err := f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash:secret1", stored.PasswordHash)

	n, err := f.uc.ReleaseUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, got.Linked())
}

func TestPayroll_Unlink(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")
	_, err := f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.UnlinkAccount(ctx, manager, emp.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.UnlinkAccount(ctx, owner, emp.ID))

	_, err = f.users.GetUser(ctx, payroll.LinkedUserID(emp.ID))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayroll_LinkAccountRevierteCuentaSiFallaNomina(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")

	f.store.failKey = kv.KeyEmployees
	_, err := f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.Error(t, err)

	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, got.Linked())

	f.store.failKey = ""
	u, err := f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.NoError(t, err)
	got, err = f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.LinkedUserID)
}

func TestPayroll_LinkAccountRestauraCuentaActualizada(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")
	u, err := f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.NoError(t, err)

	f.store.failKey = kv.KeyEmployees
	_, err = f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim.a", Password: "otra", Role: entity.RoleSales})
	require.Error(t, err)

	stored, err := f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "karim", stored.Username)
	assert.Equal(t, entity.RoleViewer, stored.Role)
	assert.Equal(t, "hash:secret1", stored.PasswordHash)
}

func TestPayroll_UnlinkRecreaCuentaSiFallaNomina(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	emp := f.add(t, "Karim", "3000")
	u, err := f.uc.LinkAccount(ctx, owner, emp.ID, payroll.Credentials{Username: "karim", Password: "secret1"})
	require.NoError(t, err)

	f.store.failKey = kv.KeyEmployees
	require.Error(t, f.uc.UnlinkAccount(ctx, owner, emp.ID))

	stored, err := f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "karim", stored.Username)
	got, err := f.uc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.LinkedUserID)
}
