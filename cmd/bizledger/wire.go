package main

import (
	"context"

	"github.com/enjaz/bizledger/internal/application/analytics"
	"github.com/enjaz/bizledger/internal/application/auth"
	"github.com/enjaz/bizledger/internal/application/billing"
	"github.com/enjaz/bizledger/internal/application/expense"
	"github.com/enjaz/bizledger/internal/application/inventory"
	apppayroll "github.com/enjaz/bizledger/internal/application/payroll"
	"github.com/enjaz/bizledger/internal/application/purchasing"
	"github.com/enjaz/bizledger/internal/application/report"
	"github.com/enjaz/bizledger/internal/application/usecase"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/payroll"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/internal/infrastructure/export"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	infrapdf "github.com/enjaz/bizledger/internal/infrastructure/pdf"
	"github.com/enjaz/bizledger/pkg/config"
	"github.com/enjaz/bizledger/pkg/logger"
)

// application casos de uso cableados sobre un mismo store.
type application struct {
	auth      *auth.AuthUseCase
	payroll   *apppayroll.PayrollUseCase
	invoices  *billing.InvoiceUseCase
	suppliers *purchasing.SupplierUseCase
	expenses  *expense.ExpenseUseCase
	items     *inventory.ItemUseCase
	settings  *usecase.SettingsUseCase
	users     *usecase.UserUseCase
	dashboard *analytics.DashboardUseCase
	reports   *report.ReportUseCase
}

func build(store repository.Store, cfg *config.Config, log *logger.Logger) *application {
	employees := kv.NewList[entity.Employee](store, kv.KeyEmployees)
	invoices := kv.NewList[entity.Invoice](store, kv.KeyInvoices)
	suppliers := kv.NewList[entity.Supplier](store, kv.KeySuppliers)
	payments := kv.NewList[entity.PaymentTransaction](store, kv.KeyPayments)
	items := kv.NewList[entity.InventoryItem](store, kv.KeyInventory)
	expenses := kv.NewList[entity.Expense](store, kv.KeyExpenses)
	settings := kv.NewSnapshot(store, kv.KeySettings, entity.DefaultCompanySettings)
	permissions := kv.NewList[entity.RolePermission](store, kv.KeyPermissions)
	directory := kv.NewUserDirectory(store)

	gate := authz.NewGate(authz.DefaultMatrix())
	engine := payroll.NewEngine(gate, directory, payroll.Options{FloorNetSalary: cfg.Payroll.FloorNetSalary})
	payrollUC := apppayroll.NewPayrollUseCase(employees, engine, log)

	// proveedores y pagos se guardan juntos; atómico si el store lo soporta
	supplierUC := purchasing.NewSupplierUseCase(suppliers, payments, log).
		WithAtomicSave(func(ctx context.Context, s []entity.Supplier, p []entity.PaymentTransaction) error {
			b := kv.NewBatch()
			kv.Stage(b, suppliers, s)
			kv.Stage(b, payments, p)
			return b.Commit(ctx, store)
		})

	return &application{
		auth: auth.NewAuthUseCase(directory, employees, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, log),
		payroll:   payrollUC,
		invoices:  billing.NewInvoiceUseCase(invoices, log),
		suppliers: supplierUC,
		expenses:  expense.NewExpenseUseCase(expenses, log),
		items:     inventory.NewItemUseCase(items, settings, gate, log),
		settings:  usecase.NewSettingsUseCase(settings, permissions, gate, log),
		users:     usecase.NewUserUseCase(directory, gate, payrollUC, log),
		dashboard: analytics.NewDashboardUseCase(analytics.Sources{
			Invoices:  invoices,
			Expenses:  expenses,
			Suppliers: suppliers,
			Items:     items,
			Employees: employees,
			Settings:  settings,
		}),
		reports: report.NewReportUseCase(report.Sources{
			Invoices:  invoices,
			Suppliers: suppliers,
			Payments:  payments,
			Items:     items,
			Expenses:  expenses,
			Employees: employees,
			Settings:  settings,
		}, gate, export.Adapter{}, infrapdf.NewMarotoPrinter(), log),
	}
}
