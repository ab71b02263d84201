package report

import (
	"context"
	"fmt"
	"io"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/payroll"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
)

// Format formato de exportación.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Sources raíces de agregado exportables.
type Sources struct {
	Invoices  repository.Aggregate[[]entity.Invoice]
	Suppliers repository.Aggregate[[]entity.Supplier]
	Payments  repository.Aggregate[[]entity.PaymentTransaction]
	Items     repository.Aggregate[[]entity.InventoryItem]
	Expenses  repository.Aggregate[[]entity.Expense]
	Employees repository.Aggregate[[]entity.Employee]
	Settings  repository.Aggregate[entity.CompanySettings]
}

// ReportUseCase exportaciones e impresiones.
type ReportUseCase struct {
	src      Sources
	gate     *authz.Gate
	exporter Exporter
	printer  Printer
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(src Sources, gate *authz.Gate, exporter Exporter, printer Printer, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{src: src, gate: gate, exporter: exporter, printer: printer, log: log.Component("report")}
}

// Export escribe el listado ds en w.
func (uc *ReportUseCase) Export(ctx context.Context, actor dto.Actor, ds Dataset, f Format, w io.Writer) error {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanViewReports); err != nil {
		return err
	}
	rows, err := uc.rows(ctx, ds)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: no hay registros que exportar", domain.ErrValidation)
	}
	if err := uc.write(w, f, string(ds), headersOf(rows[0]), rows); err != nil {
		return err
	}
	uc.log.Info().Str("dataset", string(ds)).Str("format", string(f)).Int("rows", len(rows)).Str("actor", actor.UserID).Msg("exportación generada")
	return nil
}

// ExportStatement exporta el historial de descuentos y adelantos del empleado.
// Sin movimientos se escribe sólo la cabecera.
func (uc *ReportUseCase) ExportStatement(ctx context.Context, actor dto.Actor, employeeID string, f Format, w io.Writer) error {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanViewReports); err != nil {
		return err
	}
	staff, err := uc.src.Employees.Get(ctx)
	if err != nil {
		return fmt.Errorf("report: cargar empleados: %w", err)
	}
	for _, e := range staff {
		if e.ID == employeeID {
			return uc.write(w, f, "statement", statementHeaders, statementRows(e.Deductions))
		}
	}
	return fmt.Errorf("%w: empleado %s", domain.ErrNotFound, employeeID)
}

// PrintInvoice genera el PDF de una factura.
func (uc *ReportUseCase) PrintInvoice(ctx context.Context, actor dto.Actor, invoiceID string) ([]byte, error) {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanViewReports); err != nil {
		return nil, err
	}
	list, err := uc.src.Invoices.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: cargar facturas: %w", err)
	}
	company, err := uc.src.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: cargar configuración: %w", err)
	}
	for _, inv := range list {
		if inv.ID == invoiceID {
			return uc.printer.PrintInvoice(ctx, inv, company)
		}
	}
	return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
}

// PrintReport genera el PDF de un listado con sus totales.
func (uc *ReportUseCase) PrintReport(ctx context.Context, actor dto.Actor, ds Dataset) ([]byte, error) {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanViewReports); err != nil {
		return nil, err
	}
	rows, err := uc.rows(ctx, ds)
	if err != nil {
		return nil, err
	}
	company, err := uc.src.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: cargar configuración: %w", err)
	}
	doc := Document{Title: titles[ds], Totals: uc.totals(ctx, ds)}
	if len(rows) > 0 {
		doc.Headers = headersOf(rows[0])
	}
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = c.Value
		}
		doc.Rows = append(doc.Rows, cells)
	}
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("%w: el listado %s está vacío", domain.ErrValidation, ds)
	}
	return uc.printer.PrintReport(ctx, doc, company)
}

// PrintStatement genera el PDF del estado de cuenta salarial.
func (uc *ReportUseCase) PrintStatement(ctx context.Context, actor dto.Actor, employeeID string) ([]byte, error) {
	if err := uc.gate.RequireCapability(actor.Role, entity.CanViewReports); err != nil {
		return nil, err
	}
	staff, err := uc.src.Employees.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: cargar empleados: %w", err)
	}
	company, err := uc.src.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: cargar configuración: %w", err)
	}
	for _, e := range staff {
		if e.ID != employeeID {
			continue
		}
		st := payroll.BuildStatement(e)
		doc := Document{
			Title:   "Salary statement: " + st.EmployeeName,
			Headers: statementHeaders,
			Totals: []Total{
				{Label: "Base salary:", Value: st.BaseSalary},
				{Label: "Deductions:", Value: st.TotalDeductions},
				{Label: "Advances:", Value: st.TotalAdvances},
				{Label: "Net salary:", Value: st.NetSalary},
			},
		}
		for _, d := range st.Entries {
			doc.Rows = append(doc.Rows, []string{d.Date, string(d.Type), money(d.Amount), d.Reason})
		}
		return uc.printer.PrintReport(ctx, doc, company)
	}
	return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, employeeID)
}

var titles = map[Dataset]string{
	DatasetInvoices:  "Sales invoices",
	DatasetSuppliers: "Suppliers",
	DatasetPayments:  "Supplier payments",
	DatasetInventory: "Inventory",
	DatasetExpenses:  "Expenses",
	DatasetEmployees: "Employees",
}

func headersOf(r Row) []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Name
	}
	return out
}

func (uc *ReportUseCase) write(w io.Writer, f Format, sheet string, headers []string, rows []Row) error {
	switch f {
	case FormatCSV:
		return uc.exporter.WriteCSV(w, headers, rows)
	case FormatXLSX:
		return uc.exporter.WriteXLSX(w, sheet, headers, rows)
	default:
		return fmt.Errorf("%w: formato %q desconocido", domain.ErrValidation, f)
	}
}

func (uc *ReportUseCase) rows(ctx context.Context, ds Dataset) ([]Row, error) {
	switch ds {
	case DatasetInvoices:
		v, err := uc.src.Invoices.Get(ctx)
		return invoiceRows(v), wrap(ds, err)
	case DatasetSuppliers:
		v, err := uc.src.Suppliers.Get(ctx)
		return supplierRows(v), wrap(ds, err)
	case DatasetPayments:
		v, err := uc.src.Payments.Get(ctx)
		return paymentRows(v), wrap(ds, err)
	case DatasetInventory:
		v, err := uc.src.Items.Get(ctx)
		return inventoryRows(v), wrap(ds, err)
	case DatasetExpenses:
		v, err := uc.src.Expenses.Get(ctx)
		return expenseRows(v), wrap(ds, err)
	case DatasetEmployees:
		v, err := uc.src.Employees.Get(ctx)
		return employeeRows(v), wrap(ds, err)
	}
	return nil, fmt.Errorf("%w: listado %q desconocido", domain.ErrValidation, ds)
}

// totals pie del reporte impreso; vacío si el listado no tiene montos que sumar.
func (uc *ReportUseCase) totals(ctx context.Context, ds Dataset) []Total {
	var t Total
	switch ds {
	case DatasetInvoices:
		v, _ := uc.src.Invoices.Get(ctx)
		t = Total{Label: "Total sales:"}
		for _, x := range v {
			t.Value = t.Value.Add(x.Amount)
		}
	case DatasetExpenses:
		v, _ := uc.src.Expenses.Get(ctx)
		t = Total{Label: "Total expenses:"}
		for _, x := range v {
			t.Value = t.Value.Add(x.Amount)
		}
	case DatasetSuppliers:
		v, _ := uc.src.Suppliers.Get(ctx)
		t = Total{Label: "Total payables:"}
		for _, x := range v {
			t.Value = t.Value.Add(x.Balance)
		}
	default:
		return nil
	}
	return []Total{t}
}

func wrap(ds Dataset, err error) error {
	if err != nil {
		return fmt.Errorf("report: cargar %s: %w", ds, err)
	}
	return nil
}
