package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Dataset listado exportable.
type Dataset string

const (
	DatasetInvoices  Dataset = "invoices"
	DatasetSuppliers Dataset = "suppliers"
	DatasetPayments  Dataset = "payments"
	DatasetInventory Dataset = "inventory"
	DatasetExpenses  Dataset = "expenses"
	DatasetEmployees Dataset = "employees"
)

// Datasets todos los listados en orden de menú.
func Datasets() []Dataset {
	return []Dataset{DatasetInvoices, DatasetSuppliers, DatasetPayments, DatasetInventory, DatasetExpenses, DatasetEmployees}
}

func money(d decimal.Decimal) string { return d.String() }

func invoiceRows(list []entity.Invoice) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{
			{"id", v.ID}, {"number", v.Number}, {"customerName", v.CustomerName}, {"date", v.Date},
			{"amount", money(v.Amount)}, {"status", string(v.Status)}, {"items", strconv.Itoa(v.ItemCount)},
		})
	}
	return out
}

func supplierRows(list []entity.Supplier) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{{"id", v.ID}, {"name", v.Name}, {"contact", v.Contact}, {"balance", money(v.Balance)}})
	}
	return out
}

func paymentRows(list []entity.PaymentTransaction) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{
			{"id", v.ID}, {"supplierId", v.SupplierID}, {"supplierName", v.SupplierName}, {"date", v.Date},
			{"amount", money(v.Amount)}, {"type", string(v.Type)}, {"method", string(v.Method)}, {"reference", v.Reference},
		})
	}
	return out
}

func inventoryRows(list []entity.InventoryItem) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{
			{"id", v.ID}, {"sku", v.SKU}, {"name", v.Name}, {"quantity", money(v.Quantity)}, {"unit", v.Unit},
			{"unitPrice", money(v.UnitPrice)}, {"reorderLevel", money(v.ReorderLevel)}, {"category", v.Category},
		})
	}
	return out
}

func expenseRows(list []entity.Expense) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{
			{"id", v.ID}, {"category", v.Category}, {"description", v.Description},
			{"amount", money(v.Amount)}, {"date", v.Date}, {"approvedBy", v.ApprovedBy},
		})
	}
	return out
}

func employeeRows(list []entity.Employee) []Row {
	out := make([]Row, 0, len(list))
	for _, v := range list {
		out = append(out, Row{
			{"id", v.ID}, {"name", v.Name}, {"position", v.Position}, {"baseSalary", money(v.BaseSalary)},
			{"netSalary", money(v.NetSalary)}, {"status", string(v.Status)}, {"joinDate", v.JoinDate},
		})
	}
	return out
}

var statementHeaders = []string{"Date", "Type", "Amount", "Reason"}

// statementRows columnas Date,Type,Amount,Reason del estado de cuenta.
func statementRows(deductions []entity.Deduction) []Row {
	out := make([]Row, 0, len(deductions))
	for _, d := range deductions {
		out = append(out, Row{{"Date", d.Date}, {"Type", string(d.Type)}, {"Amount", money(d.Amount)}, {"Reason", d.Reason}})
	}
	return out
}
