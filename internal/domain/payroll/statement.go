package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Statement estado de cuenta salarial de un empleado.
type Statement struct {
	EmployeeID      string
	EmployeeName    string
	BaseSalary      decimal.Decimal
	NetSalary       decimal.Decimal
	TotalDeductions decimal.Decimal // descuentos y penalizaciones
	TotalAdvances   decimal.Decimal
	Entries         []entity.Deduction
}

// BuildStatement resume el historial de movimientos. Se cumple
// NetSalary == BaseSalary − TotalDeductions − TotalAdvances mientras el
// historial no haya sido alterado fuera del motor.
func BuildStatement(emp entity.Employee) Statement {
	st := Statement{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		BaseSalary:      emp.BaseSalary,
		NetSalary:       emp.NetSalary,
		TotalDeductions: decimal.Zero,
		TotalAdvances:   decimal.Zero,
		Entries:         make([]entity.Deduction, len(emp.Deductions)),
	}
	copy(st.Entries, emp.Deductions)
	for _, d := range emp.Deductions {
		if d.Type == entity.DeductionAdvance {
			st.TotalAdvances = st.TotalAdvances.Add(d.Amount)
		} else {
			st.TotalDeductions = st.TotalDeductions.Add(d.Amount)
		}
	}
	return st
}
