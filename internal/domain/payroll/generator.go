package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalariedMonthlyHours is the hour count recorded on every salaried payslip:
// a standard full-time month.
var SalariedMonthlyHours = decimal.NewFromInt(140)

// Member is one employee in the population snapshot handed to a payroll run.
// The contract is held by reference; the snapshot is read-only for the
// lifetime of the run.
type Member struct {
	EmployeeID int64
	Email      string
	Contract   Contract
}

// GeneratePayslips builds exactly one payslip per member. Payslip ids are
// assigned sequentially in iteration order; the period is the month before
// asOf and the payment date is asOf itself. The function has no side
// effects.
func GeneratePayslips(members []Member, asOf time.Time) []Payslip {
	period := PreviousPeriod(asOf)
	payslips := make([]Payslip, 0, len(members))

	var payslipID int64
	for _, m := range members {
		payslipID++
		bonus, hoursWorked := m.Contract.payslipComponents()
		payslips = append(payslips, Payslip{
			ID:            payslipID,
			EmployeeID:    m.EmployeeID,
			GrossSalary:   m.Contract.GrossSalary(),
			NetSalary:     m.Contract.NetSalary(),
			Bonus:         bonus,
			HoursWorked:   hoursWorked,
			PayrollPeriod: period,
			PaymentDate:   asOf,
		})
	}
	return payslips
}
