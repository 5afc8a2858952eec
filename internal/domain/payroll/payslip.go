package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period is the calendar month a payslip covers.
type Period struct {
	Year  int
	Month time.Month
}

// PreviousPeriod returns the month before the given date; payroll always
// covers the month prior to the run date.
func PreviousPeriod(asOf time.Time) Period {
	prev := asOf.AddDate(0, -1, -asOf.Day()+1)
	return Period{Year: prev.Year(), Month: prev.Month()}
}

// String renders the period as "2026-07", the form stored in the database.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label renders the period as "JUL-2026" for subjects and slips.
func (p Period) Label() string {
	return strings.ToUpper(p.Month.String()[:3]) + "-" + fmt.Sprintf("%d", p.Year)
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse payroll period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Payslip is an immutable snapshot of one computed pay event for one
// employee for one period. Only the generator creates payslips; they are
// never mutated after creation.
type Payslip struct {
	ID            int64
	EmployeeID    int64
	GrossSalary   decimal.Decimal
	NetSalary     decimal.Decimal
	Bonus         decimal.Decimal
	HoursWorked   decimal.Decimal
	PayrollPeriod Period
	PaymentDate   time.Time
}

// Body renders the payslip as the plain-text message mailed to the employee.
func (p Payslip) Body() string {
	return fmt.Sprintf(
		"Payslip Details:\n\nGross Salary: %s\nNet Salary: %s\nBonus: %s\nHours Worked: %s\nPayroll Period: %s\nPayment Date: %s\n",
		p.GrossSalary, p.NetSalary, p.Bonus, p.HoursWorked,
		p.PayrollPeriod, p.PaymentDate.Format("2006-01-02"),
	)
}
