package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestGeneratePayslips(t *testing.T) {
	asOf := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	members := []Member{
		{EmployeeID: 11, Email: "ana@gmail.com", Contract: mustSalaried(t, 4000, 200)},
		{EmployeeID: 12, Email: "ivan@yahoo.com", Contract: mustHourly(t, 100, 60)},
		{EmployeeID: 13, Email: "mia@tvz.hr", Contract: mustSalaried(t, 500, 0)},
	}

	payslips := GeneratePayslips(members, asOf)
	if len(payslips) != 3 {
		t.Fatalf("generated %d payslips, want 3", len(payslips))
	}

	for i, p := range payslips {
		if want := int64(i + 1); p.ID != want {
			t.Fatalf("payslip %d: ID = %d, want %d", i, p.ID, want)
		}
		if p.EmployeeID != members[i].EmployeeID {
			t.Fatalf("payslip %d: EmployeeID = %d, want %d", i, p.EmployeeID, members[i].EmployeeID)
		}
		if want := (Period{Year: 2026, Month: time.July}); p.PayrollPeriod != want {
			t.Fatalf("payslip %d: period = %s, want %s", i, p.PayrollPeriod, want)
		}
		if !p.PaymentDate.Equal(asOf) {
			t.Fatalf("payslip %d: payment date = %s, want %s", i, p.PaymentDate, asOf)
		}
	}

	salaried := payslips[0]
	if !salaried.Bonus.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("salaried bonus = %s, want 200", salaried.Bonus)
	}
	if !salaried.HoursWorked.Equal(SalariedMonthlyHours) {
		t.Fatalf("salaried hours = %s, want %s", salaried.HoursWorked, SalariedMonthlyHours)
	}
	if !salaried.NetSalary.Equal(decimal.NewFromInt(3360)) {
		t.Fatalf("salaried net = %s, want 3360", salaried.NetSalary)
	}

	hourly := payslips[1]
	if !hourly.Bonus.IsZero() {
		t.Fatalf("hourly bonus = %s, want 0", hourly.Bonus)
	}
	if !hourly.HoursWorked.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("hourly hours = %s, want 100", hourly.HoursWorked)
	}
	if !hourly.GrossSalary.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("hourly gross = %s, want 6000", hourly.GrossSalary)
	}
}

func TestGeneratePayslipsEmptyPopulation(t *testing.T) {
	payslips := GeneratePayslips(nil, time.Now())
	if len(payslips) != 0 {
		t.Fatalf("generated %d payslips from an empty population", len(payslips))
	}
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		asOf time.Time
		want Period
	}{
		{time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), Period{2026, time.July}},
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), Period{2025, time.December}},
		{time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), Period{2026, time.February}},
	}
	for _, tc := range tests {
		if got := PreviousPeriod(tc.asOf); got != tc.want {
			t.Fatalf("PreviousPeriod(%s) = %s, want %s", tc.asOf.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestPeriodRendering(t *testing.T) {
	p := Period{Year: 2026, Month: time.July}
	if got := p.String(); got != "2026-07" {
		t.Fatalf("String() = %q, want %q", got, "2026-07")
	}
	if got := p.Label(); got != "JUL-2026" {
		t.Fatalf("Label() = %q, want %q", got, "JUL-2026")
	}

	parsed, err := ParsePeriod("2026-07")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if parsed != p {
		t.Fatalf("ParsePeriod round trip = %s, want %s", parsed, p)
	}
	if _, err := ParsePeriod("july 2026"); err == nil {
		t.Fatal("ParsePeriod accepted a malformed period")
	}
}
