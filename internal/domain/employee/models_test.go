package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"payrollhq/internal/domain/payroll"
)

func testContract(t *testing.T) payroll.Contract {
	t.Helper()
	c, err := payroll.NewSalariedContract(payroll.SalariedContractParams{
		Name:       "Engineering",
		Position:   payroll.PositionDeveloper,
		BaseSalary: decimal.NewFromInt(4000),
		StartDate:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Bonus:      decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("NewSalariedContract: %v", err)
	}
	return c
}

func TestPopulationDeduplicatesByEmail(t *testing.T) {
	contract := testContract(t)
	employees := []Employee{
		{ID: 1, Email: "ana@gmail.com", Contract: contract},
		{ID: 2, Email: "ivan@yahoo.com", Contract: contract},
		{ID: 3, Email: "ana@gmail.com", Contract: contract},
	}

	members := Population(employees)
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].EmployeeID != 1 || members[1].EmployeeID != 2 {
		t.Fatalf("dedup kept wrong entries: %+v", members)
	}
}

func TestEmployeeAge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		dob  time.Time
		want int
	}{
		{time.Date(1990, time.August, 31, 0, 0, 0, 0, time.UTC), 36},
		{time.Date(1990, time.September, 1, 0, 0, 0, 0, time.UTC), 35},
		{time.Date(2010, time.August, 31, 0, 0, 0, 0, time.UTC), 16},
	}
	for _, tc := range tests {
		e := Employee{DateOfBirth: tc.dob}
		if got := e.Age(now); got != tc.want {
			t.Fatalf("Age for dob %s = %d, want %d", tc.dob.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestEmployeeSalaryDelegation(t *testing.T) {
	e := Employee{Contract: testContract(t)}
	if !e.GrossSalary().Equal(decimal.NewFromInt(4200)) {
		t.Fatalf("GrossSalary() = %s, want 4200", e.GrossSalary())
	}
	if !e.NetSalary().Equal(decimal.NewFromInt(3360)) {
		t.Fatalf("NetSalary() = %s, want 3360", e.NetSalary())
	}
}
