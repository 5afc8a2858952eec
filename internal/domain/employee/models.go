package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"payrollhq/internal/domain/payroll"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Employee binds a person to exactly one contract. The contract is held by
// reference: edits to it are visible through every employee pointing at it.
// Identity for deduplication purposes is the email address, case-sensitive
// and unique across the system.
type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Gender       Gender
	Role         Role
	Contract     payroll.Contract
}

func (e Employee) Age(now time.Time) int {
	years := now.Year() - e.DateOfBirth.Year()
	if now.YearDay() < e.DateOfBirth.YearDay() {
		years--
	}
	return years
}

func (e Employee) GrossSalary() decimal.Decimal {
	return e.Contract.GrossSalary()
}

func (e Employee) NetSalary() decimal.Decimal {
	return e.Contract.NetSalary()
}

// Population converts employees to the snapshot view a payroll run consumes,
// dropping duplicates by email.
func Population(employees []Employee) []payroll.Member {
	seen := make(map[string]struct{}, len(employees))
	members := make([]payroll.Member, 0, len(employees))
	for _, e := range employees {
		if _, dup := seen[e.Email]; dup {
			continue
		}
		seen[e.Email] = struct{}{}
		members = append(members, payroll.Member{
			EmployeeID: e.ID,
			Email:      e.Email,
			Contract:   e.Contract,
		})
	}
	return members
}
