package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Position string

const (
	PositionManager    Position = "manager"
	PositionDeveloper  Position = "developer"
	PositionAnalyst    Position = "analyst"
	PositionTechnician Position = "technician"
	PositionIntern     Position = "intern"
)

func ParsePosition(s string) (Position, bool) {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case PositionManager:
		return PositionManager, true
	case PositionDeveloper:
		return PositionDeveloper, true
	case PositionAnalyst:
		return PositionAnalyst, true
	case PositionTechnician:
		return PositionTechnician, true
	case PositionIntern:
		return PositionIntern, true
	}
	return "", false
}

type ContractType string

const (
	ContractSalaried ContractType = "salaried"
	ContractHourly   ContractType = "hourly"
)

// Payable can derive pay amounts from its own fields. Both calculations are
// pure: calling them twice on an unchanged value yields identical results.
type Payable interface {
	GrossSalary() decimal.Decimal
	NetSalary() decimal.Decimal
}

// Contract is the closed set of employment contract variants. The unexported
// method keeps the set closed to this package, so callers never branch on
// concrete types: variant-specific payslip fields come from the contract
// itself.
type Contract interface {
	Payable
	ContractID() int64
	Type() ContractType
	Details() ContractDetails

	// payslipComponents returns the variant-specific payslip fields: the
	// bonus paid out and the hours worked for the period.
	payslipComponents() (bonus, hoursWorked decimal.Decimal)
}

// ContractDetails are the fields shared by every contract variant.
type ContractDetails struct {
	ID         int64
	Name       string
	Position   Position
	BaseSalary decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
}

func (d ContractDetails) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingField
	}
	if _, ok := ParsePosition(string(d.Position)); !ok {
		return invalid("position", "unknown position")
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return ErrMissingField
	}
	if d.EndDate.Before(d.StartDate) {
		return invalid("endDate", "contract end date must not be before start date")
	}
	return nil
}

// Bonus bounds for salaried contracts and workload bounds for hourly ones.
var (
	maxBonus      = decimal.NewFromInt(100000)
	maxHours      = decimal.NewFromInt(140)
	maxHourlyRate = decimal.NewFromInt(99)
)

// SalariedContract pays a fixed base salary plus a bonus.
type SalariedContract struct {
	details ContractDetails
	bonus   decimal.Decimal
}

type SalariedContractParams struct {
	ID         int64
	Name       string
	Position   Position
	BaseSalary decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	Bonus      decimal.Decimal
}

// NewSalariedContract validates the parameters and builds the contract.
// Instances never exist with an invalid field; edits replace the whole
// record by id.
func NewSalariedContract(p SalariedContractParams) (*SalariedContract, error) {
	details := ContractDetails{
		ID:         p.ID,
		Name:       p.Name,
		Position:   p.Position,
		BaseSalary: p.BaseSalary,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	if p.BaseSalary.IsNegative() {
		return nil, invalid("baseSalary", "base salary must not be negative")
	}
	if p.Bonus.IsNegative() || p.Bonus.GreaterThanOrEqual(maxBonus) {
		return nil, invalid("bonus", "bonus must be between 0 and 99999")
	}
	return &SalariedContract{details: details, bonus: p.Bonus}, nil
}

func (c *SalariedContract) ContractID() int64        { return c.details.ID }
func (c *SalariedContract) Type() ContractType       { return ContractSalaried }
func (c *SalariedContract) Details() ContractDetails { return c.details }
func (c *SalariedContract) Bonus() decimal.Decimal   { return c.bonus }

func (c *SalariedContract) GrossSalary() decimal.Decimal {
	return c.details.BaseSalary.Add(c.bonus)
}

func (c *SalariedContract) NetSalary() decimal.Decimal {
	gross := c.GrossSalary()
	return gross.Sub(Tax(gross, taxRules.Rate(gross)))
}

func (c *SalariedContract) payslipComponents() (decimal.Decimal, decimal.Decimal) {
	// Salaried staff are paid for a standard full-time month regardless of
	// hours tracked.
	return c.bonus, SalariedMonthlyHours
}

// HourlyContract pays hours worked times the hourly rate. Its base salary is
// derived from those two fields and is never settable on its own.
type HourlyContract struct {
	details     ContractDetails
	hoursWorked decimal.Decimal
	hourlyRate  decimal.Decimal
}

type HourlyContractParams struct {
	ID          int64
	Name        string
	Position    Position
	StartDate   time.Time
	EndDate     time.Time
	HoursWorked decimal.Decimal
	HourlyRate  decimal.Decimal
}

func NewHourlyContract(p HourlyContractParams) (*HourlyContract, error) {
	if p.HoursWorked.IsNegative() || p.HoursWorked.GreaterThan(maxHours) {
		return nil, invalid("hoursWorked", "hours worked must be between 0 and 140")
	}
	if p.HourlyRate.IsNegative() || p.HourlyRate.GreaterThan(maxHourlyRate) {
		return nil, invalid("hourlyRate", "hourly rate must be between 0 and 99")
	}
	details := ContractDetails{
		ID:         p.ID,
		Name:       p.Name,
		Position:   p.Position,
		BaseSalary: p.HoursWorked.Mul(p.HourlyRate),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	return &HourlyContract{details: details, hoursWorked: p.HoursWorked, hourlyRate: p.HourlyRate}, nil
}

func (c *HourlyContract) ContractID() int64            { return c.details.ID }
func (c *HourlyContract) Type() ContractType           { return ContractHourly }
func (c *HourlyContract) Details() ContractDetails     { return c.details }
func (c *HourlyContract) HoursWorked() decimal.Decimal { return c.hoursWorked }
func (c *HourlyContract) HourlyRate() decimal.Decimal  { return c.hourlyRate }

func (c *HourlyContract) GrossSalary() decimal.Decimal {
	return c.hoursWorked.Mul(c.hourlyRate)
}

func (c *HourlyContract) NetSalary() decimal.Decimal {
	gross := c.GrossSalary()
	return gross.Sub(Tax(gross, taxRules.Rate(gross)))
}

func (c *HourlyContract) payslipComponents() (decimal.Decimal, decimal.Decimal) {
	return decimal.Zero, c.hoursWorked
}
