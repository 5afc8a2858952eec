package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// HistoryStore persists generated payslips and reads the payroll history.
// Every save inserts a new row; duplicate runs for the same period are kept
// as-is.
type HistoryStore struct {
	DB *pgxpool.Pool
}

func NewHistoryStore(db *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{DB: db}
}

var _ PayslipSaver = (*HistoryStore)(nil)

func (s *HistoryStore) SavePayslip(ctx context.Context, payslip Payslip) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_history (employee_id, gross_salary, net_salary, bonus, hours_worked, payroll_period, payment_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, payslip.EmployeeID,
		payslip.GrossSalary.String(),
		payslip.NetSalary.String(),
		payslip.Bonus.String(),
		payslip.HoursWorked.String(),
		payslip.PayrollPeriod.String(),
		payslip.PaymentDate)
	if err != nil {
		return fmt.Errorf("save payslip: %w", err)
	}
	return nil
}

func (s *HistoryStore) ListHistory(ctx context.Context) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, gross_salary::text, net_salary::text, bonus::text, hours_worked::text, payroll_period, payment_date
    FROM payroll_history
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []Payslip
	for rows.Next() {
		payslip, err := scanPayslip(rows.Scan)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, payslip)
	}
	return payslips, rows.Err()
}

func (s *HistoryStore) GetPayslip(ctx context.Context, id int64) (Payslip, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, gross_salary::text, net_salary::text, bonus::text, hours_worked::text, payroll_period, payment_date
    FROM payroll_history
    WHERE id = $1
  `, id)
	return scanPayslip(row.Scan)
}

func (s *HistoryStore) CountHistory(ctx context.Context) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_history").Scan(&total)
	return total, err
}

func scanPayslip(scan func(dest ...any) error) (Payslip, error) {
	var (
		payslip     Payslip
		gross       string
		net         string
		bonus       string
		hoursWorked string
		period      string
		paymentDate time.Time
	)
	if err := scan(&payslip.ID, &payslip.EmployeeID, &gross, &net, &bonus, &hoursWorked, &period, &paymentDate); err != nil {
		return Payslip{}, err
	}

	var err error
	if payslip.GrossSalary, err = decimal.NewFromString(gross); err != nil {
		return Payslip{}, err
	}
	if payslip.NetSalary, err = decimal.NewFromString(net); err != nil {
		return Payslip{}, err
	}
	if payslip.Bonus, err = decimal.NewFromString(bonus); err != nil {
		return Payslip{}, err
	}
	if payslip.HoursWorked, err = decimal.NewFromString(hoursWorked); err != nil {
		return Payslip{}, err
	}
	if payslip.PayrollPeriod, err = ParsePeriod(period); err != nil {
		return Payslip{}, err
	}
	payslip.PaymentDate = paymentDate
	return payslip, nil
}
