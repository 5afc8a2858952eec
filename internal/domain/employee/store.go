package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"payrollhq/internal/domain/payroll"
)

var ErrNotFound = errors.New("not found")

// Store owns the employee and contract tables. Contracts are separate rows
// referenced by employees; editing a contract replaces the row in place so
// the change is visible to every employee bound to it.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const contractColumns = `id, contract_type, name, position, base_salary::text, start_date, end_date,
        COALESCE(bonus, 0)::text, COALESCE(hours_worked, 0)::text, COALESCE(hourly_rate, 0)::text`

func (s *Store) CreateContract(ctx context.Context, contract payroll.Contract) (int64, error) {
	row := contractRow(contract)
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contracts (contract_type, name, position, base_salary, start_date, end_date, bonus, hours_worked, hourly_rate)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, row...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create contract: %w", err)
	}
	return id, nil
}

// UpdateContract replaces the stored record with the given one; the contract
// must already carry its id.
func (s *Store) UpdateContract(ctx context.Context, contract payroll.Contract) error {
	row := contractRow(contract)
	tag, err := s.DB.Exec(ctx, `
    UPDATE contracts
    SET contract_type = $1, name = $2, position = $3, base_salary = $4, start_date = $5, end_date = $6,
        bonus = $7, hours_worked = $8, hourly_rate = $9
    WHERE id = $10
  `, append(row, contract.ContractID())...)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteContract(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM contracts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetContract(ctx context.Context, id int64) (payroll.Contract, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+contractColumns+" FROM contracts WHERE id = $1", id)
	contract, err := scanContract(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return contract, err
}

func (s *Store) ListContracts(ctx context.Context) ([]payroll.Contract, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+contractColumns+" FROM contracts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []payroll.Contract
	for rows.Next() {
		contract, err := scanContract(rows.Scan)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func contractRow(contract payroll.Contract) []any {
	details := contract.Details()
	row := []any{
		string(contract.Type()), details.Name, string(details.Position),
		details.BaseSalary.String(), details.StartDate, details.EndDate,
		nil, nil, nil,
	}
	switch c := contract.(type) {
	case *payroll.SalariedContract:
		row[6] = c.Bonus().String()
	case *payroll.HourlyContract:
		row[7] = c.HoursWorked().String()
		row[8] = c.HourlyRate().String()
	}
	return row
}

func scanContract(scan func(dest ...any) error) (payroll.Contract, error) {
	var (
		id                 int64
		contractType       string
		name, position     string
		baseSalary         string
		startDate, endDate time.Time
		bonus, hours, rate string
	)
	if err := scan(&id, &contractType, &name, &position, &baseSalary, &startDate, &endDate, &bonus, &hours, &rate); err != nil {
		return nil, err
	}

	switch payroll.ContractType(contractType) {
	case payroll.ContractSalaried:
		base, err := decimal.NewFromString(baseSalary)
		if err != nil {
			return nil, err
		}
		bonusValue, err := decimal.NewFromString(bonus)
		if err != nil {
			return nil, err
		}
		return payroll.NewSalariedContract(payroll.SalariedContractParams{
			ID:         id,
			Name:       name,
			Position:   payroll.Position(position),
			BaseSalary: base,
			StartDate:  startDate,
			EndDate:    endDate,
			Bonus:      bonusValue,
		})
	case payroll.ContractHourly:
		hoursValue, err := decimal.NewFromString(hours)
		if err != nil {
			return nil, err
		}
		rateValue, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, err
		}
		return payroll.NewHourlyContract(payroll.HourlyContractParams{
			ID:          id,
			Name:        name,
			Position:    payroll.Position(position),
			StartDate:   startDate,
			EndDate:     endDate,
			HoursWorked: hoursValue,
			HourlyRate:  rateValue,
		})
	}
	return nil, fmt.Errorf("contract %d has unknown type %q", id, contractType)
}

const employeeColumns = `e.id, e.first_name, e.last_name, e.email, e.password_hash, e.date_of_birth, e.gender, e.role, e.contract_id`

func (s *Store) CreateEmployee(ctx context.Context, e Employee) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, password_hash, date_of_birth, gender, role, contract_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.DateOfBirth, string(e.Gender), string(e.Role), e.Contract.ContractID()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create employee: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, password_hash = $4, date_of_birth = $5, gender = $6, role = $7, contract_id = $8
    WHERE id = $9
  `, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.DateOfBirth, string(e.Gender), string(e.Role), e.Contract.ContractID(), e.ID)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees e WHERE e.id = $1", id)
	return s.scanEmployee(ctx, row.Scan)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees e WHERE e.email = $1", email)
	return s.scanEmployee(ctx, row.Scan)
}

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees e ORDER BY e.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type pending struct {
		employee   Employee
		contractID int64
	}
	var scanned []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.employee.ID, &p.employee.FirstName, &p.employee.LastName, &p.employee.Email,
			&p.employee.PasswordHash, &p.employee.DateOfBirth, &p.employee.Gender, &p.employee.Role, &p.contractID); err != nil {
			return nil, err
		}
		scanned = append(scanned, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Contracts are shared; load each once and hand out the same instance.
	contracts := make(map[int64]payroll.Contract)
	employees := make([]Employee, 0, len(scanned))
	for _, p := range scanned {
		contract, ok := contracts[p.contractID]
		if !ok {
			var err error
			if contract, err = s.GetContract(ctx, p.contractID); err != nil {
				return nil, fmt.Errorf("load contract %d for employee %d: %w", p.contractID, p.employee.ID, err)
			}
			contracts[p.contractID] = contract
		}
		p.employee.Contract = contract
		employees = append(employees, p.employee)
	}
	return employees, nil
}

// PayrollPopulation implements the payroll pipeline's population source.
func (s *Store) PayrollPopulation(ctx context.Context) ([]payroll.Member, error) {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return Population(employees), nil
}

func (s *Store) scanEmployee(ctx context.Context, scan func(dest ...any) error) (Employee, error) {
	var (
		e          Employee
		contractID int64
	)
	err := scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash, &e.DateOfBirth, &e.Gender, &e.Role, &contractID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	if e.Contract, err = s.GetContract(ctx, contractID); err != nil {
		return Employee{}, fmt.Errorf("load contract %d: %w", contractID, err)
	}
	return e, nil
}
