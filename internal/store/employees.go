package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arari/internal/model"
)

const employeeColumns = `employee_id, name, dispatch_company, hourly_rate, billing_rate, employment_type, status, hire_date`

// ListEmployees 登録順の社員一覧
func (s *Store) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query employees failed: %w", err)
	}
	defer rows.Close()

	out := make([]model.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee failed: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees failed: %w", err)
	}
	return out, nil
}

// GetEmployee 社員番号で1件取得
func (s *Store) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = ?`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get employee failed: %w", err)
	}
	return e, nil
}

// UpsertEmployees 社員番号をキーに登録・更新（1トランザクション）
func (s *Store) UpsertEmployees(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			name = excluded.name,
			dispatch_company = excluded.dispatch_company,
			hourly_rate = excluded.hourly_rate,
			billing_rate = excluded.billing_rate,
			employment_type = excluded.employment_type,
			status = excluded.status,
			hire_date = excluded.hire_date,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range employees {
		if _, err := stmt.ExecContext(ctx,
			e.EmployeeID, e.Name, e.DispatchCompany, e.HourlyRate, e.BillingRate,
			string(e.EmploymentType), string(e.Status), e.HireDate,
		); err != nil {
			return fmt.Errorf("failed to upsert employee %s: %w", e.EmployeeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*model.Employee, error) {
	var (
		e              model.Employee
		employmentType string
		status         string
	)
	if err := row.Scan(
		&e.EmployeeID, &e.Name, &e.DispatchCompany, &e.HourlyRate, &e.BillingRate,
		&employmentType, &status, &e.HireDate,
	); err != nil {
		return nil, err
	}
	e.EmploymentType = model.EmploymentType(employmentType)
	e.Status = model.EmployeeStatus(status)
	return &e, nil
}
