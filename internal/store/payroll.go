package store

import (
	"context"
	"database/sql"
	"fmt"

	"arari/internal/model"
)

const payrollColumns = `
	employee_id, period,
	work_days, work_hours, overtime_hours, overtime_over_60h, night_hours, holiday_hours, paid_leave_hours, paid_leave_days,
	base_salary, overtime_pay, night_pay, holiday_pay, transport_allowance, other_allowances, gross_salary,
	social_insurance, employment_insurance, income_tax, resident_tax, other_deductions,
	net_salary, billing_amount,
	company_employment_insurance, company_workers_comp`

// ListPayrollRecords 全明細（登録順）
func (s *Store) ListPayrollRecords(ctx context.Context) ([]model.PayrollRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+payrollColumns+` FROM payroll_records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query payroll records failed: %w", err)
	}
	defer rows.Close()

	out := make([]model.PayrollRecord, 0)
	for rows.Next() {
		r, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll record failed: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payroll records failed: %w", err)
	}
	return out, nil
}

// ReplacePayrollRecords (社員番号, 期間) が同じ明細は行ごと差し替える
func (s *Store) ReplacePayrollRecords(ctx context.Context, records []model.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO payroll_records (`+payrollColumns+`)
		VALUES (
			?, ?,
			?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?,
			?, ?
		)
		ON CONFLICT(employee_id, period) DO UPDATE SET
			work_days = excluded.work_days,
			work_hours = excluded.work_hours,
			overtime_hours = excluded.overtime_hours,
			overtime_over_60h = excluded.overtime_over_60h,
			night_hours = excluded.night_hours,
			holiday_hours = excluded.holiday_hours,
			paid_leave_hours = excluded.paid_leave_hours,
			paid_leave_days = excluded.paid_leave_days,
			base_salary = excluded.base_salary,
			overtime_pay = excluded.overtime_pay,
			night_pay = excluded.night_pay,
			holiday_pay = excluded.holiday_pay,
			transport_allowance = excluded.transport_allowance,
			other_allowances = excluded.other_allowances,
			gross_salary = excluded.gross_salary,
			social_insurance = excluded.social_insurance,
			employment_insurance = excluded.employment_insurance,
			income_tax = excluded.income_tax,
			resident_tax = excluded.resident_tax,
			other_deductions = excluded.other_deductions,
			net_salary = excluded.net_salary,
			billing_amount = excluded.billing_amount,
			company_employment_insurance = excluded.company_employment_insurance,
			company_workers_comp = excluded.company_workers_comp,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.EmployeeID, r.Period,
			r.WorkDays, r.WorkHours, r.OvertimeHours, r.OvertimeOver60h, r.NightHours, r.HolidayHours, r.PaidLeaveHours, r.PaidLeaveDays,
			r.BaseSalary, r.OvertimePay, r.NightPay, r.HolidayPay, r.TransportAllowance, r.OtherAllowances, r.GrossSalary,
			r.SocialInsurance, r.EmploymentInsurance, r.IncomeTax, r.ResidentTax, r.OtherDeductions,
			r.NetSalary, r.BillingAmount,
			nullFloat(r.CompanyEmploymentInsurance), nullFloat(r.CompanyWorkersComp),
		); err != nil {
			return fmt.Errorf("failed to upsert payroll record %s: %w", r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanPayroll(row rowScanner) (*model.PayrollRecord, error) {
	var (
		r         model.PayrollRecord
		companyEI sql.NullFloat64
		companyWC sql.NullFloat64
	)
	if err := row.Scan(
		&r.EmployeeID, &r.Period,
		&r.WorkDays, &r.WorkHours, &r.OvertimeHours, &r.OvertimeOver60h, &r.NightHours, &r.HolidayHours, &r.PaidLeaveHours, &r.PaidLeaveDays,
		&r.BaseSalary, &r.OvertimePay, &r.NightPay, &r.HolidayPay, &r.TransportAllowance, &r.OtherAllowances, &r.GrossSalary,
		&r.SocialInsurance, &r.EmploymentInsurance, &r.IncomeTax, &r.ResidentTax, &r.OtherDeductions,
		&r.NetSalary, &r.BillingAmount,
		&companyEI, &companyWC,
	); err != nil {
		return nil, err
	}
	r.CompanyEmploymentInsurance = floatPtr(companyEI)
	r.CompanyWorkersComp = floatPtr(companyWC)
	return &r, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
