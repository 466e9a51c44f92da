package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"arari/internal/model"
)

// dataset 集計の入力一式
type dataset struct {
	employees []model.Employee
	records   []model.PayrollRecord
	ignored   map[string]bool
}

// load 社員・明細・対象外派遣先を並行に読む
func (h *Handler) load(ctx context.Context) (*dataset, error) {
	var ds dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		employees, err := h.repo.ListEmployees(ctx)
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		ds.employees = employees
		return nil
	})
	g.Go(func() error {
		records, err := h.repo.ListPayrollRecords(ctx)
		if err != nil {
			return fmt.Errorf("load payroll records: %w", err)
		}
		ds.records = records
		return nil
	})
	g.Go(func() error {
		ignored, err := h.repo.IgnoredCompanies(ctx)
		if err != nil {
			return fmt.Errorf("load ignored companies: %w", err)
		}
		ds.ignored = ignored
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}
