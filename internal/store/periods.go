package store

import (
	"context"
	"fmt"

	"arari/internal/model"
	"arari/internal/period"
)

// ListAvailablePeriods データがある期間（新しい順、解析できないラベルは末尾）
// 文字列順では 2025年10月 < 2025年9月 になるため並べ替えは period で行う
func (s *Store) ListAvailablePeriods(ctx context.Context) ([]model.PeriodStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, COUNT(1) FROM payroll_records GROUP BY period
	`)
	if err != nil {
		return nil, fmt.Errorf("query available periods failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	labels := make([]string, 0)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scan available periods failed: %w", err)
		}
		labels = append(labels, label)
		counts[label] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate available periods failed: %w", err)
	}

	return PeriodStats(labels, counts), nil
}

// PeriodStats ラベルと件数から新しい順の一覧を作る
func PeriodStats(labels []string, counts map[string]int) []model.PeriodStat {
	sorted := period.SortDescending(period.Distinct(labels))
	out := make([]model.PeriodStat, 0, len(sorted))
	for _, label := range sorted {
		out = append(out, model.PeriodStat{
			Period:  label,
			Records: counts[label],
			Parsed:  period.Valid(label),
		})
	}
	return out
}
