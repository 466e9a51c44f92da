package aggregator

import (
	"arari/internal/service/calculator"
	"arari/internal/model"
	"arari/internal/period"
)

// MonthlySummary 指定期間の月次サマリー。label が空なら最新期間
// 直前（より古い）期間のデータがあれば前月比を付ける
func (a *Aggregator) MonthlySummary(employees []model.Employee, records []model.PayrollRecord, label string) model.MonthlySummary {
	snap := a.evaluate(employees, records)
	if label == "" {
		label = snap.latest
	}
	label = period.Canonical(label)

	current := a.monthly(snap, label)
	if prev := previousPeriod(snap, label); prev != "" {
		older := a.monthly(snap, prev)
		current.Delta = ComparePeriods(current, older)
	}
	return current
}

// MonthlySummaries 全期間の月次サマリー（新しい順）。最古の期間は Delta=nil
func (a *Aggregator) MonthlySummaries(employees []model.Employee, records []model.PayrollRecord) []model.MonthlySummary {
	snap := a.evaluate(employees, records)

	labels := make([]string, 0, len(snap.byPeriod))
	for label := range snap.byPeriod {
		labels = append(labels, label)
	}
	labels = period.SortDescending(labels)

	out := make([]model.MonthlySummary, 0, len(labels))
	for _, label := range labels {
		out = append(out, a.monthly(snap, label))
	}
	for i := 0; i+1 < len(out); i++ {
		out[i].Delta = ComparePeriods(out[i], out[i+1])
	}
	return out
}

// ComparePeriods 前月比。金額は増減率（%）、粗利率はポイント差
func ComparePeriods(current, previous model.MonthlySummary) *model.PeriodDelta {
	return &model.PeriodDelta{
		PreviousPeriod: previous.Period,
		RevenueRate:    calculator.ChangeRate(current.TotalRevenue, previous.TotalRevenue),
		CostRate:       calculator.ChangeRate(current.TotalCost, previous.TotalCost),
		ProfitRate:     calculator.ChangeRate(current.TotalProfit, previous.TotalProfit),
		MarginPoints:   current.AvgMargin - previous.AvgMargin,
	}
}

func (a *Aggregator) monthly(snap *snapshot, label string) model.MonthlySummary {
	idxs := snap.byPeriod[label]

	var totals profitTotals
	profits := make([]model.RecordProfit, 0, len(idxs))
	for _, idx := range idxs {
		totals.add(&snap.profits[idx])
		profits = append(profits, snap.profits[idx])
	}

	perEmployee := employeeProfits(snap, idxs)
	top, bottom := rankEmployees(perEmployee, a.opts.TopN)

	return model.MonthlySummary{
		Period:          label,
		TotalRevenue:    totals.revenue,
		TotalCost:       totals.cost,
		TotalProfit:     totals.profit,
		AvgMargin:       totals.avgMargin(),
		EmployeeCount:   len(perEmployee),
		RecordCount:     totals.count,
		TopEmployees:    top,
		BottomEmployees: bottom,
		Distribution:    ProfitDistribution(profits),
	}
}

// previousPeriod データ中で label の直前にある期間
func previousPeriod(snap *snapshot, label string) string {
	if !period.Valid(label) {
		return ""
	}
	prev := ""
	for other := range snap.byPeriod {
		if period.Compare(other, label) >= 0 {
			continue
		}
		if prev == "" || period.Compare(other, prev) > 0 {
			prev = other
		}
	}
	return prev
}

// PeriodEmployees 指定期間の社員別粗利（粗利の降順）。label が空なら最新期間
func (a *Aggregator) PeriodEmployees(employees []model.Employee, records []model.PayrollRecord, label string) []model.EmployeeProfit {
	snap := a.evaluate(employees, records)
	if label == "" {
		label = snap.latest
	}
	list := employeeProfits(snap, snap.byPeriod[period.Canonical(label)])
	top, _ := rankEmployees(list, len(list))
	return top
}
