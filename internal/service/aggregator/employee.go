package aggregator

import (
	"sort"

	"go.uber.org/zap"

	"arari/internal/model"
	"arari/internal/period"
)

// EmployeeSummaries 社員別サマリー（全期間、粗利の降順）
// 社員マスタに無い社員番号の明細も氏名空欄で含める
func (a *Aggregator) EmployeeSummaries(employees []model.Employee, records []model.PayrollRecord) []model.EmployeeSummary {
	snap := a.evaluate(employees, records)

	ids := make([]string, 0, len(snap.employees))
	for _, e := range snap.employees {
		ids = append(ids, e.EmployeeID)
	}
	dangling := make(map[string]bool)
	for _, r := range records {
		if _, ok := snap.byID[r.EmployeeID]; ok || dangling[r.EmployeeID] {
			continue
		}
		dangling[r.EmployeeID] = true
		ids = append(ids, r.EmployeeID)
	}
	if len(dangling) > 0 {
		a.logger.Warn("payroll records reference unknown employees", zap.Int("employees", len(dangling)))
	}

	out := make([]model.EmployeeSummary, 0, len(ids))
	for _, id := range ids {
		var totals profitTotals
		labels := make([]string, 0)
		for _, idx := range snap.byEmployee[id] {
			p := &snap.profits[idx]
			totals.add(p)
			labels = append(labels, p.Period)
		}

		s := model.EmployeeSummary{
			EmployeeID:   id,
			RecordCount:  totals.count,
			TotalRevenue: totals.revenue,
			TotalCost:    totals.cost,
			TotalProfit:  totals.profit,
			AvgMargin:    totals.avgMargin(),
			LatestPeriod: period.Latest(labels),
		}
		if e, ok := snap.byID[id]; ok {
			s.Name = e.Name
			s.DispatchCompany = e.DispatchCompany
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalProfit > out[j].TotalProfit
	})
	return out
}

// employeeProfits 期間内の社員別粗利（初出順）
func employeeProfits(snap *snapshot, idxs []int) []model.EmployeeProfit {
	order := make([]string, 0)
	byID := make(map[string]*model.EmployeeProfit)
	counts := make(map[string]int)

	for _, idx := range idxs {
		p := &snap.profits[idx]
		ep, ok := byID[p.EmployeeID]
		if !ok {
			ep = &model.EmployeeProfit{
				EmployeeID:      p.EmployeeID,
				Name:            p.EmployeeName,
				DispatchCompany: p.DispatchCompany,
			}
			byID[p.EmployeeID] = ep
			order = append(order, p.EmployeeID)
		}
		ep.Revenue += p.BillingAmount
		ep.Cost += p.Cost.Total
		ep.Profit += p.GrossProfit
		ep.Margin += p.ProfitMargin
		counts[p.EmployeeID]++
	}

	out := make([]model.EmployeeProfit, 0, len(order))
	for _, id := range order {
		ep := *byID[id]
		ep.Margin /= float64(counts[id])
		out = append(out, ep)
	}
	return out
}

// rankEmployees 粗利の上位・下位N件（どちらも安定ソート）
func rankEmployees(list []model.EmployeeProfit, n int) (top, bottom []model.EmployeeProfit) {
	desc := append([]model.EmployeeProfit(nil), list...)
	sort.SliceStable(desc, func(i, j int) bool {
		return desc[i].Profit > desc[j].Profit
	})
	asc := append([]model.EmployeeProfit(nil), list...)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].Profit < asc[j].Profit
	})

	if n > len(list) {
		n = len(list)
	}
	return desc[:n], asc[:n]
}
