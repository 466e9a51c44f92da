package aggregator

import (
	"sort"

	"arari/internal/model"
)

// CompanySummaries 派遣先別サマリー（粗利の降順、同額は初出順）
// ignored に含まれる派遣先は IsActive=false になるが一覧からは除外しない
func (a *Aggregator) CompanySummaries(employees []model.Employee, records []model.PayrollRecord, ignored map[string]bool) []model.CompanySummary {
	return a.companySummaries(a.evaluate(employees, records), ignored)
}

func (a *Aggregator) companySummaries(snap *snapshot, ignored map[string]bool) []model.CompanySummary {
	// 派遣先名の完全一致でグループ化（初出順を保持）
	order := make([]string, 0)
	members := make(map[string][]*model.Employee)
	for _, e := range snap.employees {
		if _, ok := members[e.DispatchCompany]; !ok {
			order = append(order, e.DispatchCompany)
		}
		members[e.DispatchCompany] = append(members[e.DispatchCompany], e)
	}

	out := make([]model.CompanySummary, 0, len(order))
	for _, name := range order {
		out = append(out, a.summarizeCompany(snap, name, members[name], ignored[name]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalProfit > out[j].TotalProfit
	})
	return out
}

func (a *Aggregator) summarizeCompany(snap *snapshot, name string, staff []*model.Employee, ignored bool) model.CompanySummary {
	var totals profitTotals
	active := make([]*model.Employee, 0, len(staff))

	for _, e := range staff {
		hasLatest := false
		for _, idx := range snap.byEmployee[e.EmployeeID] {
			p := &snap.profits[idx]
			if snap.latest == "" || p.Period != snap.latest {
				continue
			}
			totals.add(p)
			hasLatest = true
		}
		if hasLatest {
			active = append(active, e)
		}
	}

	// 単価平均は最新期間の稼働者。稼働者がいなければ登録者全員
	basis := active
	if len(basis) == 0 {
		basis = staff
	}
	var hourly, billing, perHour, rateMargin float64
	for _, e := range basis {
		hourly += e.HourlyRate
		billing += e.BillingRate
		perHour += e.ProfitPerHour()
		rateMargin += e.RateMargin()
	}
	n := float64(len(basis))

	summary := model.CompanySummary{
		CompanyName:    name,
		EmployeeCount:  len(active),
		TotalEmployees: len(staff),
		TotalRevenue:   totals.revenue,
		TotalCost:      totals.cost,
		TotalProfit:    totals.profit,
		IsActive:       !ignored,
	}
	if n > 0 {
		summary.AvgHourlyRate = hourly / n
		summary.AvgBillingRate = billing / n
		summary.AvgProfitPerHour = perHour / n
	}

	if totals.count > 0 {
		summary.AvgMargin = totals.avgMargin()
	} else if n > 0 {
		// 最新期間の明細が無い派遣先は単価ベースの見込みマージン
		summary.AvgMargin = rateMargin / n
	}
	summary.MarginStatus = a.marginStatus(summary.AvgMargin)

	return summary
}
