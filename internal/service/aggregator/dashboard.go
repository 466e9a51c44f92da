package aggregator

import (
	"sort"

	"go.uber.org/zap"

	"arari/internal/model"
	"arari/internal/period"
)

// DashboardStats ダッシュボード全体（最新期間ベース）
func (a *Aggregator) DashboardStats(employees []model.Employee, records []model.PayrollRecord, ignored map[string]bool) model.DashboardStats {
	snap := a.evaluate(employees, records)

	var totals profitTotals
	latestProfits := make([]model.RecordProfit, 0)
	activeIDs := make(map[string]struct{})
	for _, idx := range snap.byPeriod[snap.latest] {
		p := &snap.profits[idx]
		totals.add(p)
		latestProfits = append(latestProfits, *p)
		activeIDs[p.EmployeeID] = struct{}{}
	}

	companies := a.companySummaries(snap, ignored)
	topCompanies := make([]model.CompanySummary, 0, a.opts.TopN)
	activeCompanies := 0
	for _, c := range companies {
		if !c.IsActive {
			continue
		}
		activeCompanies++
		if len(topCompanies) < a.opts.TopN {
			topCompanies = append(topCompanies, c)
		}
	}

	stats := model.DashboardStats{
		LatestPeriod:        snap.latest,
		TotalEmployees:      len(snap.employees),
		ActiveEmployees:     len(activeIDs),
		TotalCompanies:      activeCompanies,
		AverageProfit:       totals.avgProfit(),
		AverageMargin:       totals.avgMargin(),
		TotalMonthlyRevenue: totals.revenue,
		TotalMonthlyCost:    totals.cost,
		TotalMonthlyProfit:  totals.profit,
		ProfitTrend:         trend(snap),
		ProfitDistribution:  ProfitDistribution(latestProfits),
		TopCompanies:        topCompanies,
		RecentPayrolls:      a.recentPayrolls(snap),
		UnparsedPeriods:     append([]string{}, snap.unparsed...),
	}

	a.logger.Debug("dashboard stats computed",
		zap.String("latest_period", stats.LatestPeriod),
		zap.Int("records", len(snap.profits)),
		zap.Int("companies", len(companies)),
	)
	return stats
}

// recentPayrolls 新しい期間順の明細（解析できない期間は末尾）
func (a *Aggregator) recentPayrolls(snap *snapshot) []model.RecordProfit {
	out := append([]model.RecordProfit(nil), snap.profits...)
	sort.SliceStable(out, func(i, j int) bool {
		okI, okJ := period.Valid(out[i].Period), period.Valid(out[j].Period)
		if !okI || !okJ {
			return okI && !okJ
		}
		return period.Compare(out[i].Period, out[j].Period) > 0
	})
	if len(out) > a.opts.RecentLimit {
		out = out[:a.opts.RecentLimit]
	}
	return out
}
