package aggregator

import (
	"fmt"

	"arari/internal/model"
	"arari/internal/period"
)

// 粗利率分布の境界（%）。区間は [下限, 上限)
var marginBoundaries = []float64{0, 10, 15, 20, 25}

// ProfitTrend 期間ごとの推移（古い順）
// 粗利率は明細粗利率の単純平均で、粗利合計÷売上合計とは一致しない
func (a *Aggregator) ProfitTrend(employees []model.Employee, records []model.PayrollRecord) []model.TrendPoint {
	return trend(a.evaluate(employees, records))
}

func trend(snap *snapshot) []model.TrendPoint {
	labels := make([]string, 0, len(snap.byPeriod))
	for label := range snap.byPeriod {
		labels = append(labels, label)
	}
	labels = period.SortAscending(labels)

	out := make([]model.TrendPoint, 0, len(labels))
	for _, label := range labels {
		var totals profitTotals
		for _, idx := range snap.byPeriod[label] {
			totals.add(&snap.profits[idx])
		}
		out = append(out, model.TrendPoint{
			Period:    label,
			Revenue:   totals.revenue,
			Cost:      totals.cost,
			Profit:    totals.profit,
			AvgMargin: totals.avgMargin(),
			Records:   totals.count,
		})
	}
	return out
}

// ProfitDistribution 粗利率の分布（件数と構成比）
func ProfitDistribution(profits []model.RecordProfit) []model.DistributionBucket {
	buckets := newBuckets()
	for _, p := range profits {
		buckets[bucketIndex(p.ProfitMargin)].Count++
	}

	total := len(profits)
	for i := range buckets {
		if total > 0 {
			buckets[i].Percentage = float64(buckets[i].Count) / float64(total) * 100
		}
	}
	return buckets
}

func bucketIndex(margin float64) int {
	for i, b := range marginBoundaries {
		if margin < b {
			return i
		}
	}
	return len(marginBoundaries)
}

func newBuckets() []model.DistributionBucket {
	buckets := make([]model.DistributionBucket, 0, len(marginBoundaries)+1)
	for i := 0; i <= len(marginBoundaries); i++ {
		var b model.DistributionBucket
		switch {
		case i == 0:
			b.Max = boundary(0)
			b.Label = "赤字"
		case i == len(marginBoundaries):
			b.Min = boundary(i - 1)
			b.Label = fmt.Sprintf("%g%%以上", marginBoundaries[i-1])
		default:
			b.Min = boundary(i - 1)
			b.Max = boundary(i)
			b.Label = fmt.Sprintf("%g〜%g%%", marginBoundaries[i-1], marginBoundaries[i])
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func boundary(i int) *float64 {
	v := marginBoundaries[i]
	return &v
}
