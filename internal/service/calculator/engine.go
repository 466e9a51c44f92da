package calculator

import "github.com/shopspring/decimal"

// Rates 会社負担保険料率（年度ごとに設定で更新する）
type Rates struct {
	EmploymentInsurance float64 // 雇用保険（会社負担）
	WorkersComp         float64 // 労災保険
}

// DefaultRates 既定の料率
func DefaultRates() Rates {
	return Rates{
		EmploymentInsurance: 0.0095,
		WorkersComp:         0.003,
	}
}

// Calculator 明細単位の請求・コスト・粗利計算
type Calculator struct {
	rates Rates
}

// NewCalculator 計算器を作成
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates 現在の料率
func (c *Calculator) Rates() Rates {
	return c.rates
}

// roundYen 円単位に四捨五入
func roundYen(d decimal.Decimal) float64 {
	return d.Round(0).InexactFloat64()
}

// calcRate 増減率（%）。基準が0なら0
func calcRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// ChangeRate 前期比の増減率（%）
func ChangeRate(current, previous float64) float64 {
	return calcRate(current, previous)
}
