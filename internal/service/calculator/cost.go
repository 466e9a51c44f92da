package calculator

import (
	"github.com/shopspring/decimal"

	"arari/internal/model"
)

// CostInput 会社コスト計算の入力
type CostInput struct {
	GrossSalary     float64 // 総支給（通勤手当込み）
	SocialInsurance float64 // 本人負担の社会保険料

	// 取込元が会社負担分を持っていればそれを使う
	EmploymentInsurance *float64
	WorkersComp         *float64

	PaidLeaveHours float64
	HourlyRate     float64
}

// CostInputFromRecord 明細と社員時給から入力を組み立てる
func CostInputFromRecord(r *model.PayrollRecord, hourlyRate float64) CostInput {
	return CostInput{
		GrossSalary:         r.GrossSalary,
		SocialInsurance:     r.SocialInsurance,
		EmploymentInsurance: r.CompanyEmploymentInsurance,
		WorkersComp:         r.CompanyWorkersComp,
		PaidLeaveHours:      r.PaidLeaveHours,
		HourlyRate:          hourlyRate,
	}
}

// CompanyCost 会社負担の総コスト
func (c *Calculator) CompanyCost(in CostInput) model.CompanyCost {
	gross := decimal.NewFromFloat(in.GrossSalary)

	employment := roundYen(gross.Mul(decimal.NewFromFloat(c.rates.EmploymentInsurance)))
	if in.EmploymentInsurance != nil {
		employment = *in.EmploymentInsurance
	}
	workersComp := roundYen(gross.Mul(decimal.NewFromFloat(c.rates.WorkersComp)))
	if in.WorkersComp != nil {
		workersComp = *in.WorkersComp
	}

	// 社会保険は労使折半なので本人負担額と同額
	social := in.SocialInsurance

	paidLeave := decimal.NewFromFloat(in.PaidLeaveHours).Mul(decimal.NewFromFloat(in.HourlyRate))

	total := gross.
		Add(decimal.NewFromFloat(social)).
		Add(decimal.NewFromFloat(employment)).
		Add(decimal.NewFromFloat(workersComp)).
		Add(paidLeave)

	return model.CompanyCost{
		GrossSalary:         in.GrossSalary,
		SocialInsurance:     social,
		EmploymentInsurance: employment,
		WorkersComp:         workersComp,
		PaidLeaveCost:       paidLeave.InexactFloat64(),
		Total:               total.InexactFloat64(),
	}
}
