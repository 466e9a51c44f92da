package calculator

import "arari/internal/model"

// GrossProfit 粗利 = 請求額 − 会社コスト（赤字も正常値）
func GrossProfit(billingAmount, totalCost float64) float64 {
	return billingAmount - totalCost
}

// ProfitMargin 粗利率（%）。請求額が0以下なら0
func ProfitMargin(billingAmount, grossProfit float64) float64 {
	if billingAmount <= 0 {
		return 0
	}
	return grossProfit / billingAmount * 100
}

// Evaluate 明細1件の粗利を計算する。employee が nil（社員マスタ未登録）でも落とさない
func (c *Calculator) Evaluate(r *model.PayrollRecord, employee *model.Employee) model.RecordProfit {
	var (
		name, company           string
		hourlyRate, billingRate float64
	)
	if employee != nil {
		name = employee.Name
		company = employee.DispatchCompany
		hourlyRate = employee.HourlyRate
		billingRate = employee.BillingRate
	}

	billing := r.BillingAmount
	if billing <= 0 {
		billing = BillingAmount(HoursFromRecord(r), billingRate)
	}

	cost := c.CompanyCost(CostInputFromRecord(r, hourlyRate))
	profit := GrossProfit(billing, cost.Total)

	return model.RecordProfit{
		EmployeeID:      r.EmployeeID,
		EmployeeName:    name,
		DispatchCompany: company,
		Period:          r.Period,
		BillingAmount:   billing,
		Cost:            cost,
		GrossProfit:     profit,
		ProfitMargin:    ProfitMargin(billing, profit),
	}
}
