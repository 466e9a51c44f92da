package calculator

import (
	"github.com/shopspring/decimal"

	"arari/internal/model"
)

// 請求割増倍率（契約上の固定値）
var (
	overtimeMultiplier       = decimal.NewFromFloat(1.25)
	overtimeOver60Multiplier = decimal.NewFromFloat(1.5)
	nightPremiumMultiplier   = decimal.NewFromFloat(0.25)
	holidayMultiplier        = decimal.NewFromFloat(1.35)
)

// HoursBreakdown 請求対象時間の内訳
type HoursBreakdown struct {
	WorkHours       float64
	OvertimeHours   float64 // 60h以内
	OvertimeOver60h float64
	NightHours      float64
	HolidayHours    float64
}

// HoursFromRecord 明細から時間内訳を取り出す
func HoursFromRecord(r *model.PayrollRecord) HoursBreakdown {
	return HoursBreakdown{
		WorkHours:       r.WorkHours,
		OvertimeHours:   r.OvertimeHours,
		OvertimeOver60h: r.OvertimeOver60h,
		NightHours:      r.NightHours,
		HolidayHours:    r.HolidayHours,
	}
}

// BillingAmount 請求額を計算する（円単位で四捨五入）
// 深夜は時間帯の重なりを見ずに 0.25 倍を単純加算する
func BillingAmount(h HoursBreakdown, billingRate float64) float64 {
	if billingRate <= 0 {
		return 0
	}

	rate := decimal.NewFromFloat(billingRate)
	total := decimal.NewFromFloat(h.WorkHours).Mul(rate).
		Add(decimal.NewFromFloat(h.OvertimeHours).Mul(rate).Mul(overtimeMultiplier)).
		Add(decimal.NewFromFloat(h.OvertimeOver60h).Mul(rate).Mul(overtimeOver60Multiplier)).
		Add(decimal.NewFromFloat(h.NightHours).Mul(rate).Mul(nightPremiumMultiplier)).
		Add(decimal.NewFromFloat(h.HolidayHours).Mul(rate).Mul(holidayMultiplier))

	return roundYen(total)
}
