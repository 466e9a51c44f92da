package calculator

import (
	"math"
	"testing"

	"arari/internal/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

// TestBillingAmount 請求額の計算
func TestBillingAmount(t *testing.T) {
	tests := []struct {
		name     string
		hours    HoursBreakdown
		rate     float64
		expected float64
	}{
		{"所定+残業", HoursBreakdown{WorkHours: 160, OvertimeHours: 10}, 2000, 345000},
		{"全区分", HoursBreakdown{WorkHours: 160, OvertimeHours: 10, OvertimeOver60h: 5, NightHours: 8, HolidayHours: 4}, 1700, 318580},
		{"四捨五入", HoursBreakdown{WorkHours: 1.5}, 1001, 1502},
		{"単価ゼロ", HoursBreakdown{WorkHours: 160, OvertimeHours: 20}, 0, 0},
		{"単価マイナス", HoursBreakdown{WorkHours: 160}, -1500, 0},
		{"時間ゼロ", HoursBreakdown{}, 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BillingAmount(tt.hours, tt.rate)
			if !floatEquals(result, tt.expected) {
				t.Errorf("BillingAmount(%+v, %v) = %v, want %v", tt.hours, tt.rate, result, tt.expected)
			}
		})
	}
}

// TestBillingAmount_NightPremiumIsAdditive 深夜割増は他区分と重ねて加算される
func TestBillingAmount_NightPremiumIsAdditive(t *testing.T) {
	base := BillingAmount(HoursBreakdown{WorkHours: 160, OvertimeHours: 8}, 2000)
	withNight := BillingAmount(HoursBreakdown{WorkHours: 160, OvertimeHours: 8, NightHours: 8}, 2000)

	if got, want := withNight-base, 8*2000*0.25; !floatEquals(got, want) {
		t.Fatalf("night premium = %v, want %v", got, want)
	}
}

// TestCompanyCost 会社コストの計算
func TestCompanyCost(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	cost := calc.CompanyCost(CostInput{
		GrossSalary:     300000,
		SocialInsurance: 45000,
		PaidLeaveHours:  8,
		HourlyRate:      1500,
	})

	if !floatEquals(cost.EmploymentInsurance, 2850) {
		t.Errorf("EmploymentInsurance = %v, want 2850", cost.EmploymentInsurance)
	}
	if !floatEquals(cost.WorkersComp, 900) {
		t.Errorf("WorkersComp = %v, want 900", cost.WorkersComp)
	}
	if !floatEquals(cost.PaidLeaveCost, 12000) {
		t.Errorf("PaidLeaveCost = %v, want 12000", cost.PaidLeaveCost)
	}
	if !floatEquals(cost.Total, 360750) {
		t.Errorf("Total = %v, want 360750", cost.Total)
	}
}

// TestCompanyCost_RoundsInsurance 保険料は円単位で四捨五入
func TestCompanyCost_RoundsInsurance(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	cost := calc.CompanyCost(CostInput{GrossSalary: 123457})

	if !floatEquals(cost.EmploymentInsurance, 1173) {
		t.Errorf("EmploymentInsurance = %v, want 1173", cost.EmploymentInsurance)
	}
	if !floatEquals(cost.WorkersComp, 370) {
		t.Errorf("WorkersComp = %v, want 370", cost.WorkersComp)
	}
	if !floatEquals(cost.Total, 123457+1173+370) {
		t.Errorf("Total = %v", cost.Total)
	}
}

// TestCompanyCost_SuppliedValues 取込元の会社負担額を優先する
func TestCompanyCost_SuppliedValues(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	cost := calc.CompanyCost(CostInput{
		GrossSalary:         300000,
		SocialInsurance:     45000,
		EmploymentInsurance: floatPtr(3000),
		WorkersComp:         floatPtr(0),
	})

	if !floatEquals(cost.EmploymentInsurance, 3000) {
		t.Errorf("EmploymentInsurance = %v, want 3000", cost.EmploymentInsurance)
	}
	if !floatEquals(cost.WorkersComp, 0) {
		t.Errorf("WorkersComp = %v, want 0 (supplied)", cost.WorkersComp)
	}
	if !floatEquals(cost.Total, 348000) {
		t.Errorf("Total = %v, want 348000", cost.Total)
	}
}

// TestCompanyCost_ConfiguredRates 料率は設定で差し替えられる
func TestCompanyCost_ConfiguredRates(t *testing.T) {
	calc := NewCalculator(Rates{EmploymentInsurance: 0.01, WorkersComp: 0.005})

	cost := calc.CompanyCost(CostInput{GrossSalary: 200000})

	if !floatEquals(cost.EmploymentInsurance, 2000) || !floatEquals(cost.WorkersComp, 1000) {
		t.Fatalf("unexpected insurance: %+v", cost)
	}
}

// TestSocialInsuranceMirrorsEmployeeShare 会社負担の社保は本人負担と同額
func TestSocialInsuranceMirrorsEmployeeShare(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	for _, social := range []float64{0, 1, 28733, 45000.5, 120000} {
		cost := calc.CompanyCost(CostInput{GrossSalary: 250000, SocialInsurance: social})
		if cost.SocialInsurance != social {
			t.Errorf("SocialInsurance = %v, want %v", cost.SocialInsurance, social)
		}
	}
}

// TestProfitMargin 粗利率はゼロ除算しない
func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name     string
		billing  float64
		cost     float64
		expected float64
	}{
		{"黒字", 400000, 360750, 9.8125},
		{"赤字", 300000, 330000, -10},
		{"請求ゼロ", 0, 250000, 0},
		{"請求ゼロコストゼロ", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			margin := ProfitMargin(tt.billing, GrossProfit(tt.billing, tt.cost))
			if math.IsNaN(margin) || math.IsInf(margin, 0) {
				t.Fatalf("margin is not finite: %v", margin)
			}
			if !floatEquals(margin, tt.expected) {
				t.Errorf("margin = %v, want %v", margin, tt.expected)
			}
		})
	}
}

// TestEvaluate 明細1件の粗利
func TestEvaluate(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	emp := &model.Employee{
		EmployeeID:      "E001",
		Name:            "山田太郎",
		DispatchCompany: "高雄工業",
		HourlyRate:      1500,
		BillingRate:     2000,
	}
	rec := &model.PayrollRecord{
		EmployeeID:      "E001",
		Period:          "2025年10月",
		WorkHours:       160,
		PaidLeaveHours:  8,
		GrossSalary:     300000,
		SocialInsurance: 45000,
		BillingAmount:   400000,
	}

	got := calc.Evaluate(rec, emp)

	if got.EmployeeName != "山田太郎" || got.DispatchCompany != "高雄工業" {
		t.Errorf("unexpected employee attrs: %+v", got)
	}
	if !floatEquals(got.BillingAmount, 400000) {
		t.Errorf("BillingAmount = %v, want 400000 (supplied)", got.BillingAmount)
	}
	if !floatEquals(got.GrossProfit, 39250) {
		t.Errorf("GrossProfit = %v, want 39250", got.GrossProfit)
	}
	if !floatEquals(got.ProfitMargin, 9.8125) {
		t.Errorf("ProfitMargin = %v, want 9.8125", got.ProfitMargin)
	}
}

// TestEvaluate_DerivesBillingFromHours 請求額が無い明細は時間×単価から導出
func TestEvaluate_DerivesBillingFromHours(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	emp := &model.Employee{EmployeeID: "E002", HourlyRate: 1500, BillingRate: 2000}
	rec := &model.PayrollRecord{EmployeeID: "E002", WorkHours: 160, OvertimeHours: 10, GrossSalary: 270000}

	got := calc.Evaluate(rec, emp)

	if !floatEquals(got.BillingAmount, 345000) {
		t.Fatalf("BillingAmount = %v, want 345000", got.BillingAmount)
	}
}

// TestEvaluate_ZeroBillingRate 単価ゼロでも例外にならず請求0・粗利率0
func TestEvaluate_ZeroBillingRate(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	emp := &model.Employee{EmployeeID: "E003", HourlyRate: 1200, BillingRate: 0}
	rec := &model.PayrollRecord{EmployeeID: "E003", WorkHours: 160, GrossSalary: 192000}

	got := calc.Evaluate(rec, emp)

	if got.BillingAmount != 0 {
		t.Errorf("BillingAmount = %v, want 0", got.BillingAmount)
	}
	if got.ProfitMargin != 0 {
		t.Errorf("ProfitMargin = %v, want 0", got.ProfitMargin)
	}
	if got.GrossProfit >= 0 {
		t.Errorf("GrossProfit = %v, want negative (cost without billing)", got.GrossProfit)
	}
}

// TestEvaluate_MissingEmployee 社員マスタ未登録でも落ちない
func TestEvaluate_MissingEmployee(t *testing.T) {
	calc := NewCalculator(DefaultRates())
	rec := &model.PayrollRecord{EmployeeID: "GHOST", WorkHours: 100, PaidLeaveHours: 16, GrossSalary: 100000}

	got := calc.Evaluate(rec, nil)

	if got.EmployeeName != "" || got.DispatchCompany != "" {
		t.Errorf("expected empty employee attrs, got %+v", got)
	}
	if got.Cost.PaidLeaveCost != 0 {
		t.Errorf("PaidLeaveCost = %v, want 0 without hourly rate", got.Cost.PaidLeaveCost)
	}
	if got.BillingAmount != 0 || got.ProfitMargin != 0 {
		t.Errorf("unexpected billing/margin: %+v", got)
	}
}

// TestChangeRate 前期比
func TestChangeRate(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{"増加", 1100, 1000, 10},
		{"減少", 900, 1000, -10},
		{"横ばい", 1000, 1000, 0},
		{"前期ゼロ", 100, 0, 0},
		{"倍増", 2000, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ChangeRate(tt.current, tt.previous)
			if !floatEquals(result, tt.expected) {
				t.Errorf("ChangeRate(%v, %v) = %v, want %v", tt.current, tt.previous, result, tt.expected)
			}
		})
	}
}

// floatEquals 浮動小数点の近似比較
func floatEquals(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
