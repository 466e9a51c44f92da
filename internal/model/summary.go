package model

// CompanyCost 会社負担コスト（導出値、保存しない）
type CompanyCost struct {
	GrossSalary         float64 `json:"grossSalary"`
	SocialInsurance     float64 `json:"socialInsurance"`     // 本人負担額と同額（労使折半）
	EmploymentInsurance float64 `json:"employmentInsurance"` // 雇用保険（会社負担）
	WorkersComp         float64 `json:"workersComp"`         // 労災保険
	PaidLeaveCost       float64 `json:"paidLeaveCost"`       // 有給コスト
	Total               float64 `json:"total"`
}

// RecordProfit 明細単位の粗利
type RecordProfit struct {
	EmployeeID      string      `json:"employeeId"`
	EmployeeName    string      `json:"employeeName"`
	DispatchCompany string      `json:"dispatchCompany"`
	Period          string      `json:"period"`
	BillingAmount   float64     `json:"billingAmount"`
	Cost            CompanyCost `json:"cost"`
	GrossProfit     float64     `json:"grossProfit"`  // 負数もあり得る
	ProfitMargin    float64     `json:"profitMargin"` // %
}

// MarginStatus 目標マージンに対する評価
type MarginStatus string

const (
	MarginGood    MarginStatus = "good"
	MarginWarning MarginStatus = "warning"
	MarginPoor    MarginStatus = "poor"
)

// CompanySummary 派遣先別サマリー（最新期間ベース）
type CompanySummary struct {
	CompanyName      string       `json:"companyName"`
	EmployeeCount    int          `json:"employeeCount"`  // 最新期間に明細がある人数
	TotalEmployees   int          `json:"totalEmployees"` // 登録人数
	AvgHourlyRate    float64      `json:"avgHourlyRate"`
	AvgBillingRate   float64      `json:"avgBillingRate"`
	AvgProfitPerHour float64      `json:"avgProfitPerHour"`
	AvgMargin        float64      `json:"avgMargin"`
	TotalRevenue     float64      `json:"totalRevenue"`
	TotalCost        float64      `json:"totalCost"`
	TotalProfit      float64      `json:"totalProfit"`
	MarginStatus     MarginStatus `json:"marginStatus"`
	IsActive         bool         `json:"isActive"` // false = 集計対象外に設定済み
}

// EmployeeSummary 社員別サマリー（全期間）
type EmployeeSummary struct {
	EmployeeID      string  `json:"employeeId"`
	Name            string  `json:"name"`
	DispatchCompany string  `json:"dispatchCompany"`
	RecordCount     int     `json:"recordCount"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalCost       float64 `json:"totalCost"`
	TotalProfit     float64 `json:"totalProfit"`
	AvgMargin       float64 `json:"avgMargin"`
	LatestPeriod    string  `json:"latestPeriod"`
}

// EmployeeProfit ランキング用の社員粗利
type EmployeeProfit struct {
	EmployeeID      string  `json:"employeeId"`
	Name            string  `json:"name"`
	DispatchCompany string  `json:"dispatchCompany"`
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	Margin          float64 `json:"margin"`
}

// DistributionBucket 粗利率分布の1区間
type DistributionBucket struct {
	Label      string   `json:"label"`
	Min        *float64 `json:"min"` // nil = 下限なし
	Max        *float64 `json:"max"` // nil = 上限なし
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// TrendPoint 推移グラフの1点
type TrendPoint struct {
	Period    string  `json:"period"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	AvgMargin float64 `json:"avgMargin"` // 明細マージンの単純平均
	Records   int     `json:"records"`
}

// PeriodDelta 前月比
type PeriodDelta struct {
	PreviousPeriod string  `json:"previousPeriod"`
	RevenueRate    float64 `json:"revenueRate"` // %
	CostRate       float64 `json:"costRate"`    // %
	ProfitRate     float64 `json:"profitRate"`  // %
	MarginPoints   float64 `json:"marginPoints"`
}

// MonthlySummary 月次サマリー
type MonthlySummary struct {
	Period          string               `json:"period"`
	TotalRevenue    float64              `json:"totalRevenue"`
	TotalCost       float64              `json:"totalCost"`
	TotalProfit     float64              `json:"totalProfit"`
	AvgMargin       float64              `json:"avgMargin"`
	EmployeeCount   int                  `json:"employeeCount"`
	RecordCount     int                  `json:"recordCount"`
	TopEmployees    []EmployeeProfit     `json:"topEmployees"`
	BottomEmployees []EmployeeProfit     `json:"bottomEmployees"`
	Distribution    []DistributionBucket `json:"distribution"`
	Delta           *PeriodDelta         `json:"delta"` // nil = 前期間データなし
}

// DashboardStats ダッシュボード全体
type DashboardStats struct {
	LatestPeriod        string               `json:"latestPeriod"`
	TotalEmployees      int                  `json:"totalEmployees"`
	ActiveEmployees     int                  `json:"activeEmployees"`
	TotalCompanies      int                  `json:"totalCompanies"`
	AverageProfit       float64              `json:"averageProfit"`
	AverageMargin       float64              `json:"averageMargin"`
	TotalMonthlyRevenue float64              `json:"totalMonthlyRevenue"`
	TotalMonthlyCost    float64              `json:"totalMonthlyCost"`
	TotalMonthlyProfit  float64              `json:"totalMonthlyProfit"`
	ProfitTrend         []TrendPoint         `json:"profitTrend"`
	ProfitDistribution  []DistributionBucket `json:"profitDistribution"`
	TopCompanies        []CompanySummary     `json:"topCompanies"`
	RecentPayrolls      []RecordProfit       `json:"recentPayrolls"`
	UnparsedPeriods     []string             `json:"unparsedPeriods"`
}

// PeriodStat データがある期間と明細件数
type PeriodStat struct {
	Period  string `json:"period"`
	Records int    `json:"records"`
	Parsed  bool   `json:"parsed"` // false = 年月として解析できないラベル
}
