package model

import "math"

// netSalaryTolerance 手取り検算の許容誤差（円）
const netSalaryTolerance = 1.0

// PayrollRecord 給与明細（社員×期間で一意）
type PayrollRecord struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Period     string `json:"period" validate:"required"` // 例: 2025年10月

	// 勤怠
	WorkDays        float64 `json:"workDays" validate:"gte=0"`
	WorkHours       float64 `json:"workHours" validate:"gte=0"`
	OvertimeHours   float64 `json:"overtimeHours" validate:"gte=0"`   // 残業（60h以内）
	OvertimeOver60h float64 `json:"overtimeOver60h" validate:"gte=0"` // 残業（60h超）
	NightHours      float64 `json:"nightHours" validate:"gte=0"`
	HolidayHours    float64 `json:"holidayHours" validate:"gte=0"`
	PaidLeaveHours  float64 `json:"paidLeaveHours" validate:"gte=0"`
	PaidLeaveDays   float64 `json:"paidLeaveDays" validate:"gte=0"`

	// 支給
	BaseSalary         float64 `json:"baseSalary" validate:"gte=0"`
	OvertimePay        float64 `json:"overtimePay" validate:"gte=0"`
	NightPay           float64 `json:"nightPay" validate:"gte=0"`
	HolidayPay         float64 `json:"holidayPay" validate:"gte=0"`
	TransportAllowance float64 `json:"transportAllowance" validate:"gte=0"` // 通勤手当（総支給に含む）
	OtherAllowances    float64 `json:"otherAllowances" validate:"gte=0"`
	GrossSalary        float64 `json:"grossSalary" validate:"gte=0"`

	// 控除（本人負担）
	SocialInsurance     float64 `json:"socialInsurance" validate:"gte=0"`
	EmploymentInsurance float64 `json:"employmentInsurance" validate:"gte=0"`
	IncomeTax           float64 `json:"incomeTax" validate:"gte=0"`
	ResidentTax         float64 `json:"residentTax" validate:"gte=0"`
	OtherDeductions     float64 `json:"otherDeductions" validate:"gte=0"`

	NetSalary     float64 `json:"netSalary"`
	BillingAmount float64 `json:"billingAmount" validate:"gte=0"` // 請求額

	// 会社負担分（取込元が持っている場合のみ）
	CompanyEmploymentInsurance *float64 `json:"companyEmploymentInsurance,omitempty" validate:"omitempty,gte=0"`
	CompanyWorkersComp         *float64 `json:"companyWorkersComp,omitempty" validate:"omitempty,gte=0"`
}

// TotalDeductions 本人負担控除の合計
func (r *PayrollRecord) TotalDeductions() float64 {
	return r.SocialInsurance + r.EmploymentInsurance + r.IncomeTax + r.ResidentTax + r.OtherDeductions
}

// Key 差し替え用の一意キー
func (r *PayrollRecord) Key() string {
	return r.EmployeeID + "|" + r.Period
}

// Validate 明細の業務ルール検証
func (r *PayrollRecord) Validate() []ValidationError {
	var errs []ValidationError

	expectedNet := r.GrossSalary - r.TotalDeductions()
	if math.Abs(expectedNet-r.NetSalary) > netSalaryTolerance {
		errs = append(errs, ValidationError{
			Field:    "netSalary",
			Message:  "差引支給額が総支給額−控除合計と一致しません",
			Severity: SeverityError,
		})
	}

	if r.BillingAmount < 0 {
		errs = append(errs, ValidationError{
			Field:    "billingAmount",
			Message:  "請求額は0以上である必要があります",
			Severity: SeverityError,
		})
	}

	// 内訳の合計が総支給額を超えるのは取込ミスの可能性
	parts := r.BaseSalary + r.OvertimePay + r.NightPay + r.HolidayPay + r.TransportAllowance + r.OtherAllowances
	if parts > 0 && parts > r.GrossSalary+netSalaryTolerance {
		errs = append(errs, ValidationError{
			Field:    "grossSalary",
			Message:  "支給内訳の合計が総支給額を超えています",
			Severity: SeverityWarning,
		})
	}

	return errs
}
