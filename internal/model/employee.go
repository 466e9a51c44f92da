package model

// EmploymentType 雇用区分
type EmploymentType string

const (
	EmploymentDispatch EmploymentType = "dispatch" // 派遣
	EmploymentContract EmploymentType = "contract" // 請負
)

// EmployeeStatus 在籍状態
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
	StatusPending  EmployeeStatus = "pending"
)

// Employee 派遣社員
type Employee struct {
	EmployeeID      string         `json:"employeeId" validate:"required"`      // 社員番号（業務キー）
	Name            string         `json:"name"`                                // 氏名
	DispatchCompany string         `json:"dispatchCompany"`                     // 派遣先
	HourlyRate      float64        `json:"hourlyRate" validate:"gte=0"`         // 時給（支給）
	BillingRate     float64        `json:"billingRate" validate:"gte=0"`        // 単価（請求）
	EmploymentType  EmploymentType `json:"employmentType" validate:"omitempty,oneof=dispatch contract"`
	Status          EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive pending"`
	HireDate        string         `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"` // 入社日
}

// ProfitPerHour 時間当たり粗利
func (e *Employee) ProfitPerHour() float64 {
	return e.BillingRate - e.HourlyRate
}

// RateMargin 単価ベースのマージン率（%）
func (e *Employee) RateMargin() float64 {
	if e.BillingRate <= 0 {
		return 0
	}
	return (e.BillingRate - e.HourlyRate) / e.BillingRate * 100
}
