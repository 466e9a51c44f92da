package calculator

import "arari/internal/model"

// ValidateEmployee 社員マスタの単価ルール（取込時の警告用）
func ValidateEmployee(e *model.Employee) []string {
	if e == nil {
		return []string{}
	}

	errs := make([]string, 0, 3)

	if e.HourlyRate < 0 {
		errs = append(errs, "時給は0以上である必要があります")
	}
	if e.BillingRate < 0 {
		errs = append(errs, "単価は0以上である必要があります")
	}
	if e.BillingRate > 0 && e.HourlyRate > e.BillingRate {
		errs = append(errs, "単価が時給を下回っています")
	}

	return errs
}
