package model

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError 検証エラー
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error or warning
}

// HasBlocking 取込を止めるエラーを含むか
func HasBlocking(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
