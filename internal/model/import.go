package model

import "time"

// 取込ステータス
const (
	ImportStatusSuccess  = "success"
	ImportStatusRejected = "rejected"
	ImportStatusFailed   = "failed"
)

// ImportBatch 取込1回分（JSON）
type ImportBatch struct {
	Source    string          `json:"source"`
	Employees []Employee      `json:"employees" validate:"dive"`
	Records   []PayrollRecord `json:"records" validate:"dive"`
}

// RowError 行単位の検証結果
type RowError struct {
	Kind   string            `json:"kind"` // employee or record
	Index  int               `json:"index"`
	Key    string            `json:"key"`
	Errors []ValidationError `json:"errors"`
}

// ImportReport 取込結果
type ImportReport struct {
	BatchID    string        `json:"batchId"`
	Status     string        `json:"status"`
	Employees  int           `json:"employees"`
	Records    int           `json:"records"`
	Periods    []string      `json:"periods"`
	RowErrors  []RowError    `json:"rowErrors,omitempty"`
	Warnings   []RowError    `json:"warnings,omitempty"`
	DurationMs int64         `json:"durationMs"`
	Duration   time.Duration `json:"-"`
}

// ImportLog 取込履歴
type ImportLog struct {
	ID           int64     `json:"id"`
	BatchID      string    `json:"batchId"`
	Source       string    `json:"source"`
	Employees    int       `json:"employees"`
	Records      int       `json:"records"`
	Periods      []string  `json:"periods"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
