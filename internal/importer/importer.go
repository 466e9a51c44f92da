package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arari/internal/model"
	"arari/internal/period"
	"arari/internal/store"
)

var (
	// ErrEmptyBatch 社員も明細も含まない取込
	ErrEmptyBatch = errors.New("import batch is empty")
	// ErrRejected 検証エラーがあり取込を行わなかった
	ErrRejected = errors.New("import batch rejected")
)

// Importer JSON バッチの検証と保存
type Importer struct {
	repo     store.Repository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// New 取込器を作成
func New(repo store.Repository, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		repo:     repo,
		validate: newValidator(),
		logger:   logger.Named("importer"),
		now:      time.Now,
	}
}

// Import バッチ全体を検証し、エラーが1件でもあれば何も書かずに ErrRejected を返す
// 社員 → 明細の順に保存する。明細は (社員番号, 期間) 単位で差し替え
func (im *Importer) Import(ctx context.Context, batch model.ImportBatch) (*model.ImportReport, error) {
	start := im.now()
	report := &model.ImportReport{
		BatchID: uuid.NewString(),
		Periods: []string{},
	}
	logger := im.logger.With(zap.String("batch_id", report.BatchID), zap.String("source", batch.Source))

	if len(batch.Employees) == 0 && len(batch.Records) == 0 {
		return nil, ErrEmptyBatch
	}

	employees, records := im.check(&batch, report)
	if len(report.RowErrors) > 0 {
		report.Status = model.ImportStatusRejected
		report.Duration = time.Since(start)
		report.DurationMs = report.Duration.Milliseconds()

		msg := fmt.Sprintf("%d rows invalid", len(report.RowErrors))
		im.writeLog(ctx, logger, report, batch.Source, msg)
		logger.Warn("import rejected", zap.Int("row_errors", len(report.RowErrors)))
		return report, fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	if err := im.repo.UpsertEmployees(ctx, employees); err != nil {
		return im.fail(ctx, logger, report, batch.Source, fmt.Errorf("save employees: %w", err))
	}
	if err := im.repo.ReplacePayrollRecords(ctx, records); err != nil {
		return im.fail(ctx, logger, report, batch.Source, fmt.Errorf("save payroll records: %w", err))
	}

	report.Status = model.ImportStatusSuccess
	report.Employees = len(employees)
	report.Records = len(records)
	report.Periods = touchedPeriods(records)
	report.Duration = time.Since(start)
	report.DurationMs = report.Duration.Milliseconds()

	if err := im.repo.SetSetting(ctx, store.SettingLastImportBatch, report.BatchID); err != nil {
		logger.Warn("failed to record last import batch", zap.Error(err))
	}
	if err := im.repo.SetSetting(ctx, store.SettingLastImportAt, start.Format(time.RFC3339)); err != nil {
		logger.Warn("failed to record last import time", zap.Error(err))
	}
	im.writeLog(ctx, logger, report, batch.Source, "")

	logger.Info("import completed",
		zap.Int("employees", report.Employees),
		zap.Int("records", report.Records),
		zap.Strings("periods", report.Periods),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// check 行ごとの検証。期間ラベルは解析できれば正規形に揃える
func (im *Importer) check(batch *model.ImportBatch, report *model.ImportReport) ([]model.Employee, []model.PayrollRecord) {
	employees := make([]model.Employee, 0, len(batch.Employees))
	seenEmployees := make(map[string]int, len(batch.Employees))
	for i := range batch.Employees {
		e := batch.Employees[i]
		errs := im.checkEmployee(&e)
		if first, dup := seenEmployees[e.EmployeeID]; dup && e.EmployeeID != "" {
			errs = append(errs, model.ValidationError{
				Field:    "employeeId",
				Message:  fmt.Sprintf("社員番号が重複しています（%d 行目と同じ）", first+1),
				Severity: model.SeverityError,
			})
		} else {
			seenEmployees[e.EmployeeID] = i
		}
		im.collect(report, "employee", i, e.EmployeeID, errs)
		employees = append(employees, e)
	}

	records := make([]model.PayrollRecord, 0, len(batch.Records))
	seenRecords := make(map[string]int, len(batch.Records))
	for i := range batch.Records {
		r := batch.Records[i]
		r.Period = period.Canonical(r.Period)
		errs := im.checkRecord(&r)
		if first, dup := seenRecords[r.Key()]; dup {
			errs = append(errs, model.ValidationError{
				Field:    "period",
				Message:  fmt.Sprintf("同じ社員・期間の明細が重複しています（%d 行目と同じ）", first+1),
				Severity: model.SeverityError,
			})
		} else {
			seenRecords[r.Key()] = i
		}
		im.collect(report, "record", i, r.Key(), errs)
		records = append(records, r)
	}

	return employees, records
}

func (im *Importer) collect(report *model.ImportReport, kind string, index int, key string, errs []model.ValidationError) {
	blocking, warnings := split(kind, index, key, errs)
	if blocking != nil {
		report.RowErrors = append(report.RowErrors, *blocking)
	}
	if warnings != nil {
		report.Warnings = append(report.Warnings, *warnings)
	}
}

func (im *Importer) fail(ctx context.Context, logger *zap.Logger, report *model.ImportReport, source string, err error) (*model.ImportReport, error) {
	report.Status = model.ImportStatusFailed
	im.writeLog(ctx, logger, report, source, err.Error())
	logger.Error("import failed", zap.Error(err))
	return report, err
}

// writeLog 取込履歴の保存失敗は取込結果に影響させない
func (im *Importer) writeLog(ctx context.Context, logger *zap.Logger, report *model.ImportReport, source, message string) {
	_, err := im.repo.CreateImportLog(ctx, model.ImportLog{
		BatchID:      report.BatchID,
		Source:       source,
		Employees:    report.Employees,
		Records:      report.Records,
		Periods:      report.Periods,
		Status:       report.Status,
		ErrorMessage: message,
	})
	if err != nil {
		logger.Warn("failed to write import log", zap.Error(err))
	}
}

// touchedPeriods 取込で触れた期間（新しい順）
func touchedPeriods(records []model.PayrollRecord) []string {
	labels := make([]string, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.Period)
	}
	return period.SortDescending(period.Distinct(labels))
}
