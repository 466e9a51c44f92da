package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arari/internal/model"
	memstore "arari/internal/service/store"
	"arari/internal/store"
)

func validRecord(id, label string) model.PayrollRecord {
	return model.PayrollRecord{
		EmployeeID:      id,
		Period:          label,
		WorkHours:       160,
		BaseSalary:      200000,
		GrossSalary:     200000,
		SocialInsurance: 30000,
		IncomeTax:       5000,
		NetSalary:       165000,
		BillingAmount:   320000,
	}
}

func validEmployee(id, company string) model.Employee {
	return model.Employee{
		EmployeeID:      id,
		Name:            "山田太郎",
		DispatchCompany: company,
		HourlyRate:      1500,
		BillingRate:     2000,
		EmploymentType:  model.EmploymentDispatch,
		Status:          model.StatusActive,
		HireDate:        "2024-04-01",
	}
}

func TestImport_Success(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewMemoryStore()
	im := New(repo, nil)

	report, err := im.Import(ctx, model.ImportBatch{
		Source:    "2025-03.json",
		Employees: []model.Employee{validEmployee("E1", "A社"), validEmployee("E2", "B社")},
		Records: []model.PayrollRecord{
			validRecord("E1", "2025年03月"),
			validRecord("E2", "2025年2月"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.ImportStatusSuccess, report.Status)
	assert.NotEmpty(t, report.BatchID)
	assert.Equal(t, 2, report.Employees)
	assert.Equal(t, 2, report.Records)
	assert.Equal(t, []string{"2025年3月", "2025年2月"}, report.Periods)
	assert.Empty(t, report.RowErrors)

	records, err := repo.ListPayrollRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025年3月", records[0].Period)

	batchID, err := repo.GetSetting(ctx, store.SettingLastImportBatch)
	require.NoError(t, err)
	assert.Equal(t, report.BatchID, batchID)

	logs, err := repo.ListImportLogs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ImportStatusSuccess, logs[0].Status)
	assert.Equal(t, "2025-03.json", logs[0].Source)
}

func TestImport_EmptyBatch(t *testing.T) {
	im := New(memstore.NewMemoryStore(), nil)

	report, err := im.Import(context.Background(), model.ImportBatch{})
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Nil(t, report)
}

func TestImport_RejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewMemoryStore()
	im := New(repo, nil)

	broken := validRecord("E2", "2025年3月")
	broken.NetSalary = 100000 // 総支給−控除と一致しない

	report, err := im.Import(ctx, model.ImportBatch{
		Employees: []model.Employee{validEmployee("E1", "A社")},
		Records:   []model.PayrollRecord{validRecord("E1", "2025年3月"), broken},
	})
	require.ErrorIs(t, err, ErrRejected)
	require.NotNil(t, report)

	assert.Equal(t, model.ImportStatusRejected, report.Status)
	require.Len(t, report.RowErrors, 1)
	assert.Equal(t, "record", report.RowErrors[0].Kind)
	assert.Equal(t, 1, report.RowErrors[0].Index)
	assert.Equal(t, "netSalary", report.RowErrors[0].Errors[0].Field)

	employees, records := repo.Count()
	assert.Zero(t, employees, "nothing should be written")
	assert.Zero(t, records, "nothing should be written")

	logs, _ := repo.ListImportLogs(ctx, 0)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ImportStatusRejected, logs[0].Status)
}

func TestImport_FieldValidation(t *testing.T) {
	im := New(memstore.NewMemoryStore(), nil)

	bad := validEmployee("", "A社")
	bad.EmploymentType = "freelance"
	bad.HourlyRate = -1

	report, err := im.Import(context.Background(), model.ImportBatch{
		Employees: []model.Employee{bad},
	})
	require.ErrorIs(t, err, ErrRejected)
	require.Len(t, report.RowErrors, 1)

	fields := make([]string, 0)
	for _, e := range report.RowErrors[0].Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"employeeId", "hourlyRate", "employmentType"}, fields)
}

func TestImport_DuplicateKeysInBatch(t *testing.T) {
	im := New(memstore.NewMemoryStore(), nil)

	report, err := im.Import(context.Background(), model.ImportBatch{
		Employees: []model.Employee{validEmployee("E1", "A社"), validEmployee("E1", "B社")},
		Records:   []model.PayrollRecord{validRecord("E1", "2025年3月"), validRecord("E1", "2025年03月")},
	})
	require.ErrorIs(t, err, ErrRejected)
	require.Len(t, report.RowErrors, 2)
	assert.Equal(t, "employee", report.RowErrors[0].Kind)
	assert.Equal(t, 1, report.RowErrors[0].Index)
	assert.Equal(t, "record", report.RowErrors[1].Kind)
	assert.Equal(t, "E1|2025年3月", report.RowErrors[1].Key)
}

func TestImport_WarningsDoNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewMemoryStore()
	im := New(repo, nil)

	underpriced := validEmployee("E1", "A社")
	underpriced.BillingRate = 1400

	report, err := im.Import(ctx, model.ImportBatch{
		Employees: []model.Employee{underpriced},
		Records:   []model.PayrollRecord{validRecord("E1", "3月分")},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ImportStatusSuccess, report.Status)
	require.Len(t, report.Warnings, 2)
	assert.Equal(t, "employee", report.Warnings[0].Kind)
	assert.Equal(t, "period", report.Warnings[1].Errors[0].Field)

	stats, _ := repo.ListAvailablePeriods(ctx)
	require.Len(t, stats, 1)
	assert.False(t, stats[0].Parsed)
}

func TestImport_CorrectionReplacesRecord(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewMemoryStore()
	im := New(repo, nil)

	_, err := im.Import(ctx, model.ImportBatch{
		Employees: []model.Employee{validEmployee("E1", "A社")},
		Records:   []model.PayrollRecord{validRecord("E1", "2025年3月")},
	})
	require.NoError(t, err)

	corrected := validRecord("E1", "2025年03月")
	corrected.BillingAmount = 350000
	_, err = im.Import(ctx, model.ImportBatch{Records: []model.PayrollRecord{corrected}})
	require.NoError(t, err)

	records, _ := repo.ListPayrollRecords(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, 350000.0, records[0].BillingAmount)

	logs, _ := repo.ListImportLogs(ctx, 0)
	assert.Len(t, logs, 2)
}
