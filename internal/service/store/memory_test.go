package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"arari/internal/model"
	repo "arari/internal/store"
)

// TestNewMemoryStore 空のストア
func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if store == nil {
		t.Fatal("NewMemoryStore() returned nil")
	}
	if e, r := store.Count(); e != 0 || r != 0 {
		t.Errorf("New store should be empty, got %d employees / %d records", e, r)
	}
}

// TestUpsertEmployees 同じ社員番号は上書き、並びは最初の登録順
func TestUpsertEmployees(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.UpsertEmployees(ctx, []model.Employee{
		{EmployeeID: "E1", Name: "山田", DispatchCompany: "A社"},
		{EmployeeID: "E2", Name: "佐藤", DispatchCompany: "B社"},
	})
	_ = store.UpsertEmployees(ctx, []model.Employee{
		{EmployeeID: "E1", Name: "山田", DispatchCompany: "C社"},
	})

	employees, _ := store.ListEmployees(ctx)
	if len(employees) != 2 {
		t.Fatalf("employees = %d, want 2", len(employees))
	}
	if employees[0].EmployeeID != "E1" || employees[0].DispatchCompany != "C社" {
		t.Errorf("employees[0] = %+v", employees[0])
	}

	e, err := store.GetEmployee(ctx, "E2")
	if err != nil || e.Name != "佐藤" {
		t.Errorf("GetEmployee(E2) = %+v, %v", e, err)
	}
}

// TestGetEmployeeNotFound 存在しない社員
func TestGetEmployeeNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetEmployee(context.Background(), "missing")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestReplacePayrollRecords 訂正は差し替え
func TestReplacePayrollRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.ReplacePayrollRecords(ctx, []model.PayrollRecord{
		{EmployeeID: "E1", Period: "2025年1月", BillingAmount: 300000},
		{EmployeeID: "E1", Period: "2025年2月", BillingAmount: 310000},
	})
	_ = store.ReplacePayrollRecords(ctx, []model.PayrollRecord{
		{EmployeeID: "E1", Period: "2025年1月", BillingAmount: 320000},
	})

	records, _ := store.ListPayrollRecords(ctx)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Period != "2025年1月" || records[0].BillingAmount != 320000 {
		t.Errorf("records[0] = %+v", records[0])
	}
}

// TestIgnoredCompanies 対象外フラグの切替と返却値の独立性
func TestIgnoredCompanies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.SetCompanyIgnored(ctx, "A社", true)
	_ = store.SetCompanyIgnored(ctx, "B社", true)
	_ = store.SetCompanyIgnored(ctx, "B社", false)

	ignored, _ := store.IgnoredCompanies(ctx)
	if len(ignored) != 1 || !ignored["A社"] {
		t.Errorf("ignored = %v, want only A社", ignored)
	}

	ignored["C社"] = true
	again, _ := store.IgnoredCompanies(ctx)
	if again["C社"] {
		t.Error("returned map should be a copy")
	}
}

// TestListAvailablePeriods 新しい順、件数付き
func TestListAvailablePeriods(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.ReplacePayrollRecords(ctx, []model.PayrollRecord{
		{EmployeeID: "E1", Period: "2025年9月"},
		{EmployeeID: "E1", Period: "2025年10月"},
		{EmployeeID: "E2", Period: "2025年10月"},
	})

	stats, _ := store.ListAvailablePeriods(ctx)
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats[0].Period != "2025年10月" || stats[0].Records != 2 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
}

// TestImportLogs 新しい順
func TestImportLogs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _ = store.CreateImportLog(ctx, model.ImportLog{BatchID: "b1"})
	_, _ = store.CreateImportLog(ctx, model.ImportLog{BatchID: "b2"})

	logs, _ := store.ListImportLogs(ctx, 1)
	if len(logs) != 1 || logs[0].BatchID != "b2" {
		t.Errorf("logs = %+v", logs)
	}
}

// TestSettings 設定値
func TestSettings(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.GetSetting(ctx, "k"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	_ = store.SetSetting(ctx, "k", "v")
	if v, _ := store.GetSetting(ctx, "k"); v != "v" {
		t.Errorf("setting = %q, want v", v)
	}
}

// TestConcurrentAccess 並行アクセス
func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.ListPayrollRecords(ctx)
			_, _ = store.ListAvailablePeriods(ctx)
		}()
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = store.ReplacePayrollRecords(ctx, []model.PayrollRecord{
				{EmployeeID: fmt.Sprintf("E%d", idx), Period: "2025年1月"},
			})
		}(i)
	}

	wg.Wait()

	if _, r := store.Count(); r != 50 {
		t.Errorf("After concurrent access, records = %d, want 50", r)
	}
}

// TestClear 全消去
func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.UpsertEmployees(ctx, []model.Employee{{EmployeeID: "E1"}})
	_ = store.ReplacePayrollRecords(ctx, []model.PayrollRecord{{EmployeeID: "E1", Period: "2025年1月"}})
	store.Clear()

	if e, r := store.Count(); e != 0 || r != 0 {
		t.Errorf("After Clear, count = %d/%d, want 0/0", e, r)
	}
}
