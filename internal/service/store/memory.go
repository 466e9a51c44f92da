package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"arari/internal/model"
	repo "arari/internal/store"
)

var _ repo.Repository = (*MemoryStore)(nil)

// MemoryStore メモリ上のストア（開発・テスト用、data.driver = "memory"）
type MemoryStore struct {
	employees     map[string]model.Employee
	employeeOrder []string
	records       map[string]model.PayrollRecord
	recordOrder   []string
	ignored       map[string]bool
	settings      map[string]string
	importLogs    []model.ImportLog
	mu            sync.RWMutex
}

// NewMemoryStore 空のストアを作成
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: make(map[string]model.Employee),
		records:   make(map[string]model.PayrollRecord),
		ignored:   make(map[string]bool),
		settings:  make(map[string]string),
	}
}

// ListEmployees 登録順の社員一覧
func (s *MemoryStore) ListEmployees(_ context.Context) ([]model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		out = append(out, s.employees[id])
	}
	return out, nil
}

// GetEmployee 社員番号で1件取得
func (s *MemoryStore) GetEmployee(_ context.Context, id string) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, repo.ErrNotFound)
	}
	return &e, nil
}

// UpsertEmployees 社員番号をキーに登録・更新
func (s *MemoryStore) UpsertEmployees(_ context.Context, employees []model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range employees {
		if _, ok := s.employees[e.EmployeeID]; !ok {
			s.employeeOrder = append(s.employeeOrder, e.EmployeeID)
		}
		s.employees[e.EmployeeID] = e
	}
	return nil
}

// ListPayrollRecords 全明細（登録順）
func (s *MemoryStore) ListPayrollRecords(_ context.Context) ([]model.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PayrollRecord, 0, len(s.recordOrder))
	for _, key := range s.recordOrder {
		out = append(out, s.records[key])
	}
	return out, nil
}

// ReplacePayrollRecords (社員番号, 期間) が同じ明細は差し替え、位置は最初の登録順のまま
func (s *MemoryStore) ReplacePayrollRecords(_ context.Context, records []model.PayrollRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		key := r.Key()
		if _, ok := s.records[key]; !ok {
			s.recordOrder = append(s.recordOrder, key)
		}
		s.records[key] = r
	}
	return nil
}

// IgnoredCompanies 集計対象外の派遣先（コピー）
func (s *MemoryStore) IgnoredCompanies(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.ignored))
	for name := range s.ignored {
		out[name] = true
	}
	return out, nil
}

// SetCompanyIgnored 派遣先を集計対象外にする／戻す
func (s *MemoryStore) SetCompanyIgnored(_ context.Context, name string, ignored bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ignored {
		s.ignored[name] = true
	} else {
		delete(s.ignored, name)
	}
	return nil
}

// ListAvailablePeriods データがある期間（新しい順）
func (s *MemoryStore) ListAvailablePeriods(_ context.Context) ([]model.PeriodStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	labels := make([]string, 0)
	for _, key := range s.recordOrder {
		label := s.records[key].Period
		labels = append(labels, label)
		counts[label]++
	}
	return repo.PeriodStats(labels, counts), nil
}

// GetSetting 設定値を取得
func (s *MemoryStore) GetSetting(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	if !ok {
		return "", fmt.Errorf("config key %s: %w", key, repo.ErrNotFound)
	}
	return v, nil
}

// SetSetting 設定値を保存
func (s *MemoryStore) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// CreateImportLog 取込履歴を追加
func (s *MemoryStore) CreateImportLog(_ context.Context, log model.ImportLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = int64(len(s.importLogs) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	s.importLogs = append(s.importLogs, log)
	return log.ID, nil
}

// ListImportLogs 新しい順の取込履歴
func (s *MemoryStore) ListImportLogs(_ context.Context, limit int) ([]model.ImportLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]model.ImportLog(nil), s.importLogs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count 社員数と明細数
func (s *MemoryStore) Count() (employees, records int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees), len(s.records)
}

// Clear 全データを消去
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = make(map[string]model.Employee)
	s.employeeOrder = nil
	s.records = make(map[string]model.PayrollRecord)
	s.recordOrder = nil
	s.ignored = make(map[string]bool)
}

// Close 何もしない
func (s *MemoryStore) Close() error {
	return nil
}
