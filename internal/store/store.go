package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"arari/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound 該当データなし
var ErrNotFound = errors.New("not found")

// Repository 集計に必要な読み書き。SQLite 版とメモリ版が実装する
type Repository interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id string) (*model.Employee, error)
	ListPayrollRecords(ctx context.Context) ([]model.PayrollRecord, error)
	IgnoredCompanies(ctx context.Context) (map[string]bool, error)
	ListAvailablePeriods(ctx context.Context) ([]model.PeriodStat, error)

	UpsertEmployees(ctx context.Context, employees []model.Employee) error
	ReplacePayrollRecords(ctx context.Context, records []model.PayrollRecord) error
	SetCompanyIgnored(ctx context.Context, name string, ignored bool) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	CreateImportLog(ctx context.Context, log model.ImportLog) (int64, error)
	ListImportLogs(ctx context.Context, limit int) ([]model.ImportLog, error)

	Close() error
}

var _ Repository = (*Store)(nil)

// Store SQLite ストア
type Store struct {
	db *sql.DB
}

// New SQLite ファイルを開きスキーマを適用する
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite は単一接続
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close 接続を閉じる
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB 生の接続（トランザクション等）
func (s *Store) DB() *sql.DB {
	return s.db
}
