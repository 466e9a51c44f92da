package store

import (
	"context"
	"encoding/json"
	"fmt"

	"arari/internal/model"
)

// CreateImportLog 取込履歴を1件追加し ID を返す
func (s *Store) CreateImportLog(ctx context.Context, log model.ImportLog) (int64, error) {
	periods, err := json.Marshal(log.Periods)
	if err != nil {
		return 0, fmt.Errorf("failed to encode periods: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs (batch_id, source, employees, records, periods, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.BatchID, log.Source, log.Employees, log.Records, string(periods), log.Status, log.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// ListImportLogs 新しい順の取込履歴。limit<=0 なら全件
func (s *Store) ListImportLogs(ctx context.Context, limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, source, employees, records, periods, status, error_message, created_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query import logs failed: %w", err)
	}
	defer rows.Close()

	out := make([]model.ImportLog, 0)
	for rows.Next() {
		var (
			l       model.ImportLog
			periods string
		)
		if err := rows.Scan(&l.ID, &l.BatchID, &l.Source, &l.Employees, &l.Records, &periods, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import log failed: %w", err)
		}
		if periods != "" {
			if err := json.Unmarshal([]byte(periods), &l.Periods); err != nil {
				return nil, fmt.Errorf("decode periods of import log %d: %w", l.ID, err)
			}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
