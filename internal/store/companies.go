package store

import (
	"context"
	"fmt"
)

// IgnoredCompanies 集計対象外の派遣先
func (s *Store) IgnoredCompanies(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM ignored_companies`)
	if err != nil {
		return nil, fmt.Errorf("query ignored companies failed: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan ignored company failed: %w", err)
		}
		out[name] = true
	}
	return out, rows.Err()
}

// SetCompanyIgnored 派遣先を集計対象外にする／戻す
func (s *Store) SetCompanyIgnored(ctx context.Context, name string, ignored bool) error {
	var err error
	if ignored {
		_, err = s.db.ExecContext(ctx, `INSERT OR IGNORE INTO ignored_companies (name) VALUES (?)`, name)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM ignored_companies WHERE name = ?`, name)
	}
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", name, err)
	}
	return nil
}
