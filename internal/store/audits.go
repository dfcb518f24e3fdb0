package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maple-budget/maple/internal/model"
)

const auditColumns = `id, user_id, snapshot_json, recommendations_json, score, severity, follow_up_date, completed, created_at`

// CreateAudit inserts a coach audit.
func (s *Store) CreateAudit(ctx context.Context, a model.Audit) error {
	recs, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("encoding recommendations: %w", err)
	}
	snapshot := string(a.Snapshot)
	if snapshot == "" {
		snapshot = "{}"
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audits (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, snapshot, string(recs), a.Score, string(a.Severity),
		formatTime(a.FollowUpDate), a.Completed, formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating audit: %w", err)
	}
	return nil
}

// ListAudits returns the user's audits, newest first.
func (s *Store) ListAudits(ctx context.Context, userID string) ([]model.Audit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audits WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing audits: %w", err)
	}
	defer rows.Close()

	var out []model.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CompleteAudit marks an audit's follow-up as done.
func (s *Store) CompleteAudit(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE audits SET completed = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("completing audit: %w", err)
	}
	return expectOne(res)
}

func scanAudit(row scanner) (model.Audit, error) {
	var a model.Audit
	var snapshot, recs, severity, followUp, created string
	err := row.Scan(&a.ID, &a.UserID, &snapshot, &recs, &a.Score, &severity, &followUp, &a.Completed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Audit{}, ErrNotFound
	}
	if err != nil {
		return model.Audit{}, fmt.Errorf("scanning audit: %w", err)
	}
	a.Snapshot = json.RawMessage(snapshot)
	a.Severity = model.Severity(severity)
	if err := json.Unmarshal([]byte(recs), &a.Recommendations); err != nil {
		return model.Audit{}, fmt.Errorf("decoding audit %s recommendations: %w", a.ID, err)
	}
	if a.FollowUpDate, err = parseTime(followUp); err != nil {
		return model.Audit{}, err
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return model.Audit{}, err
	}
	return a, nil
}
