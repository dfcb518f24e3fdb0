package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maple-budget/maple/internal/model"
)

// ListAssets returns the user's assets, newest first.
func (s *Store) ListAssets(ctx context.Context, userID string) ([]model.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, name, value, description, created_at, updated_at
		FROM assets WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// GetAsset returns one of the user's assets.
func (s *Store) GetAsset(ctx context.Context, userID, id string) (model.Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, name, value, description, created_at, updated_at
		FROM assets WHERE id = ? AND user_id = ?`, id, userID)
	return scanAsset(row)
}

// CreateAsset inserts a.
func (s *Store) CreateAsset(ctx context.Context, a model.Asset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (id, user_id, type, name, value, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, string(a.Type), a.Name, a.Value, a.Description,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites the mutable fields of a.
func (s *Store) UpdateAsset(ctx context.Context, a model.Asset) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE assets SET type = ?, name = ?, value = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(a.Type), a.Name, a.Value, a.Description, formatTime(a.UpdatedAt), a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}
	return expectOne(res)
}

// DeleteAsset removes one of the user's assets.
func (s *Store) DeleteAsset(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return expectOne(res)
}

func scanAsset(row scanner) (model.Asset, error) {
	var a model.Asset
	var typ, created, updated string
	err := row.Scan(&a.ID, &a.UserID, &typ, &a.Name, &a.Value, &a.Description, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, ErrNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("scanning asset: %w", err)
	}
	a.Type = model.AssetType(typ)
	if a.CreatedAt, err = parseTime(created); err != nil {
		return model.Asset{}, err
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

const liabilityColumns = `id, user_id, type, name, balance, interest_rate, minimum_payment, credit_limit,
	amortization_years, renewal_date, maturity_date, description, details_json, created_at, updated_at`

// ListLiabilities returns the user's liabilities, newest first.
func (s *Store) ListLiabilities(ctx context.Context, userID string) ([]model.Liability, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+liabilityColumns+` FROM liabilities WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing liabilities: %w", err)
	}
	defer rows.Close()

	var out []model.Liability
	for rows.Next() {
		l, err := scanLiability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetLiability returns one of the user's liabilities.
func (s *Store) GetLiability(ctx context.Context, userID, id string) (model.Liability, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+liabilityColumns+` FROM liabilities WHERE id = ? AND user_id = ?`, id, userID)
	return scanLiability(row)
}

// CreateLiability inserts l. Details are stored as JSON.
func (s *Store) CreateLiability(ctx context.Context, l model.Liability) error {
	details, err := json.Marshal(l.Details)
	if err != nil {
		return fmt.Errorf("encoding liability details: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO liabilities (`+liabilityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, string(l.Type), l.Name, l.Balance, l.InterestRate, l.MinimumPayment, l.CreditLimit,
		l.AmortizationYears, formatOptionalTime(l.RenewalDate), formatOptionalTime(l.MaturityDate),
		l.Description, string(details), formatTime(l.CreatedAt), formatTime(l.UpdatedAt))
	if err != nil {
		return fmt.Errorf("creating liability: %w", err)
	}
	return nil
}

// UpdateLiability overwrites the mutable fields of l.
func (s *Store) UpdateLiability(ctx context.Context, l model.Liability) error {
	details, err := json.Marshal(l.Details)
	if err != nil {
		return fmt.Errorf("encoding liability details: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE liabilities SET type = ?, name = ?, balance = ?, interest_rate = ?, minimum_payment = ?,
			credit_limit = ?, amortization_years = ?, renewal_date = ?, maturity_date = ?,
			description = ?, details_json = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(l.Type), l.Name, l.Balance, l.InterestRate, l.MinimumPayment, l.CreditLimit,
		l.AmortizationYears, formatOptionalTime(l.RenewalDate), formatOptionalTime(l.MaturityDate),
		l.Description, string(details), formatTime(l.UpdatedAt), l.ID, l.UserID)
	if err != nil {
		return fmt.Errorf("updating liability: %w", err)
	}
	return expectOne(res)
}

// DeleteLiability removes one of the user's liabilities.
func (s *Store) DeleteLiability(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM liabilities WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting liability: %w", err)
	}
	return expectOne(res)
}

func scanLiability(row scanner) (model.Liability, error) {
	var l model.Liability
	var typ, details, created, updated string
	var renewal, maturity sql.NullString
	err := row.Scan(&l.ID, &l.UserID, &typ, &l.Name, &l.Balance, &l.InterestRate, &l.MinimumPayment,
		&l.CreditLimit, &l.AmortizationYears, &renewal, &maturity, &l.Description, &details, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Liability{}, ErrNotFound
	}
	if err != nil {
		return model.Liability{}, fmt.Errorf("scanning liability: %w", err)
	}
	l.Type = model.LiabilityType(typ)
	if err := json.Unmarshal([]byte(details), &l.Details); err != nil {
		return model.Liability{}, fmt.Errorf("decoding liability %s details: %w", l.ID, err)
	}
	if l.RenewalDate, err = parseOptionalTime(renewal); err != nil {
		return model.Liability{}, err
	}
	if l.MaturityDate, err = parseOptionalTime(maturity); err != nil {
		return model.Liability{}, err
	}
	if l.CreatedAt, err = parseTime(created); err != nil {
		return model.Liability{}, err
	}
	if l.UpdatedAt, err = parseTime(updated); err != nil {
		return model.Liability{}, err
	}
	return l, nil
}
