package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maple-budget/maple/internal/model"
)

const budgetColumns = `id, user_id, name, province, life_situation, net_income, total_expenses, created_at, updated_at`

// ListBudgets returns the user's budgets with their items, most recently updated first.
func (s *Store) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY updated_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	var budgets []model.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		budgets = append(budgets, b)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	// items are loaded after the budget rows are closed; the pool has one connection
	for i := range budgets {
		items, err := s.budgetItems(ctx, budgets[i].ID)
		if err != nil {
			return nil, err
		}
		budgets[i].Items = items
	}
	return budgets, nil
}

// GetBudget returns one of the user's budgets with its items.
func (s *Store) GetBudget(ctx context.Context, userID, id string) (model.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBudget(row)
	if err != nil {
		return model.Budget{}, err
	}
	if b.Items, err = s.budgetItems(ctx, b.ID); err != nil {
		return model.Budget{}, err
	}
	return b, nil
}

// CreateBudget inserts a budget and its items in one transaction.
func (s *Store) CreateBudget(ctx context.Context, b model.Budget) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, b.Name, string(b.Province), string(b.LifeSituation),
			b.NetIncome, b.TotalExpenses, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting budget: %w", err)
		}
		return insertItems(ctx, tx, b)
	})
}

// UpdateBudget replaces a budget row and all of its items.
func (s *Store) UpdateBudget(ctx context.Context, b model.Budget) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE budgets SET name = ?, province = ?, life_situation = ?, net_income = ?,
				total_expenses = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			b.Name, string(b.Province), string(b.LifeSituation), b.NetIncome, b.TotalExpenses,
			formatTime(b.UpdatedAt), b.ID, b.UserID)
		if err != nil {
			return fmt.Errorf("updating budget: %w", err)
		}
		if err := expectOne(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM budget_items WHERE budget_id = ?`, b.ID); err != nil {
			return fmt.Errorf("clearing budget items: %w", err)
		}
		return insertItems(ctx, tx, b)
	})
}

// DeleteBudget removes a budget and its items.
func (s *Store) DeleteBudget(ctx context.Context, userID, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRowContext(ctx, `SELECT user_id FROM budgets WHERE id = ?`, id).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != userID) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("looking up budget: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM budget_items WHERE budget_id = ?`, id); err != nil {
			return fmt.Errorf("deleting budget items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting budget: %w", err)
		}
		return nil
	})
}

func (s *Store) budgetItems(ctx context.Context, budgetID string) ([]model.BudgetItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, type, category, subcategory, name, amount, frequency, monthly_amount, owner
		FROM budget_items WHERE budget_id = ? ORDER BY position`, budgetID)
	if err != nil {
		return nil, fmt.Errorf("listing budget items: %w", err)
	}
	defer rows.Close()

	var items []model.BudgetItem
	for rows.Next() {
		var it model.BudgetItem
		var typ, freq string
		if err := rows.Scan(&it.ID, &it.BudgetID, &typ, &it.Category, &it.Subcategory, &it.Name,
			&it.Amount, &freq, &it.MonthlyAmount, &it.Owner); err != nil {
			return nil, fmt.Errorf("scanning budget item: %w", err)
		}
		it.Type = model.ItemType(typ)
		it.Frequency = model.Frequency(freq)
		items = append(items, it)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx *sql.Tx, b model.Budget) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO budget_items (id, budget_id, position, type, category, subcategory, name,
			amount, frequency, monthly_amount, owner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range b.Items {
		if _, err := stmt.ExecContext(ctx, it.ID, b.ID, i, string(it.Type), it.Category, it.Subcategory,
			it.Name, it.Amount, string(it.Frequency), it.MonthlyAmount, it.Owner); err != nil {
			return fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
	}
	return nil
}

func scanBudget(row scanner) (model.Budget, error) {
	var b model.Budget
	var province, life, created, updated string
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &province, &life, &b.NetIncome, &b.TotalExpenses, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Budget{}, ErrNotFound
	}
	if err != nil {
		return model.Budget{}, fmt.Errorf("scanning budget: %w", err)
	}
	b.Province = model.Province(province)
	b.LifeSituation = model.LifeSituation(life)
	if b.CreatedAt, err = parseTime(created); err != nil {
		return model.Budget{}, err
	}
	if b.UpdatedAt, err = parseTime(updated); err != nil {
		return model.Budget{}, err
	}
	return b, nil
}

// inTx runs fn in a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
