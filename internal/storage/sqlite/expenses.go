package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talhafarman98/SplitEase/internal/models"
	"github.com/talhafarman98/SplitEase/internal/storage"
)

// AddExpense persists a new expense and its involved-member links.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, title, amount, payer_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Title, expense.Amount, expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range expense.InvolvedMemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_members (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes a single expense; involved-member links cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ClearExpenses removes every expense of a group.
func (s *SQLiteStore) ClearExpenses(ctx context.Context, groupID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE group_id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, title, amount, payer_id, created_at FROM expenses WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Title, &e.Amount, &e.PayerID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		memberRows, err := s.db.QueryContext(ctx,
			"SELECT member_id FROM expense_members WHERE expense_id = ? ORDER BY member_id",
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense members: %w", err)
		}

		for memberRows.Next() {
			var memberID string
			if err := memberRows.Scan(&memberID); err != nil {
				memberRows.Close()
				return nil, fmt.Errorf("failed to scan expense member: %w", err)
			}
			expenses[i].InvolvedMemberIDs = append(expenses[i].InvolvedMemberIDs, memberID)
		}
		if err := memberRows.Err(); err != nil {
			memberRows.Close()
			return nil, fmt.Errorf("failed to iterate expense members: %w", err)
		}
		memberRows.Close()
	}

	return expenses, nil
}
