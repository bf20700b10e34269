package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talhafarman98/SplitEase/internal/models"
	"github.com/talhafarman98/SplitEase/internal/storage"
)

// CreateGroup persists a new group and its initial members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.OwnerID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		member := &group.Members[i]
		if member.ID == "" {
			member.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO members (id, group_id, name, position) VALUES (?, ?, ?, ?)",
			member.ID, group.ID, member.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group with members in insertion order and expenses
// oldest first.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.OwnerID, &group.Name, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	expenses, err := s.listExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Expenses = expenses

	return group, nil
}

// ListGroups retrieves all groups owned by a user, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context, ownerID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, created_at FROM groups WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.OwnerID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		members, err := s.listMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}

	return groups, nil
}

// DeleteGroup removes a group; members and expenses cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}

// AddMember appends a member at the end of the group's member list.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID string, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	// Next position = current member count; positions are dense and
	// assigned in insertion order.
	var position int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE group_id = ?", groupID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO members (id, group_id, name, position) VALUES (?, ?, ?, ?)",
		member.ID, groupID, member.Name, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
