// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/talhafarman98/SplitEase/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for SplitEase storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user account. Fails if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group together with its initial members.
	// Missing ids and timestamps are generated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members (in insertion order) and
	// expenses (oldest first).
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups owned by the given user, newest first.
	// Members are included; expenses are not.
	ListGroups(ctx context.Context, ownerID string) ([]*models.Group, error)

	// DeleteGroup removes a group and everything it owns.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember appends a member to a group, preserving insertion order.
	// The member.ID field is populated by the store.
	AddMember(ctx context.Context, groupID string, member *models.Member) error

	// AddExpense appends an expense to its group.
	// The expense.ID field is populated by the store.
	AddExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes a single expense from a group.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// ClearExpenses removes every expense of a group. This backs the settle
	// operation: once the history is gone, all derived balances are zero.
	ClearExpenses(ctx context.Context, groupID string) error

	// Close releases any resources held by the store.
	Close() error
}
