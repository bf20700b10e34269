package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/talhafarman98/SplitEase/internal/ledger"
	"github.com/talhafarman98/SplitEase/internal/models"
	"github.com/talhafarman98/SplitEase/internal/storage"
)

// GroupService manages groups, members, and expenses, and answers balance
// and settlement queries. All operations are scoped to the owning user.
type GroupService struct {
	store    storage.Store
	validate *validator.Validate
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateGroupInput carries the fields for creating a group.
type CreateGroupInput struct {
	Name        string   `validate:"required"`
	MemberNames []string `validate:"required,min=1,dive,required"`
}

// ExpenseInput carries the fields for recording an expense.
type ExpenseInput struct {
	Title             string   `validate:"required"`
	Amount            float64  `validate:"required,gt=0"`
	PayerID           string   `validate:"required"`
	InvolvedMemberIDs []string `validate:"required,min=1,dive,required"`
}

// CreateGroup creates a group owned by ownerID with the given members.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID string, in CreateGroupInput) (*models.Group, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	group := &models.Group{
		OwnerID: ownerID,
		Name:    in.Name,
		Members: make([]models.Member, len(in.MemberNames)),
	}
	for i, name := range in.MemberNames {
		group.Members[i] = models.Member{Name: name}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return group, nil
}

// GetGroup retrieves a group owned by ownerID.
func (s *GroupService) GetGroup(ctx context.Context, ownerID, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != ownerID {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrForbidden)
	}
	return group, nil
}

// ListGroups retrieves all groups owned by ownerID.
func (s *GroupService) ListGroups(ctx context.Context, ownerID string) ([]*models.Group, error) {
	return s.store.ListGroups(ctx, ownerID)
}

// DeleteGroup removes a group and its entire history.
func (s *GroupService) DeleteGroup(ctx context.Context, ownerID, groupID string) error {
	if _, err := s.GetGroup(ctx, ownerID, groupID); err != nil {
		return err
	}
	return s.store.DeleteGroup(ctx, groupID)
}

// AddMember appends a new member to the group.
func (s *GroupService) AddMember(ctx context.Context, ownerID, groupID, name string) (*models.Member, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidMember)
	}
	if _, err := s.GetGroup(ctx, ownerID, groupID); err != nil {
		return nil, err
	}

	member := &models.Member{Name: name}
	if err := s.store.AddMember(ctx, groupID, member); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return member, nil
}

// AddExpense validates and records an expense. The amount must be positive,
// the involved set non-empty and free of duplicates, and the payer and every
// involved id must be current members of the group. The payer does not have
// to be involved.
func (s *GroupService) AddExpense(ctx context.Context, ownerID, groupID string, in ExpenseInput) (*models.Expense, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	group, err := s.GetGroup(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}

	if !group.HasMember(in.PayerID) {
		return nil, fmt.Errorf("%w: payer %q is not a group member", ErrInvalidExpense, in.PayerID)
	}
	seen := make(map[string]bool, len(in.InvolvedMemberIDs))
	for _, id := range in.InvolvedMemberIDs {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: involved member %q is not a group member", ErrInvalidExpense, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: involved member %q listed twice", ErrInvalidExpense, id)
		}
		seen[id] = true
	}

	expense := &models.Expense{
		GroupID:           groupID,
		Title:             in.Title,
		Amount:            in.Amount,
		PayerID:           in.PayerID,
		InvolvedMemberIDs: in.InvolvedMemberIDs,
	}
	if err := s.store.AddExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return expense, nil
}

// RemoveExpense deletes a single expense from the group.
func (s *GroupService) RemoveExpense(ctx context.Context, ownerID, groupID, expenseID string) error {
	if _, err := s.GetGroup(ctx, ownerID, groupID); err != nil {
		return err
	}
	return s.store.DeleteExpense(ctx, groupID, expenseID)
}

// Balances recomputes every member's net balance from the full expense
// history. Returns the group alongside so callers can resolve display names.
func (s *GroupService) Balances(ctx context.Context, ownerID, groupID string) (*models.Group, map[string]float64, error) {
	group, err := s.GetGroup(ctx, ownerID, groupID)
	if err != nil {
		return nil, nil, err
	}

	balances, err := ledger.ComputeBalances(group.Members, group.Expenses)
	if err != nil {
		// Insertion-time validation should make this unreachable; if the
		// store is corrupt we refuse to serve a non-zero-sum balance.
		slog.Error("Balance computation failed", "group_id", groupID, "error", err)
		return nil, nil, err
	}
	return group, balances, nil
}

// SettlementPlan derives the transfers that would settle the group.
// An empty plan means everyone is already settled.
func (s *GroupService) SettlementPlan(ctx context.Context, ownerID, groupID string) (*models.Group, []models.Transfer, error) {
	group, balances, err := s.Balances(ctx, ownerID, groupID)
	if err != nil {
		return nil, nil, err
	}
	return group, ledger.PlanSettlement(balances), nil
}

// Settle clears the group's expense history, resetting every balance to
// zero. It returns the plan that was outstanding at settle time so the
// caller can show it once; nothing about the settlement is persisted.
func (s *GroupService) Settle(ctx context.Context, ownerID, groupID string) ([]models.Transfer, error) {
	_, plan, err := s.SettlementPlan(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.store.ClearExpenses(ctx, groupID); err != nil {
		slog.Error("Settle failed", "group_id", groupID, "error", err)
		return nil, err
	}
	slog.Info("Group settled", "group_id", groupID, "transfers", len(plan))
	return plan, nil
}
