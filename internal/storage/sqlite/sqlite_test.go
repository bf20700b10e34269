package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/talhafarman98/SplitEase/internal/models"
	"github.com/talhafarman98/SplitEase/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitease-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *SQLiteStore) *models.User {
	t.Helper()
	user := models.NewUser("owner@example.com", "Owner", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and fetch by email and id", func(t *testing.T) {
		user := models.NewUser("alice@example.com", "Alice", "bcrypt-hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Errorf("ID mismatch: got %s, want %s", byEmail.ID, user.ID)
		}
		if byEmail.PasswordHash != "bcrypt-hash" {
			t.Errorf("PasswordHash mismatch: got %s", byEmail.PasswordHash)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != "alice@example.com" {
			t.Errorf("Email mismatch: got %s", byID.Email)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		first := models.NewUser("dup@example.com", "First", "h1")
		if err := store.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		second := models.NewUser("dup@example.com", "Second", "h2")
		if err := store.CreateUser(ctx, second); err == nil {
			t.Error("expected error for duplicate email, got nil")
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Groups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store)

	t.Run("CreateGroup generates ids and preserves member order", func(t *testing.T) {
		group := &models.Group{
			OwnerID: owner.ID,
			Name:    "Roommates",
			Members: []models.Member{{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"}},
		}

		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
		for i, m := range group.Members {
			if m.ID == "" {
				t.Errorf("member %d: expected ID to be generated", i)
			}
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		wantOrder := []string{"Alice", "Bob", "Carol"}
		if len(retrieved.Members) != len(wantOrder) {
			t.Fatalf("members count: got %d, want %d", len(retrieved.Members), len(wantOrder))
		}
		for i, name := range wantOrder {
			if retrieved.Members[i].Name != name {
				t.Errorf("member %d: got %s, want %s", i, retrieved.Members[i].Name, name)
			}
		}
	})

	t.Run("AddMember appends at the end", func(t *testing.T) {
		group := &models.Group{
			OwnerID: owner.ID,
			Name:    "Trip",
			Members: []models.Member{{Name: "Dave"}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		newMember := &models.Member{Name: "Erin"}
		if err := store.AddMember(ctx, group.ID, newMember); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if newMember.ID == "" {
			t.Error("expected member ID to be generated")
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Members) != 2 || retrieved.Members[1].Name != "Erin" {
			t.Errorf("expected Erin appended last, got %+v", retrieved.Members)
		}
	})

	t.Run("ListGroups returns owner's groups with members", func(t *testing.T) {
		groups, err := store.ListGroups(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		for _, g := range groups {
			if len(g.Members) == 0 {
				t.Errorf("group %s: expected members to be loaded", g.Name)
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound for missing group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteGroup cascades", func(t *testing.T) {
		group := &models.Group{
			OwnerID: owner.ID,
			Name:    "Doomed",
			Members: []models.Member{{Name: "Gus"}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store)

	group := &models.Group{
		OwnerID: owner.ID,
		Name:    "Dinner Club",
		Members: []models.Member{{Name: "Alice"}, {Name: "Bob"}},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	alice, bob := group.Members[0], group.Members[1]

	t.Run("AddExpense round trip", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:           group.ID,
			Title:             "Pizza",
			Amount:            24.60,
			PayerID:           alice.ID,
			InvolvedMemberIDs: []string{alice.ID, bob.ID},
		}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}

		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(retrieved.Expenses))
		}
		got := retrieved.Expenses[0]
		if got.Title != "Pizza" || got.Amount != 24.60 || got.PayerID != alice.ID {
			t.Errorf("expense mismatch: %+v", got)
		}
		if len(got.InvolvedMemberIDs) != 2 {
			t.Errorf("expected 2 involved members, got %d", len(got.InvolvedMemberIDs))
		}
	})

	t.Run("DeleteExpense removes a single expense", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:           group.ID,
			Title:             "Taxi",
			Amount:            12,
			PayerID:           bob.ID,
			InvolvedMemberIDs: []string{alice.ID, bob.ID},
		}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, group.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, group.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})

	t.Run("ClearExpenses empties the history", func(t *testing.T) {
		if err := store.ClearExpenses(ctx, group.ID); err != nil {
			t.Fatalf("ClearExpenses failed: %v", err)
		}
		retrieved, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(retrieved.Expenses) != 0 {
			t.Errorf("expected no expenses after clear, got %d", len(retrieved.Expenses))
		}
	})
}
