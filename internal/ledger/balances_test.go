package ledger

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/talhafarman98/SplitEase/internal/models"
)

func members(names ...string) []models.Member {
	ms := make([]models.Member, len(names))
	for i, n := range names {
		ms[i] = models.Member{ID: n, Name: n}
	}
	return ms
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		members  []models.Member
		expenses []models.Expense
		want     map[string]float64
		wantErr  error
	}{
		{
			name:    "no expenses yields zero entry per member",
			members: members("alice", "bob"),
			want:    map[string]float64{"alice": 0, "bob": 0},
		},
		{
			name:    "dinner split three ways including payer",
			members: members("alice", "bob", "carol"),
			expenses: []models.Expense{
				{ID: "e1", Title: "Dinner", Amount: 30, PayerID: "alice", InvolvedMemberIDs: []string{"alice", "bob", "carol"}},
			},
			want: map[string]float64{"alice": 20, "bob": -10, "carol": -10},
		},
		{
			name:    "two person even split",
			members: members("a", "b"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 50, PayerID: "a", InvolvedMemberIDs: []string{"a", "b"}},
			},
			want: map[string]float64{"a": 25, "b": -25},
		},
		{
			name:    "two expenses accumulate",
			members: members("a", "b", "c"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 30, PayerID: "a", InvolvedMemberIDs: []string{"a", "b", "c"}},
				{ID: "e2", Amount: 30, PayerID: "b", InvolvedMemberIDs: []string{"a", "b", "c"}},
			},
			want: map[string]float64{"a": 10, "b": 10, "c": -20},
		},
		{
			name:    "payer not involved keeps full credit",
			members: members("a", "b", "c"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 30, PayerID: "a", InvolvedMemberIDs: []string{"b", "c"}},
			},
			want: map[string]float64{"a": 30, "b": -15, "c": -15},
		},
		{
			name:    "unknown payer fails fast",
			members: members("a", "b"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 10, PayerID: "ghost", InvolvedMemberIDs: []string{"a", "b"}},
			},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "unknown involved member fails fast",
			members: members("a", "b"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 10, PayerID: "a", InvolvedMemberIDs: []string{"a", "ghost"}},
			},
			wantErr: ErrUnknownMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances(tt.members, tt.expenses)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				if math.Abs(got[id]-want) > 0.01 {
					t.Errorf("balance[%s] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	ms := members("a", "b", "c", "d", "e")
	expenses := []models.Expense{
		{ID: "e1", Amount: 99.99, PayerID: "a", InvolvedMemberIDs: []string{"a", "b", "c"}},
		{ID: "e2", Amount: 42.50, PayerID: "b", InvolvedMemberIDs: []string{"b", "d"}},
		{ID: "e3", Amount: 7.77, PayerID: "c", InvolvedMemberIDs: []string{"a", "b", "c", "d", "e"}},
		{ID: "e4", Amount: 120, PayerID: "d", InvolvedMemberIDs: []string{"e"}},
	}

	balances, err := ComputeBalances(ms, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}

	var sum float64
	for _, b := range balances {
		sum += b
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("balances sum to %v, want ~0", sum)
	}
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	ms := members("a", "b", "c", "d")
	expenses := []models.Expense{
		{ID: "e1", Amount: 33.33, PayerID: "a", InvolvedMemberIDs: []string{"a", "b", "c"}},
		{ID: "e2", Amount: 18, PayerID: "b", InvolvedMemberIDs: []string{"c", "d"}},
		{ID: "e3", Amount: 61.20, PayerID: "c", InvolvedMemberIDs: []string{"a", "d"}},
		{ID: "e4", Amount: 5, PayerID: "d", InvolvedMemberIDs: []string{"a", "b", "c", "d"}},
	}

	want, err := ComputeBalances(ms, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]models.Expense, len(expenses))
		copy(shuffled, expenses)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := ComputeBalances(ms, shuffled)
		if err != nil {
			t.Fatalf("ComputeBalances() error = %v", err)
		}
		for id := range want {
			if math.Abs(got[id]-want[id]) > 1e-6 {
				t.Errorf("trial %d: balance[%s] = %v, want %v", trial, id, got[id], want[id])
			}
		}
	}
}
