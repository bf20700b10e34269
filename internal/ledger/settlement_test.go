package ledger

import (
	"math"
	"testing"

	"github.com/talhafarman98/SplitEase/internal/models"
)

// applyPlan executes every transfer against a copy of the balances and
// returns the residuals.
func applyPlan(balances map[string]float64, plan []models.Transfer) map[string]float64 {
	out := make(map[string]float64, len(balances))
	for id, b := range balances {
		out[id] = b
	}
	for _, tr := range plan {
		out[tr.FromMemberID] += tr.Amount
		out[tr.ToMemberID] -= tr.Amount
	}
	return out
}

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name         string
		balances     map[string]float64
		wantLen      int
		wantTransfer map[string]float64 // "from->to" -> amount, checked when set
	}{
		{
			name:     "single creditor two debtors",
			balances: map[string]float64{"alice": 20, "bob": -10, "carol": -10},
			wantLen:  2,
			wantTransfer: map[string]float64{
				"bob->alice":   10,
				"carol->alice": 10,
			},
		},
		{
			name:         "pairwise debt",
			balances:     map[string]float64{"a": 25, "b": -25},
			wantLen:      1,
			wantTransfer: map[string]float64{"b->a": 25},
		},
		{
			name:     "one debtor pays off both creditors",
			balances: map[string]float64{"a": 10, "b": 10, "c": -20},
			wantLen:  2,
			wantTransfer: map[string]float64{
				"c->a": 10,
				"c->b": 10,
			},
		},
		{
			name:     "all settled yields empty plan",
			balances: map[string]float64{"a": 0, "b": 0.004, "c": -0.004},
			wantLen:  0,
		},
		{
			name:     "empty balances yield empty plan",
			balances: map[string]float64{},
			wantLen:  0,
		},
		{
			name:     "rounding dust is ignored",
			balances: map[string]float64{"a": 10.000000001, "b": -10.000000002, "c": 1e-9},
			wantLen:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanSettlement(tt.balances)
			if len(plan) != tt.wantLen {
				t.Fatalf("PlanSettlement() returned %d transfers, want %d: %+v", len(plan), tt.wantLen, plan)
			}

			got := make(map[string]float64, len(plan))
			for _, tr := range plan {
				if tr.Amount <= 0 {
					t.Errorf("transfer %s->%s has non-positive amount %v", tr.FromMemberID, tr.ToMemberID, tr.Amount)
				}
				got[tr.FromMemberID+"->"+tr.ToMemberID] += tr.Amount
			}
			for key, want := range tt.wantTransfer {
				if math.Abs(got[key]-want) > 0.01 {
					t.Errorf("transfer %s = %v, want %v", key, got[key], want)
				}
			}

			// Executing the plan must settle everyone.
			for id, residual := range applyPlan(tt.balances, plan) {
				if math.Abs(residual) > Epsilon {
					t.Errorf("residual balance[%s] = %v after applying plan", id, residual)
				}
			}
		})
	}
}

func TestPlanSettlement_Deterministic(t *testing.T) {
	balances := map[string]float64{"a": 15, "b": 15, "c": -10, "d": -10, "e": -10}

	first := PlanSettlement(balances)
	for trial := 0; trial < 5; trial++ {
		plan := PlanSettlement(balances)
		if len(plan) != len(first) {
			t.Fatalf("plan length changed between runs: %d vs %d", len(plan), len(first))
		}
		for i := range plan {
			if plan[i] != first[i] {
				t.Fatalf("plan[%d] changed between runs: %+v vs %+v", i, plan[i], first[i])
			}
		}
	}
}

func TestPlanSettlement_FromComputedBalances(t *testing.T) {
	ms := members("a", "b", "c", "d")
	expenses := []models.Expense{
		{ID: "e1", Amount: 100, PayerID: "a", InvolvedMemberIDs: []string{"a", "b", "c", "d"}},
		{ID: "e2", Amount: 60, PayerID: "b", InvolvedMemberIDs: []string{"b", "c"}},
		{ID: "e3", Amount: 7.35, PayerID: "c", InvolvedMemberIDs: []string{"a", "d"}},
	}

	balances, err := ComputeBalances(ms, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}

	plan := PlanSettlement(balances)
	for id, residual := range applyPlan(balances, plan) {
		if math.Abs(residual) > Epsilon {
			t.Errorf("residual balance[%s] = %v after applying plan", id, residual)
		}
	}

	// A plan never needs more transfers than participants minus one.
	if len(plan) >= len(ms) {
		t.Errorf("plan has %d transfers for %d members", len(plan), len(ms))
	}
}
