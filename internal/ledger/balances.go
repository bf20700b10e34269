// Package ledger implements the accounting core of SplitEase: folding a
// group's expense history into per-member net balances, and deriving a
// settlement plan that zeroes those balances with a small number of direct
// payments.
//
// Both operations are pure functions over in-memory snapshots. Balances are
// always recomputed from the full expense history; there is no incremental
// ledger state to invalidate.
package ledger

import (
	"errors"
	"fmt"

	"github.com/talhafarman98/SplitEase/internal/models"
)

// Epsilon is the absolute threshold below which a balance is treated as
// settled. Amounts are float64s, so repeated equal splits accumulate rounding
// drift; anything inside this band is rounding noise, not real debt.
const Epsilon = 0.01

// ErrUnknownMember is returned when an expense references a payer or involved
// member id that is not in the member list. Skipping such expenses silently
// would break the zero-sum invariant, so the calculator fails fast instead.
var ErrUnknownMember = errors.New("expense references unknown member")

// ComputeBalances folds the expenses into a net balance per member.
// Positive = the group owes this member, negative = this member owes the group.
//
// Each expense credits the payer with the full amount and debits every
// involved member with an equal share. The payer's own share is not
// special-cased: paying 30 split three ways including yourself nets +20 for
// the payer and -10 for each of the other two. The fold is commutative, so
// expense order does not matter.
//
// The result has one entry per member, zero when the member appears in no
// expense. For any consistent expense set the values sum to zero (up to
// floating-point drift), because every payer credit equals the sum of its
// split debits.
func ComputeBalances(members []models.Member, expenses []models.Expense) (map[string]float64, error) {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	for _, e := range expenses {
		if _, ok := balances[e.PayerID]; !ok {
			return nil, fmt.Errorf("%w: payer %q in expense %q", ErrUnknownMember, e.PayerID, e.ID)
		}
		if len(e.InvolvedMemberIDs) == 0 {
			return nil, fmt.Errorf("expense %q has no involved members", e.ID)
		}
		for _, id := range e.InvolvedMemberIDs {
			if _, ok := balances[id]; !ok {
				return nil, fmt.Errorf("%w: involved member %q in expense %q", ErrUnknownMember, id, e.ID)
			}
		}

		share := e.Amount / float64(len(e.InvolvedMemberIDs))
		balances[e.PayerID] += e.Amount
		for _, id := range e.InvolvedMemberIDs {
			balances[id] -= share
		}
	}

	return balances, nil
}
