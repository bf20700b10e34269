package ledger

import (
	"math"
	"sort"

	"github.com/talhafarman98/SplitEase/internal/models"
)

// party is one side of the matching: a member id and the positive amount
// still owed (debtor) or still due (creditor).
type party struct {
	id  string
	amt float64
}

// PlanSettlement derives the point-to-point payments that bring every balance
// to zero. It uses greedy largest-first matching: debtors and creditors are
// each sorted by remaining amount, and the head of each list is matched with
// min(debt, credit) until one side is exhausted.
//
// The greedy heuristic does not guarantee the theoretical minimum number of
// transfers for every input, but it is simple, deterministic (member id
// breaks amount ties), and at most debtors+creditors-1 transfers long.
//
// Members whose balance is within Epsilon of zero are already settled and
// never appear in the plan. If either side is empty the plan is empty.
// Transfers reference member ids only; name and currency formatting is the
// caller's concern.
func PlanSettlement(balances map[string]float64) []models.Transfer {
	var debtors, creditors []party
	for id, b := range balances {
		switch {
		case b < -Epsilon:
			debtors = append(debtors, party{id: id, amt: -b})
		case b > Epsilon:
			creditors = append(creditors, party{id: id, amt: b})
		}
	}
	if len(debtors) == 0 || len(creditors) == 0 {
		return nil
	}

	byAmountDesc := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool {
			if parties[i].amt != parties[j].amt {
				return parties[i].amt > parties[j].amt
			}
			return parties[i].id < parties[j].id
		}
	}
	sort.Slice(debtors, byAmountDesc(debtors))
	sort.Slice(creditors, byAmountDesc(creditors))

	var plan []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].amt, creditors[j].amt)

		// Residuals below Epsilon are rounding dust, never a payment.
		if amount > Epsilon {
			plan = append(plan, models.Transfer{
				FromMemberID: debtors[i].id,
				ToMemberID:   creditors[j].id,
				Amount:       amount,
			})
		}

		debtors[i].amt -= amount
		creditors[j].amt -= amount

		// Whoever is fully settled moves on; an exact tie advances both.
		if debtors[i].amt <= Epsilon {
			i++
		}
		if creditors[j].amt <= Epsilon {
			j++
		}
	}

	return plan
}
