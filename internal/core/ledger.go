package core

import (
	"fmt"
	"sort"
	"strings"
)

// LedgerFilter narrows the rows returned for display and the category sums.
// It never affects the opening balance or the in-window totals, which are
// always computed over the unfiltered set.
type LedgerFilter struct {
	Description string // case-insensitive substring match
	Category    string // exact match
	Kind        Kind   // empty matches both kinds
}

func (f LedgerFilter) matches(t Transaction) bool {
	if f.Description != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	return true
}

// LedgerRow is a transaction together with the balance immediately after it,
// in chronological terms, regardless of where the row sits in display order.
type LedgerRow struct {
	Transaction
	Balance Money
}

// LedgerView is a cycle-scoped view over one snapshot's transactions.
//
// Rows are ordered newest-first for display. OpeningBalance, the totals and
// CycleBalance are computed over the unfiltered transaction set, so
// OpeningBalance + Net always equals the net of all transactions up to the
// window's end.
type LedgerView struct {
	Window            CycleWindow
	OpeningBalance    Money
	TotalIncome       Money
	TotalExpense      Money
	Net               Money
	CycleBalance      Money
	Rows              []LedgerRow
	IncomeByCategory  map[string]Money
	ExpenseByCategory map[string]Money
}

// AggregateLedger turns the snapshot's flat, unordered transaction set into
// the cycle view for the given window.
//
// The computation is a pure function over the snapshot: partition into prior
// and in-window, carry the net of the entire unfiltered prior set forward as
// the opening balance, walk the in-window set in chronological order to
// assign each transaction its running balance, then map those balances back
// onto the filtered, newest-first display rows. Transfer legs count toward
// every balance but are excluded from the category sums.
func AggregateLedger(snap Snapshot, window CycleWindow, filter LedgerFilter) (LedgerView, error) {
	if err := window.Validate(); err != nil {
		return LedgerView{}, fmt.Errorf("aggregate ledger: %w", err)
	}

	var prior, inWindow []Transaction
	for _, t := range snap.Transactions {
		switch {
		case t.Date.Before(window.Start):
			prior = append(prior, t)
		case window.Contains(t.Date):
			inWindow = append(inWindow, t)
		}
	}

	var opening int64
	for _, t := range prior {
		opening += t.Signed()
	}

	// Running balances are chronological even though rows are displayed
	// newest-first. Ties break by creation time, then id, so the column is
	// deterministic for same-day transactions.
	chrono := append([]Transaction(nil), inWindow...)
	sort.SliceStable(chrono, func(i, j int) bool {
		if !chrono[i].Date.Equal(chrono[j].Date) {
			return chrono[i].Date.Before(chrono[j].Date)
		}
		if !chrono[i].CreatedAt.Equal(chrono[j].CreatedAt) {
			return chrono[i].CreatedAt.Before(chrono[j].CreatedAt)
		}
		return chrono[i].ID < chrono[j].ID
	})

	balances := make(map[string]int64, len(chrono))
	running := opening
	var totalIncome, totalExpense int64
	for _, t := range chrono {
		running += t.Signed()
		balances[t.ID] = running
		if t.Kind == Income {
			totalIncome += t.Amount.Cents
		} else {
			totalExpense += t.Amount.Cents
		}
	}

	view := LedgerView{
		Window:            window,
		OpeningBalance:    Money{Cents: opening},
		TotalIncome:       Money{Cents: totalIncome},
		TotalExpense:      Money{Cents: totalExpense},
		Net:               Money{Cents: totalIncome - totalExpense},
		CycleBalance:      Money{Cents: opening + totalIncome - totalExpense},
		IncomeByCategory:  make(map[string]Money),
		ExpenseByCategory: make(map[string]Money),
	}

	for i := len(chrono) - 1; i >= 0; i-- {
		t := chrono[i]
		if !filter.matches(t) {
			continue
		}
		view.Rows = append(view.Rows, LedgerRow{Transaction: t, Balance: Money{Cents: balances[t.ID]}})
		if t.IsTransfer() {
			continue
		}
		if t.Kind == Income {
			sum := view.IncomeByCategory[t.Category]
			sum.Cents += t.Amount.Cents
			view.IncomeByCategory[t.Category] = sum
		} else {
			sum := view.ExpenseByCategory[t.Category]
			sum.Cents += t.Amount.Cents
			view.ExpenseByCategory[t.Category] = sum
		}
	}

	return view, nil
}
