package core

import "strings"

// ProjectBalances replays every matching transaction against each account's
// seed balance:
//
//	balance = seed + sum(income) - sum(expense)
//
// Matching is by the stable account id, never by display name, so renaming
// an account cannot orphan its history. The result may be negative.
func ProjectBalances(accounts []Account, transactions []Transaction) map[string]Money {
	balances := make(map[string]Money, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.SeedBalance
	}
	for _, t := range transactions {
		b, ok := balances[t.AccountID]
		if !ok {
			// Transaction for a deleted or foreign account; it cannot
			// contribute to any projected balance.
			continue
		}
		b.Cents += t.Signed()
		balances[t.AccountID] = b
	}
	return balances
}

// AccountByName resolves a display name to its account. Names are unique per
// user; the match is case-insensitive. The name is a derived lookup only,
// never a join key.
func AccountByName(accounts []Account, name string) (Account, bool) {
	for _, a := range accounts {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Account{}, false
}

// AccountByID resolves a stable account id.
func AccountByID(accounts []Account, id string) (Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}
