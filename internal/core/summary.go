package core

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// DashboardSummary is the all-time overview: total income, total expense and
// the resulting balance over the full transaction set.
type DashboardSummary struct {
	TotalIncome    Money
	TotalExpense   Money
	CurrentBalance Money
}

// Summarize computes the dashboard totals over the complete set, transfers
// included: the two legs cancel out, so they never distort the balance.
func Summarize(transactions []Transaction) DashboardSummary {
	var s DashboardSummary
	for _, t := range transactions {
		if t.Kind == Income {
			s.TotalIncome.Cents += t.Amount.Cents
		} else {
			s.TotalExpense.Cents += t.Amount.Cents
		}
	}
	s.CurrentBalance.Cents = s.TotalIncome.Cents - s.TotalExpense.Cents
	return s
}
