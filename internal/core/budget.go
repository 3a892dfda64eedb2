package core

import (
	"fmt"
	"math"
	"sort"
)

const (
	BudgetOK   BudgetStatus = "ok"
	BudgetNear BudgetStatus = "near"
	BudgetOver BudgetStatus = "over"
)

// nearThresholdPct is the percentage of a budget limit at which a goal is
// considered "near". The comparison is strict: exactly 85% is still OK.
const nearThresholdPct = 85

type (
	BudgetStatus string

	// BudgetReport is the evaluation of one goal against the cycle's spend.
	BudgetReport struct {
		GoalID   string
		Category string
		Spent    Money
		Limit    Money
		Status   BudgetStatus
		Percent  float64 // capped at 100
	}

	// BudgetNotification is an alert a consumer can diff by ID: repeated
	// evaluation against unchanged data yields identical ids, one per goal
	// and status.
	BudgetNotification struct {
		ID       string
		GoalID   string
		Category string
		Status   BudgetStatus
		Title    string
		Message  string
	}
)

// EvaluateBudgets compares each goal's limit against the expense-only
// category sums of the current cycle. Goals with no spend report zero spent
// and status OK. Reports are sorted by category so output is deterministic.
func EvaluateBudgets(expenseByCategory map[string]Money, goals []BudgetGoal) []BudgetReport {
	reports := make([]BudgetReport, 0, len(goals))
	for _, g := range goals {
		spent := expenseByCategory[g.Category]

		status := BudgetOK
		switch {
		case spent.Cents > g.Limit.Cents:
			status = BudgetOver
		case spent.Cents*100 > g.Limit.Cents*nearThresholdPct:
			status = BudgetNear
		}

		percent := 0.0
		if g.Limit.Cents > 0 {
			percent = math.Min(float64(spent.Cents)/float64(g.Limit.Cents)*100, 100)
		}

		reports = append(reports, BudgetReport{
			GoalID:   g.ID,
			Category: g.Category,
			Spent:    spent,
			Limit:    g.Limit,
			Status:   status,
			Percent:  percent,
		})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Category < reports[j].Category })
	return reports
}

// BudgetNotifications turns the NEAR and OVER reports into alerts with
// stable, status-scoped ids ("over-{goalID}", "near-{goalID}").
func BudgetNotifications(reports []BudgetReport) []BudgetNotification {
	var out []BudgetNotification
	for _, r := range reports {
		switch r.Status {
		case BudgetOver:
			out = append(out, BudgetNotification{
				ID:       "over-" + r.GoalID,
				GoalID:   r.GoalID,
				Category: r.Category,
				Status:   BudgetOver,
				Title:    "Budget Exceeded Warning",
				Message: fmt.Sprintf("You have exceeded your %s budget of %s. Current: %s",
					r.Category, r.Limit, r.Spent),
			})
		case BudgetNear:
			out = append(out, BudgetNotification{
				ID:       "near-" + r.GoalID,
				GoalID:   r.GoalID,
				Category: r.Category,
				Status:   BudgetNear,
				Title:    "Approaching Budget Limit",
				Message: fmt.Sprintf("You are at %d%% of your %s budget.",
					int(math.Round(r.Percent)), r.Category),
			})
		}
	}
	return out
}
