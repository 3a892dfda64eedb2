package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store"
)

// BudgetService evaluates category spend against configured limits and
// publishes threshold alerts. The AMQP client is optional; without one the
// evaluation still runs, alerts just stay in-process.
type BudgetService struct {
	store  store.Store
	alerts *amqp.Client
}

func NewBudgetService(st store.Store, alerts *amqp.Client) *BudgetService {
	return &BudgetService{store: st, alerts: alerts}
}

// SetLimit upserts the goal for (user, category).
func (s *BudgetService) SetLimit(ctx context.Context, userID, category string, limit core.Money) (core.BudgetGoal, error) {
	goal, err := s.store.SetLimit(ctx, userID, category, limit)
	if err != nil {
		return core.BudgetGoal{}, fmt.Errorf("set limit: %w", err)
	}
	return goal, nil
}

func (s *BudgetService) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// CheckBudgets evaluates the cycle containing ref and publishes an alert for
// every NEAR or OVER goal. Publishing is best-effort: a messaging failure is
// logged and never fails the evaluation.
func (s *BudgetService) CheckBudgets(ctx context.Context, userID string, ref time.Time, startDay int) ([]core.BudgetReport, []core.BudgetNotification, error) {
	window, err := core.CycleRange(ref, startDay)
	if err != nil {
		return nil, nil, fmt.Errorf("check budgets: %w", err)
	}

	transactions, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("check budgets: %w", err)
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("check budgets: %w", err)
	}

	snap := core.Snapshot{Transactions: transactions, Goals: goals}
	view, err := core.AggregateLedger(snap, window, core.LedgerFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("check budgets: %w", err)
	}

	reports := core.EvaluateBudgets(view.ExpenseByCategory, goals)
	notifications := core.BudgetNotifications(reports)

	byGoal := make(map[string]core.BudgetReport, len(reports))
	for _, r := range reports {
		byGoal[r.GoalID] = r
	}
	for _, n := range notifications {
		s.publishAlert(ctx, userID, n, byGoal[n.GoalID])
	}

	return reports, notifications, nil
}

func (s *BudgetService) publishAlert(ctx context.Context, userID string, n core.BudgetNotification, r core.BudgetReport) {
	if s.alerts == nil {
		return
	}
	msg := amqp.NewBudgetAlertMessage(userID, n, r)
	if err := s.alerts.PublishBudgetAlert(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"notification_id", n.ID,
			"error", err)
	}
}
