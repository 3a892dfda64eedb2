// Package services orchestrates the pure core engine over the store ports:
// snapshot fetching, cycle views, transfers and budget checks.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
	"tally/internal/store"
)

// LedgerService builds cycle-scoped views. Every view starts from a fresh,
// immutable snapshot; nothing derived is ever written back.
type LedgerService struct {
	store store.Store
}

func NewLedgerService(st store.Store) *LedgerService {
	return &LedgerService{store: st}
}

// Snapshot fetches the user's complete transaction, account and goal sets in
// one go. The three reads are independent, so they run concurrently.
func (s *LedgerService) Snapshot(ctx context.Context, userID string) (core.Snapshot, error) {
	var snap core.Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Transactions, err = s.store.ListTransactions(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Accounts, err = s.store.ListAccounts(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Goals, err = s.store.ListGoals(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

// SeedDefaultAccounts creates the two baseline accounts, but only when the
// user currently owns zero accounts. Callers invoke it once before the first
// ledger read of a session; repeated calls are no-ops.
func (s *LedgerService) SeedDefaultAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("seed default accounts: %w", err)
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	defaults := []core.Account{
		{UserID: userID, Name: "Cash", Kind: core.AccountCash},
		{UserID: userID, Name: "Bank Account", Kind: core.AccountBank},
	}
	created := make([]core.Account, 0, len(defaults))
	for _, a := range defaults {
		acc, err := s.store.CreateAccount(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("seed default accounts: %w", err)
		}
		created = append(created, acc)
	}

	slog.InfoContext(ctx, "Seeded default accounts", "user_id", userID, "count", len(created))
	return created, nil
}

// CycleReport bundles everything a presentation or export consumer needs for
// one cycle: the ledger view, budget evaluation, per-account balances and the
// all-time summary. It is plain structured data; formatting is entirely the
// consumer's job.
type CycleReport struct {
	Ledger        core.LedgerView
	Budgets       []core.BudgetReport
	Notifications []core.BudgetNotification
	Balances      map[string]core.Money
	Summary       core.DashboardSummary
}

// CycleView computes the full report for the cycle containing ref. All
// aggregation happens over the one snapshot taken at the start of the call.
func (s *LedgerService) CycleView(ctx context.Context, userID string, ref time.Time, startDay int, filter core.LedgerFilter) (*CycleReport, error) {
	window, err := core.CycleRange(ref, startDay)
	if err != nil {
		return nil, fmt.Errorf("cycle view: %w", err)
	}

	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cycle view: %w", err)
	}

	return s.report(snap, window, filter)
}

// WindowView is CycleView for an explicit window, for callers that derive
// their own ranges.
func (s *LedgerService) WindowView(ctx context.Context, userID string, window core.CycleWindow, filter core.LedgerFilter) (*CycleReport, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("window view: %w", err)
	}
	return s.report(snap, window, filter)
}

func (s *LedgerService) report(snap core.Snapshot, window core.CycleWindow, filter core.LedgerFilter) (*CycleReport, error) {
	view, err := core.AggregateLedger(snap, window, filter)
	if err != nil {
		return nil, err
	}
	budgets := core.EvaluateBudgets(view.ExpenseByCategory, snap.Goals)
	return &CycleReport{
		Ledger:        view,
		Budgets:       budgets,
		Notifications: core.BudgetNotifications(budgets),
		Balances:      core.ProjectBalances(snap.Accounts, snap.Transactions),
		Summary:       core.Summarize(snap.Transactions),
	}, nil
}

// AddTransaction validates before any write is attempted; the account
// reference must resolve to an existing account of the same user.
func (s *LedgerService) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	if err := s.resolveAccount(ctx, t.UserID, t.AccountID); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", created.ID,
		"kind", created.Kind,
		"category", created.Category,
		"amount_cents", created.Amount.Cents)
	return created, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if err := s.resolveAccount(ctx, t.UserID, t.AccountID); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *LedgerService) resolveAccount(ctx context.Context, userID, accountID string) error {
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := core.AccountByID(accounts, accountID); !ok {
		return fmt.Errorf("account %s: %w", accountID, core.ErrUnknownAccount)
	}
	return nil
}
