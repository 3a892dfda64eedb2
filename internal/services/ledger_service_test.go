package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/store/memory"
)

func mustAdd(t *testing.T, svc *LedgerService, accountID string, day time.Time, kind core.Kind, cents int64, category string) core.Transaction {
	t.Helper()
	created, err := svc.AddTransaction(context.Background(), core.Transaction{
		UserID:    "u1",
		Date:      day,
		Amount:    core.Money{Cents: cents},
		Kind:      kind,
		Category:  category,
		AccountID: accountID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return created
}

func TestSeedDefaultAccountsOnlyWhenEmpty(t *testing.T) {
	mem := memory.New()
	svc := NewLedgerService(mem)
	ctx := context.Background()

	first, err := svc.SeedDefaultAccounts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 {
		t.Fatalf("expected the two baseline accounts, got %d", len(first))
	}
	if _, ok := core.AccountByName(first, "Cash"); !ok {
		t.Fatal("missing Cash account")
	}
	if _, ok := core.AccountByName(first, "Bank Account"); !ok {
		t.Fatal("missing Bank Account")
	}

	// Second call is a no-op against the existing set.
	second, err := svc.SeedDefaultAccounts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 2 {
		t.Fatalf("seeding must be idempotent, got %d accounts", len(second))
	}

	// A different user still gets their own pair.
	other, err := svc.SeedDefaultAccounts(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 2 {
		t.Fatalf("expected defaults for the new user, got %d", len(other))
	}
}

func TestCycleViewEndToEnd(t *testing.T) {
	mem := memory.New()
	svc := NewLedgerService(mem)
	ctx := context.Background()

	accounts, err := svc.SeedDefaultAccounts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	cash, _ := core.AccountByName(accounts, "Cash")

	mustAdd(t, svc, cash.ID, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), core.Income, 1000_00, "Salary")
	mustAdd(t, svc, cash.ID, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), core.Expense, 200_00, "Food")

	if _, err := mem.SetLimit(ctx, "u1", "Food", core.Money{Cents: 150_00}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.CycleView(ctx, "u1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 25, core.LedgerFilter{})
	if err != nil {
		t.Fatal(err)
	}

	if report.Ledger.OpeningBalance.Cents != 1000_00 {
		t.Fatalf("opening = %d, want 100000", report.Ledger.OpeningBalance.Cents)
	}
	if report.Ledger.CycleBalance.Cents != 800_00 {
		t.Fatalf("cycle balance = %d, want 80000", report.Ledger.CycleBalance.Cents)
	}

	if len(report.Budgets) != 1 || report.Budgets[0].Status != core.BudgetOver {
		t.Fatalf("expected one over-budget report, got %+v", report.Budgets)
	}
	if len(report.Notifications) != 1 || report.Notifications[0].Status != core.BudgetOver {
		t.Fatalf("expected one over notification, got %+v", report.Notifications)
	}

	if got := report.Balances[cash.ID].Cents; got != 800_00 {
		t.Fatalf("cash balance = %d, want 80000", got)
	}
	if report.Summary.CurrentBalance.Cents != 800_00 {
		t.Fatalf("summary balance = %d, want 80000", report.Summary.CurrentBalance.Cents)
	}
}

func TestCycleViewRejectsBadStartDay(t *testing.T) {
	svc := NewLedgerService(memory.New())
	_, err := svc.CycleView(context.Background(), "u1", time.Now(), 29, core.LedgerFilter{})
	if !errors.Is(err, core.ErrStartDayRange) {
		t.Fatalf("expected ErrStartDayRange, got %v", err)
	}
}

func TestWindowViewRejectsInvertedWindow(t *testing.T) {
	svc := NewLedgerService(memory.New())
	w := core.CycleWindow{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.WindowView(context.Background(), "u1", w, core.LedgerFilter{})
	if !errors.Is(err, core.ErrInvertedWindow) {
		t.Fatalf("expected ErrInvertedWindow, got %v", err)
	}
}

func TestAddTransactionRejectsUnknownAccount(t *testing.T) {
	mem := memory.New()
	svc := NewLedgerService(mem)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, core.Transaction{
		UserID:    "u1",
		Date:      time.Now(),
		Amount:    core.Money{Cents: 100},
		Kind:      core.Expense,
		Category:  "Food",
		AccountID: "ghost",
	})
	if !errors.Is(err, core.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}

	txs, _ := mem.ListTransactions(ctx, "u1")
	if len(txs) != 0 {
		t.Fatal("nothing should be written when validation fails")
	}
}
