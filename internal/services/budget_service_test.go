package services

import (
	"context"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/store/memory"
)

func TestCheckBudgets(t *testing.T) {
	mem := memory.New()
	ledger := NewLedgerService(mem)
	budgets := NewBudgetService(mem, nil)
	ctx := context.Background()

	accounts, err := ledger.SeedDefaultAccounts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	cash, _ := core.AccountByName(accounts, "Cash")

	mustAdd(t, ledger, cash.ID, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), core.Expense, 900_00, "Food")
	mustAdd(t, ledger, cash.ID, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), core.Expense, 10_00, "Travel")
	// Outside the cycle, must not count.
	mustAdd(t, ledger, cash.ID, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), core.Expense, 5000_00, "Food")

	if _, err := budgets.SetLimit(ctx, "u1", "Food", core.Money{Cents: 1000_00}); err != nil {
		t.Fatal(err)
	}
	if _, err := budgets.SetLimit(ctx, "u1", "Travel", core.Money{Cents: 500_00}); err != nil {
		t.Fatal(err)
	}

	reports, notifications, err := budgets.CheckBudgets(ctx, "u1", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	// Sorted by category: Food first.
	if reports[0].Category != "Food" || reports[0].Status != core.BudgetNear {
		t.Fatalf("Food report = %+v, want NEAR at 90%%", reports[0])
	}
	if reports[1].Category != "Travel" || reports[1].Status != core.BudgetOK {
		t.Fatalf("Travel report = %+v, want OK", reports[1])
	}

	if len(notifications) != 1 || notifications[0].ID != "near-"+reports[0].GoalID {
		t.Fatalf("expected one near notification, got %+v", notifications)
	}
}

func TestCheckBudgetsTransfersDoNotCount(t *testing.T) {
	mem := memory.New()
	ledger := NewLedgerService(mem)
	transfers := NewTransferService(mem)
	budgets := NewBudgetService(mem, nil)
	ctx := context.Background()

	accounts, err := ledger.SeedDefaultAccounts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	cash, _ := core.AccountByName(accounts, "Cash")
	bank, _ := core.AccountByName(accounts, "Bank Account")

	if _, err := budgets.SetLimit(ctx, "u1", core.TransferCategory, core.Money{Cents: 10_00}); err != nil {
		t.Fatal(err)
	}
	if _, err := transfers.Transfer(ctx, TransferRequest{
		UserID:        "u1",
		FromAccountID: cash.ID,
		ToAccountID:   bank.ID,
		Amount:        core.Money{Cents: 500_00},
		Date:          time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}

	reports, notifications, err := budgets.CheckBudgets(ctx, "u1", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Spent.Cents != 0 || reports[0].Status != core.BudgetOK {
		t.Fatalf("transfer legs must not count as spend: %+v", reports)
	}
	if len(notifications) != 0 {
		t.Fatalf("no alerts expected, got %+v", notifications)
	}
}
