package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/store"
)

func newTx(userID string) core.Transaction {
	return core.Transaction{
		UserID:    userID,
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:    core.Money{Cents: 100},
		Kind:      core.Expense,
		Category:  "Food",
		AccountID: "acc1",
	}
}

func TestTransactionCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, newTx("u1"))
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("create should assign id and creation time: %+v", created)
	}

	got, err := s.GetTransaction(ctx, "u1", created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != "Food" {
		t.Fatalf("got %+v", got)
	}

	got.Category = "Travel"
	if err := s.UpdateTransaction(ctx, got); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetTransaction(ctx, "u1", created.ID)
	if updated.Category != "Travel" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := s.DeleteTransaction(ctx, "u1", created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTransaction(ctx, "u1", created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTransactionsScopedByUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	mine, _ := s.CreateTransaction(ctx, newTx("u1"))
	if _, err := s.CreateTransaction(ctx, newTx("u2")); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListTransactions(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Fatalf("list = %+v, want only u1's transaction", list)
	}

	if _, err := s.GetTransaction(ctx, "u2", mine.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("another user must not see the transaction")
	}
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	s := New()
	bad := newTx("u1")
	bad.Amount = core.Money{}
	if _, err := s.CreateTransaction(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAccountUniqueNamePerUser(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateAccount(ctx, core.Account{UserID: "u1", Name: "Cash", Kind: core.AccountCash}); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateAccount(ctx, core.Account{UserID: "u1", Name: "cash", Kind: core.AccountCash})
	if !errors.Is(err, core.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	// Same name for a different user is fine.
	if _, err := s.CreateAccount(ctx, core.Account{UserID: "u2", Name: "Cash", Kind: core.AccountCash}); err != nil {
		t.Fatal(err)
	}
}

func TestRenameAccountKeepsID(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, _ := s.CreateAccount(ctx, core.Account{UserID: "u1", Name: "Cash", Kind: core.AccountCash})

	if err := s.RenameAccount(ctx, "u1", a.ID, "Wallet"); err != nil {
		t.Fatal(err)
	}
	accounts, _ := s.ListAccounts(ctx, "u1")
	if len(accounts) != 1 || accounts[0].ID != a.ID || accounts[0].Name != "Wallet" {
		t.Fatalf("rename must keep the stable id: %+v", accounts)
	}

	if err := s.RenameAccount(ctx, "u1", a.ID, "  "); !errors.Is(err, core.ErrEmptyAccountName) {
		t.Fatalf("expected ErrEmptyAccountName, got %v", err)
	}
}

func TestSetLimitUpserts(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.SetLimit(ctx, "u1", "Food", core.Money{Cents: 500_00})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.SetLimit(ctx, "u1", "Food", core.Money{Cents: 800_00})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatal("upsert must keep the goal id for (user, category)")
	}

	goals, _ := s.ListGoals(ctx, "u1")
	if len(goals) != 1 || goals[0].Limit.Cents != 800_00 {
		t.Fatalf("goals = %+v, want single goal with updated limit", goals)
	}
}

func TestDeleteGoal(t *testing.T) {
	s := New()
	ctx := context.Background()
	g, _ := s.SetLimit(ctx, "u1", "Food", core.Money{Cents: 500_00})
	if err := s.DeleteGoal(ctx, "u1", g.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteGoal(ctx, "u1", g.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
