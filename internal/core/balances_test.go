package core

import (
	"testing"
)

func TestProjectBalances(t *testing.T) {
	accounts := []Account{
		{ID: "acc1", Name: "Cash", Kind: AccountCash, SeedBalance: Money{Cents: 50_00}},
		{ID: "acc2", Name: "Bank Account", Kind: AccountBank},
	}
	a := tx("a", date(2024, 1, 1), Income, 500_00, "Salary")
	b := tx("b", date(2024, 1, 2), Expense, 120_00, "Food")
	c := tx("c", date(2024, 1, 3), Income, 30_00, "Interest")
	c.AccountID = "acc2"
	orphan := tx("d", date(2024, 1, 4), Income, 999_00, "Salary")
	orphan.AccountID = "gone"

	balances := ProjectBalances(accounts, []Transaction{a, b, c, orphan})

	if got := balances["acc1"].Cents; got != 50_00+500_00-120_00 {
		t.Fatalf("acc1 = %d, want %d", got, 50_00+500_00-120_00)
	}
	if got := balances["acc2"].Cents; got != 30_00 {
		t.Fatalf("acc2 = %d, want 3000", got)
	}
	if _, ok := balances["gone"]; ok {
		t.Fatal("orphaned transaction must not create a balance entry")
	}
}

func TestProjectBalancesCanGoNegative(t *testing.T) {
	accounts := []Account{{ID: "acc1", Name: "Cash", Kind: AccountCash}}
	b := ProjectBalances(accounts, []Transaction{
		tx("a", date(2024, 1, 1), Expense, 75_00, "Food"),
	})
	if b["acc1"].Cents != -75_00 {
		t.Fatalf("balance = %d, want -7500", b["acc1"].Cents)
	}
}

func TestTransferPairHasZeroNetEffect(t *testing.T) {
	accounts := []Account{
		{ID: "acc1", Name: "Cash", Kind: AccountCash, SeedBalance: Money{Cents: 200_00}},
		{ID: "acc2", Name: "Bank Account", Kind: AccountBank, SeedBalance: Money{Cents: 100_00}},
	}
	out := tx("out", date(2024, 1, 5), Expense, 100_00, TransferCategory)
	out.TransferID = "corr"
	in := tx("in", date(2024, 1, 5), Income, 100_00, TransferCategory)
	in.TransferID = "corr"
	in.AccountID = "acc2"

	before := accounts[0].SeedBalance.Cents + accounts[1].SeedBalance.Cents
	balances := ProjectBalances(accounts, []Transaction{out, in})
	after := balances["acc1"].Cents + balances["acc2"].Cents

	if before != after {
		t.Fatalf("combined balance changed by transfer: %d -> %d", before, after)
	}
	if balances["acc1"].Cents != 100_00 || balances["acc2"].Cents != 200_00 {
		t.Fatalf("unexpected balances: %+v", balances)
	}
}

func TestAccountLookups(t *testing.T) {
	accounts := []Account{
		{ID: "acc1", Name: "Cash", Kind: AccountCash},
		{ID: "acc2", Name: "Bank Account", Kind: AccountBank},
	}
	if a, ok := AccountByName(accounts, "bank account"); !ok || a.ID != "acc2" {
		t.Fatalf("AccountByName failed: %+v %v", a, ok)
	}
	if _, ok := AccountByName(accounts, "Savings"); ok {
		t.Fatal("unknown name should not resolve")
	}
	if a, ok := AccountByID(accounts, "acc1"); !ok || a.Name != "Cash" {
		t.Fatalf("AccountByID failed: %+v %v", a, ok)
	}
	if _, ok := AccountByID(accounts, "nope"); ok {
		t.Fatal("unknown id should not resolve")
	}
}
