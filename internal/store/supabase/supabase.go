// Package supabase implements the store ports against a Supabase project via
// PostgREST. Tables mirror the SQLite schema: transactions, accounts and
// budget_goals, all row-scoped by user_id.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	client *supabase.Client
}

func New(url, key string) (*Store, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

type transactionRow struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	AccountID   string `json:"account_id"`
	Description string `json:"description"`
	TransferID  string `json:"transfer_id"`
	CreatedAt   string `json:"created_at"`
}

type accountRow struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	SeedBalanceCents int64  `json:"seed_balance_cents"`
}

type goalRow struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Category   string `json:"category"`
	LimitCents int64  `json:"limit_cents"`
}

func toTransactionRow(t core.Transaction) transactionRow {
	return transactionRow{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date.UTC().Format(time.RFC3339Nano),
		AmountCents: t.Amount.Cents,
		Kind:        string(t.Kind),
		Category:    t.Category,
		AccountID:   t.AccountID,
		Description: t.Description,
		TransferID:  t.TransferID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r transactionRow) toTransaction() (core.Transaction, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date: %w", err)
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse creation time: %w", err)
	}
	return core.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        date,
		Amount:      core.Money{Cents: r.AmountCents},
		Kind:        core.Kind(r.Kind),
		Category:    r.Category,
		AccountID:   r.AccountID,
		Description: r.Description,
		TransferID:  r.TransferID,
		CreatedAt:   created,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	data, _, err := s.client.From("transactions").
		Insert(toTransactionRow(t), false, "", "representation", "").
		Execute()
	if err != nil {
		return core.Transaction{}, store.WrapErr("create transaction", err)
	}

	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return core.Transaction{}, store.WrapErr("create transaction", err)
	}
	if len(rows) == 0 {
		return t, nil
	}
	return rows[0].toTransaction()
}

func (s *Store) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	data, _, err := s.client.From("transactions").
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return core.Transaction{}, store.WrapErr("get transaction", err)
	}
	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return core.Transaction{}, store.WrapErr("get transaction", err)
	}
	if len(rows) == 0 {
		return core.Transaction{}, store.ErrNotFound
	}
	return rows[0].toTransaction()
}

func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, _, err := s.client.From("transactions").
		Update(toTransactionRow(t), "", "").
		Eq("id", t.ID).
		Eq("user_id", t.UserID).
		Execute()
	if err != nil {
		return store.WrapErr("update transaction", err)
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	_, _, err := s.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return store.WrapErr("delete transaction", err)
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	data, _, err := s.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, store.WrapErr("list transactions", err)
	}
	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, store.WrapErr("list transactions", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTransaction()
		if err != nil {
			return nil, store.WrapErr("list transactions", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	row := accountRow{ID: a.ID, UserID: a.UserID, Name: a.Name, Kind: string(a.Kind), SeedBalanceCents: a.SeedBalance.Cents}
	_, _, err := s.client.From("accounts").
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return core.Account{}, store.WrapErr("create account", err)
	}
	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	data, _, err := s.client.From("accounts").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("name", nil).
		Execute()
	if err != nil {
		return nil, store.WrapErr("list accounts", err)
	}
	var rows []accountRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, store.WrapErr("list accounts", err)
	}
	out := make([]core.Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.Account{
			ID:          r.ID,
			UserID:      r.UserID,
			Name:        r.Name,
			Kind:        core.AccountType(r.Kind),
			SeedBalance: core.Money{Cents: r.SeedBalanceCents},
		})
	}
	return out, nil
}

func (s *Store) RenameAccount(ctx context.Context, userID, id, name string) error {
	if name == "" {
		return core.ErrEmptyAccountName
	}
	_, _, err := s.client.From("accounts").
		Update(map[string]string{"name": name}, "", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return store.WrapErr("rename account", err)
	}
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID, id string) error {
	_, _, err := s.client.From("accounts").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return store.WrapErr("delete account", err)
	}
	return nil
}

func (s *Store) SetLimit(ctx context.Context, userID, category string, limit core.Money) (core.BudgetGoal, error) {
	g := core.BudgetGoal{UserID: userID, Category: category, Limit: limit}
	if err := g.Validate(); err != nil {
		return core.BudgetGoal{}, err
	}

	row := goalRow{ID: uuid.NewString(), UserID: userID, Category: category, LimitCents: limit.Cents}
	data, _, err := s.client.From("budget_goals").
		Insert(row, true, "user_id,category", "representation", "").
		Execute()
	if err != nil {
		return core.BudgetGoal{}, store.WrapErr("set budget limit", err)
	}

	var rows []goalRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return core.BudgetGoal{}, store.WrapErr("set budget limit", err)
	}
	if len(rows) > 0 {
		g.ID = rows[0].ID
		g.Limit = core.Money{Cents: rows[0].LimitCents}
	}
	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]core.BudgetGoal, error) {
	data, _, err := s.client.From("budget_goals").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, store.WrapErr("list budget goals", err)
	}
	var rows []goalRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, store.WrapErr("list budget goals", err)
	}
	out := make([]core.BudgetGoal, 0, len(rows))
	for _, r := range rows {
		out = append(out, core.BudgetGoal{
			ID:       r.ID,
			UserID:   r.UserID,
			Category: r.Category,
			Limit:    core.Money{Cents: r.LimitCents},
		})
	}
	return out, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	_, _, err := s.client.From("budget_goals").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return store.WrapErr("delete budget goal", err)
	}
	return nil
}
