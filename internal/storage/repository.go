package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tally/internal/core"
	"tally/internal/store"
)

// SQLiteRepository implements the store ports on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, amount_cents, kind, category, account_id, description, transfer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Date.UTC().Format(time.RFC3339Nano), t.Amount.Cents, string(t.Kind),
		t.Category, t.AccountID, t.Description, t.TransferID, t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return core.Transaction{}, store.WrapErr("create transaction", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"kind", t.Kind,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, amount_cents, kind, category, account_id, description, transfer_id, created_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, store.WrapErr("get transaction", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, amount_cents = ?, kind = ?, category = ?, account_id = ?, description = ?, transfer_id = ?
		 WHERE id = ? AND user_id = ?`,
		t.Date.UTC().Format(time.RFC3339Nano), t.Amount.Cents, string(t.Kind), t.Category,
		t.AccountID, t.Description, t.TransferID, t.ID, t.UserID)
	if err != nil {
		return store.WrapErr("update transaction", err)
	}
	return requireRow(res, "update transaction")
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return store.WrapErr("delete transaction", err)
	}
	return requireRow(res, "delete transaction")
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, amount_cents, kind, category, account_id, description, transfer_id, created_at
		 FROM transactions WHERE user_id = ?`, userID)
	if err != nil {
		return nil, store.WrapErr("list transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, store.WrapErr("list transactions", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr("list transactions", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE user_id = ? AND name = ? COLLATE NOCASE`,
		a.UserID, a.Name).Scan(&exists)
	if err != nil {
		return core.Account{}, store.WrapErr("create account", err)
	}
	if exists > 0 {
		return core.Account{}, core.ErrDuplicateAccount
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, name, kind, seed_balance_cents) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, string(a.Kind), a.SeedBalance.Cents)
	if err != nil {
		return core.Account{}, store.WrapErr("create account", err)
	}

	slog.InfoContext(ctx, "Account created", "id", a.ID, "name", a.Name, "kind", a.Kind)
	return a, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, kind, seed_balance_cents FROM accounts WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, store.WrapErr("list accounts", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		var kind string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &kind, &a.SeedBalance.Cents); err != nil {
			return nil, store.WrapErr("list accounts", err)
		}
		a.Kind = core.AccountType(kind)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr("list accounts", err)
	}
	return out, nil
}

func (r *SQLiteRepository) RenameAccount(ctx context.Context, userID, id, name string) error {
	if name == "" {
		return core.ErrEmptyAccountName
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ? WHERE id = ? AND user_id = ?`, name, id, userID)
	if err != nil {
		return store.WrapErr("rename account", err)
	}
	return requireRow(res, "rename account")
}

func (r *SQLiteRepository) DeleteAccount(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return store.WrapErr("delete account", err)
	}
	return requireRow(res, "delete account")
}

func (r *SQLiteRepository) SetLimit(ctx context.Context, userID, category string, limit core.Money) (core.BudgetGoal, error) {
	g := core.BudgetGoal{UserID: userID, Category: category, Limit: limit}
	if err := g.Validate(); err != nil {
		return core.BudgetGoal{}, err
	}

	// Upsert keyed on (user_id, category); a fresh id is only used on insert.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_goals (id, user_id, category, limit_cents) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, category) DO UPDATE SET limit_cents = excluded.limit_cents`,
		uuid.NewString(), userID, category, limit.Cents)
	if err != nil {
		return core.BudgetGoal{}, store.WrapErr("set budget limit", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category, limit_cents FROM budget_goals WHERE user_id = ? AND category = ?`,
		userID, category).Scan(&g.ID, &g.UserID, &g.Category, &g.Limit.Cents)
	if err != nil {
		return core.BudgetGoal{}, store.WrapErr("set budget limit", err)
	}

	slog.InfoContext(ctx, "Budget limit set", "category", category, "limit_cents", limit.Cents)
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.BudgetGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, limit_cents FROM budget_goals WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, store.WrapErr("list budget goals", err)
	}
	defer rows.Close()

	var out []core.BudgetGoal
	for rows.Next() {
		var g core.BudgetGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Category, &g.Limit.Cents); err != nil {
			return nil, store.WrapErr("list budget goals", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapErr("list budget goals", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budget_goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return store.WrapErr("delete budget goal", err)
	}
	return requireRow(res, "delete budget goal")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                   core.Transaction
		kind                string
		dateStr, createdStr string
	)
	err := row.Scan(&t.ID, &t.UserID, &dateStr, &t.Amount.Cents, &kind,
		&t.Category, &t.AccountID, &t.Description, &t.TransferID, &createdStr)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.Kind(kind)
	if t.Date, err = time.Parse(time.RFC3339Nano, dateStr); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return core.Transaction{}, fmt.Errorf("parse creation time: %w", err)
	}
	return t, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return store.WrapErr(op, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
