package store

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/core"
)

// ErrNotFound is returned when a record does not exist for the given user.
var ErrNotFound = errors.New("record not found")

// Ports for outbound store adapters. Every record is owned by a user id and
// all reads return complete, unordered sets; ordering and filtering are the
// engine's job.
type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, userID, id string) error
		// ListTransactions returns the complete unordered set for the user.
		ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	}

	AccountStore interface {
		CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
		ListAccounts(ctx context.Context, userID string) ([]core.Account, error)
		// RenameAccount changes the display name only; the stable id keeps
		// historical transactions attached.
		RenameAccount(ctx context.Context, userID, id, name string) error
		DeleteAccount(ctx context.Context, userID, id string) error
	}

	BudgetGoalStore interface {
		// SetLimit upserts keyed on (userID, category).
		SetLimit(ctx context.Context, userID, category string, limit core.Money) (core.BudgetGoal, error)
		ListGoals(ctx context.Context, userID string) ([]core.BudgetGoal, error)
		DeleteGoal(ctx context.Context, userID, id string) error
	}

	// Store is the full persistence surface a backend must provide.
	Store interface {
		TransactionStore
		AccountStore
		BudgetGoalStore
	}
)

// Error wraps a failed collaborator call with the operation that failed.
// Store failures are always propagated, never swallowed, and no derived
// state is updated when one occurs.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WrapErr wraps err as a store Error unless it is nil or already carries a
// not-found sentinel, which callers match with errors.Is.
func WrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
