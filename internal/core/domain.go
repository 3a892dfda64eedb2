package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	AccountBank         AccountType = "Bank"
	AccountCash         AccountType = "Cash"
	AccountMobileWallet AccountType = "Mobile Wallet"
	AccountInvestment   AccountType = "Investment"
	AccountSavings      AccountType = "Savings"
	AccountOther        AccountType = "Other"
)

// TransferCategory marks the two legs of an account transfer so consumers can
// exclude them from ordinary income/expense analytics.
const TransferCategory = "Transfer"

type (
	Kind        string
	AccountType string

	Transaction struct {
		ID          string
		UserID      string
		Date        time.Time
		Amount      Money
		Kind        Kind
		Category    string
		AccountID   string
		Description string
		TransferID  string // shared by both legs of a transfer, empty otherwise
		CreatedAt   time.Time
	}

	Account struct {
		ID          string
		UserID      string
		Name        string
		Kind        AccountType
		SeedBalance Money
	}

	BudgetGoal struct {
		ID       string
		UserID   string
		Category string
		Limit    Money
	}

	// Snapshot is the immutable data set every aggregation works on. Callers
	// fetch it once and pass it explicitly; the engine never reaches back to
	// a store mid-computation.
	Snapshot struct {
		Transactions []Transaction
		Accounts     []Account
		Goals        []BudgetGoal
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrEmptyCategory    = errors.New("empty category")
	ErrMissingAccount   = errors.New("missing account reference")
	ErrEmptyAccountName = errors.New("empty account name")
	ErrInvalidAccount   = errors.New("invalid account type")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrSameAccount      = errors.New("cannot transfer to the same account")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrDuplicateAccount = errors.New("account name already in use")
)

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (a AccountType) Valid() bool {
	switch a {
	case AccountBank, AccountCash, AccountMobileWallet, AccountInvestment, AccountSavings, AccountOther:
		return true
	default:
		return false
	}
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrMissingAccount
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// Signed returns the amount in cents with the sign supplied by the kind.
// Amounts are stored positive; income adds, expense subtracts.
func (t Transaction) Signed() int64 {
	if t.Kind == Income {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}

// IsTransfer reports whether the transaction is one leg of an account
// transfer. The correlation id is the authoritative signal; the "Transfer"
// category is kept for display only.
func (t Transaction) IsTransfer() bool {
	return t.TransferID != ""
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyAccountName
	}
	if !a.Kind.Valid() {
		return ErrInvalidAccount
	}
	return nil
}

func (g BudgetGoal) Validate() error {
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if err := g.Limit.Validate(); err != nil {
		return err
	}
	return nil
}
