package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/store"
)

// TransferService records a transfer between two accounts as a pair of
// linked ledger entries: an expense on the source and an income on the
// destination, both carrying the same amount and correlation id, so their
// combined balance impact is zero.
type TransferService struct {
	store store.Store
}

func NewTransferService(st store.Store) *TransferService {
	return &TransferService{store: st}
}

type TransferRequest struct {
	UserID        string
	FromAccountID string
	ToAccountID   string
	Amount        core.Money
	Date          time.Time
	Description   string
}

type TransferResult struct {
	TransferID string
	Out        core.Transaction // expense leg on the source account
	In         core.Transaction // income leg on the destination account
}

// Transfer validates the request, then issues the two writes sequentially.
// The store offers no atomicity across them: if the second write fails after
// the first succeeded, the error is a *core.PartialTransferError so the
// caller can prompt for manual reconciliation instead of silently absorbing
// half a transfer.
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if err := req.Amount.Validate(); err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("transfer: %w", core.ErrZeroDate)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("transfer: %w", core.ErrSameAccount)
	}

	accounts, err := s.store.ListAccounts(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	from, ok := core.AccountByID(accounts, req.FromAccountID)
	if !ok {
		return nil, fmt.Errorf("transfer: source %s: %w", req.FromAccountID, core.ErrUnknownAccount)
	}
	to, ok := core.AccountByID(accounts, req.ToAccountID)
	if !ok {
		return nil, fmt.Errorf("transfer: destination %s: %w", req.ToAccountID, core.ErrUnknownAccount)
	}

	transferID := uuid.NewString()
	now := time.Now().UTC()

	out := core.Transaction{
		UserID:      req.UserID,
		Date:        req.Date,
		Amount:      req.Amount,
		Kind:        core.Expense,
		Category:    core.TransferCategory,
		AccountID:   from.ID,
		Description: transferDescription("Transfer to", to.Name, req.Description),
		TransferID:  transferID,
		CreatedAt:   now,
	}
	in := core.Transaction{
		UserID:      req.UserID,
		Date:        req.Date,
		Amount:      req.Amount,
		Kind:        core.Income,
		Category:    core.TransferCategory,
		AccountID:   to.ID,
		Description: transferDescription("Transfer from", from.Name, req.Description),
		TransferID:  transferID,
		CreatedAt:   now,
	}

	outCreated, err := s.store.CreateTransaction(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("transfer: outgoing leg: %w", err)
	}

	inCreated, err := s.store.CreateTransaction(ctx, in)
	if err != nil {
		return nil, &core.PartialTransferError{Out: outCreated, Err: err}
	}

	slog.InfoContext(ctx, "Transfer completed",
		"transfer_id", transferID,
		"from_account", from.ID,
		"to_account", to.ID,
		"amount_cents", req.Amount.Cents)

	return &TransferResult{TransferID: transferID, Out: outCreated, In: inCreated}, nil
}

func transferDescription(prefix, accountName, note string) string {
	if note == "" {
		return fmt.Sprintf("%s %s", prefix, accountName)
	}
	return fmt.Sprintf("%s %s: %s", prefix, accountName, note)
}
