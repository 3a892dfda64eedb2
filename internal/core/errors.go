package core

import "fmt"

// PartialTransferError reports a transfer whose outgoing leg was written but
// whose incoming leg failed. The store offers no atomicity across the two
// writes, so the caller must surface this for manual reconciliation instead
// of treating it as an ordinary store failure.
type PartialTransferError struct {
	Out Transaction // the leg that was persisted
	Err error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf("partial transfer %s: outgoing leg %s written, incoming leg failed: %v",
		e.Out.TransferID, e.Out.ID, e.Err)
}

func (e *PartialTransferError) Unwrap() error { return e.Err }
