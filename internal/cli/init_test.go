package cli

import (
	"io"
	"log/slog"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestGracefulShutdownRunsCleanupOnce(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var calls int32
	ctx, done := GracefulShutdown(logger, 50*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	WaitForShutdown(ctx, done)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("cleanup ran %d times, want 1", got)
	}
	if ctx.Err() == nil {
		t.Error("context not cancelled after shutdown")
	}
}

func TestGracefulShutdownNilCleanup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, done := GracefulShutdown(logger, 50*time.Millisecond, nil)

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	// Must not panic and must still complete the shutdown sequence.
	WaitForShutdown(ctx, done)

	if ctx.Err() == nil {
		t.Error("context not cancelled after shutdown")
	}
}
