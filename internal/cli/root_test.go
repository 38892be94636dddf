//go:build unix

package cli

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestNotifyContextCanceledBySIGTERM(t *testing.T) {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("kill: %v", err)
	}
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not canceled by SIGTERM")
	}
}
