package runlock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.lock")

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if lock.Path() != path {
		t.Fatalf("path = %q", lock.Path())
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// Reacquirable after release.
	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	_ = again.Release()
}

func TestSecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	held, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer held.Release()

	if _, err := Acquire(path); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}
