package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"clipbatch/internal/plan"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	runID, err := store.BeginRun(ctx)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	jobs := []plan.Job{
		{Index: 0, SourcePath: "/in/a.mp4", OutputPath: "/out/a 0000.mp4", Images: []plan.ImageRequest{{TimeReference: "00:00:01", OutputPath: "/out/a 0001 00.00.01.jpg"}}},
		{Index: 1, SourcePath: "/in/b.mp4", SuppressVideo: true},
	}
	if err := store.RecordJobs(ctx, runID, jobs); err != nil {
		t.Fatalf("RecordJobs: %v", err)
	}
	if err := store.FinishRun(ctx, runID, false, 1, 0, 1, 1); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %#v", runs)
	}
	run := runs[0]
	if run.ID != runID || run.Jobs != 2 || run.Canceled {
		t.Fatalf("run = %+v", run)
	}
	if run.ImagesDone != 1 || run.VideosDone != 1 || run.VideosFailed != 1 {
		t.Fatalf("counters = %+v", run)
	}
	if run.FinishedAt.IsZero() || run.StartedAt.IsZero() {
		t.Fatalf("timestamps missing: %+v", run)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	first, _ := store.BeginRun(ctx)
	second, _ := store.BeginRun(ctx)

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != second {
		t.Fatalf("expected run %d first, got %#v", second, runs)
	}

	runs, err = store.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second || runs[1].ID != first {
		t.Fatalf("ordering wrong: %#v", runs)
	}
}

func TestSchemaMismatchRejected(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(ctx, path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
