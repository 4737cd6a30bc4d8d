package errlog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestLogAppendAndDump(t *testing.T) {
	log := New()
	defer log.Discard()

	log.Append(Entry{JobIndex: 0, Stage: StageVideo, Source: "a.mp4", Target: "out/a 0000.mp4", Detail: "encoder exit 1"})
	log.Append(Entry{JobIndex: -1, Stage: StageBuild, Detail: "image before any video"})

	if log.Empty() {
		t.Fatal("expected entries")
	}
	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Stage != StageVideo || entries[1].JobIndex != -1 {
		t.Fatalf("unexpected entries: %#v", entries)
	}

	var buf strings.Builder
	log.Dump(&buf)
	out := buf.String()
	if !strings.Contains(out, "[job 0] stage=video") {
		t.Fatalf("missing job block in dump:\n%s", out)
	}
	if !strings.Contains(out, "[no job] stage=build") {
		t.Fatalf("missing no-job block in dump:\n%s", out)
	}
}

func TestLogDiscardRemovesFile(t *testing.T) {
	log := New()
	path := log.Path()
	if path == "" {
		t.Skip("transient file unavailable")
	}
	log.Append(Entry{JobIndex: 3, Stage: StageImage, Detail: "boom"})
	log.Discard()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected transient file removed, stat err=%v", err)
	}
	if len(log.Entries()) != 1 {
		t.Fatal("in-memory entries should survive Discard")
	}
}

func TestInvariantDetection(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", Invariant("job %d missing", 7))
	if !IsInvariant(err) {
		t.Fatal("expected wrapped invariant to be detected")
	}
	if IsInvariant(fmt.Errorf("encode: %w", ErrEncodeFailure)) {
		t.Fatal("encode failure must not be fatal")
	}
	if !errors.Is(fmt.Errorf("ts: %w", ErrFormat), ErrFormat) {
		t.Fatal("sentinel matching broken")
	}
}
