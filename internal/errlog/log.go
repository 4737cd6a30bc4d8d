package errlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Stage identifies the pipeline phase an entry was recorded in.
type Stage string

const (
	StageBuild    Stage = "build"
	StageAllocate Stage = "allocate"
	StageImage    Stage = "image"
	StageVideo    Stage = "video"
	StageCleanup  Stage = "cleanup"
)

// Entry is one recorded failure. JobIndex is -1 for failures that are not
// attributable to a committed job (for example directives discarded before
// any video token).
type Entry struct {
	JobIndex int
	Stage    Stage
	Source   string
	Target   string
	TimeRef  string
	Detail   string
}

// Log is an append-only failure record. Entries are mirrored into a
// transient on-disk file so the operator can inspect them after the run; the
// file is removed by Discard.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	file    *os.File
	path    string
}

// New creates a Log backed by a transient file. A file creation failure is
// not fatal: the log still accumulates entries in memory.
func New() *Log {
	l := &Log{}
	if file, err := os.CreateTemp("", "clipbatch-errors-*.log"); err == nil {
		l.file = file
		l.path = file.Name()
	}
	return l
}

// Append records one failure and mirrors it to the transient file.
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if l.file != nil {
		fmt.Fprint(l.file, formatEntry(entry))
	}
}

// Entries returns a copy of the recorded entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Empty reports whether no failures were recorded.
func (l *Log) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries) == 0
}

// Path returns the transient file location, or empty if unavailable.
func (l *Log) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Dump writes every recorded block to w.
func (l *Log) Dump(w io.Writer) {
	for _, entry := range l.Entries() {
		fmt.Fprint(w, formatEntry(entry))
	}
}

// Discard closes and removes the transient file. The in-memory entries
// remain readable.
func (l *Log) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		_ = os.Remove(l.path)
		l.file = nil
		l.path = ""
	}
}

func formatEntry(entry Entry) string {
	var b strings.Builder
	if entry.JobIndex >= 0 {
		fmt.Fprintf(&b, "[job %d] stage=%s\n", entry.JobIndex, entry.Stage)
	} else {
		fmt.Fprintf(&b, "[no job] stage=%s\n", entry.Stage)
	}
	if entry.Source != "" {
		fmt.Fprintf(&b, "  source: %s\n", entry.Source)
	}
	if entry.Target != "" {
		fmt.Fprintf(&b, "  target: %s\n", entry.Target)
	}
	if entry.TimeRef != "" {
		fmt.Fprintf(&b, "  time:   %s\n", entry.TimeRef)
	}
	fmt.Fprintf(&b, "  detail: %s\n", entry.Detail)
	return b.String()
}
