package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitRunFlags(t *testing.T) {
	yes, rest := splitRunFlags([]string{"--yes", "--video", "in.mp4", "-y"})
	if !yes {
		t.Fatalf("expected yes flag to be detected")
	}
	if len(rest) != 2 || rest[0] != "--video" || rest[1] != "in.mp4" {
		t.Fatalf("unexpected remainder: %v", rest)
	}

	yes, rest = splitRunFlags([]string{"--video", "in.mp4"})
	if yes {
		t.Fatalf("yes flag detected without --yes")
	}
	if len(rest) != 2 {
		t.Fatalf("remainder altered: %v", rest)
	}
}

func TestResolveBatchTokensFromArgs(t *testing.T) {
	toks, err := resolveBatchTokens([]string{"--video", "in.mp4", "-ss", "00:00:04"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(toks) != 4 || toks[0] != "--video" || toks[3] != "00:00:04" {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestResolveBatchTokensNoArgs(t *testing.T) {
	if _, err := resolveBatchTokens(nil); err == nil {
		t.Fatalf("expected error for empty argument list")
	}
}

func TestResolveBatchTokensConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	content := "# comment line\nvideo in.mp4\nstart-position 00:00:04\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	toks, err := resolveBatchTokens([]string{"--config", path})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []string{"video", "in.mp4", "start-position", "00:00:04"}
	if len(toks) != len(want) {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, toks[i], want[i])
		}
	}
}

func TestResolveBatchTokensConfigExclusive(t *testing.T) {
	if _, err := resolveBatchTokens([]string{"--config", "file", "--video", "in.mp4"}); err == nil {
		t.Fatalf("expected error for --config with extra options")
	}
	if _, err := resolveBatchTokens([]string{"--video", "in.mp4", "--config", "file"}); err == nil {
		t.Fatalf("expected error for --config mixed into other options")
	}
	if _, err := resolveBatchTokens([]string{"--config"}); err == nil {
		t.Fatalf("expected error for --config without a file")
	}
}

func TestResolveBatchTokensMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.txt")
	_, err := resolveBatchTokens([]string{"--config", missing})
	if err == nil || !strings.Contains(err.Error(), "read batch config") {
		t.Fatalf("expected read error, got %v", err)
	}
}
