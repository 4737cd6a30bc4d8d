package tokens

import (
	"errors"
	"reflect"
	"testing"

	"clipbatch/internal/errlog"
)

func TestFromConfig(t *testing.T) {
	text := `
# batch for tuesday
--source-dir /media/in   # inherited by every job
--video a.mp4 --image 00:00:04

--video b.mp4 \# not-a-comment.mp4
`
	got := FromConfig(text)
	want := []string{
		"--source-dir", "/media/in",
		"--video", "a.mp4", "--image", "00:00:04",
		"--video", "b.mp4", "#", "not-a-comment.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromConfig = %q, want %q", got, want)
	}
}

func TestFromConfigEmpty(t *testing.T) {
	if got := FromConfig("# only comments\n\n   \n"); len(got) != 0 {
		t.Fatalf("expected no tokens, got %q", got)
	}
}

func TestFromArgsRejectsEmbeddedNewline(t *testing.T) {
	if _, err := FromArgs([]string{"--video", "a\n.mp4"}); !errors.Is(err, errlog.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	got, err := FromArgs([]string{"--video", "a.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"--video", "a.mp4"}) {
		t.Fatalf("unexpected tokens: %q", got)
	}
}
