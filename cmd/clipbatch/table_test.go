package main

import (
	"strings"
	"testing"

	"clipbatch/internal/plan"
)

func TestRenderJobTable(t *testing.T) {
	jobs := []plan.Job{
		{
			Index:        0,
			SourcePath:   "/media/in.mp4",
			OutputPath:   "/out/clip 0000.mp4",
			TrimStart:    "00:00:04",
			TrimDuration: "00:01:22.1",
			Images:       []plan.ImageRequest{{TimeReference: "00:00:04", OutputPath: "/out/clip 0001 00.00.04.jpg"}},
		},
		{
			Index:         1,
			SourcePath:    "/media/other.mp4",
			SuppressVideo: true,
		},
	}

	out := renderTableForTest(t, jobs)
	for _, want := range []string{"/media/in.mp4", "/out/clip 0000.mp4", "00:00:04 + 00:01:22.1", "(suppressed)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func renderTableForTest(t *testing.T, jobs []plan.Job) string {
	t.Helper()
	out := renderJobTable(jobs)
	if out == "" {
		t.Fatalf("empty table output")
	}
	return out
}

func TestDescribeTrim(t *testing.T) {
	cases := []struct {
		job  plan.Job
		want string
	}{
		{plan.Job{}, "full"},
		{plan.Job{TrimStart: "00:00:04"}, "00:00:04 + end"},
		{plan.Job{TrimDuration: "00:01:00"}, "start + 00:01:00"},
		{plan.Job{TrimStart: "00:00:04", TrimDuration: "00:01:00"}, "00:00:04 + 00:01:00"},
	}
	for _, tc := range cases {
		if got := describeTrim(tc.job); got != tc.want {
			t.Fatalf("describeTrim(%+v) = %q, want %q", tc.job, got, tc.want)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
