package main

import (
	"strings"
	"testing"
)

func TestConfirmRun(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}
	for _, tc := range cases {
		var out strings.Builder
		got, err := confirmRun(strings.NewReader(tc.input), &out, 3)
		if err != nil {
			t.Fatalf("confirm %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("confirm %q = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "3 job(s)") {
			t.Fatalf("prompt missing job count: %q", out.String())
		}
	}
}

func TestConfirmRunClosedInput(t *testing.T) {
	ok, err := confirmRun(strings.NewReader(""), &strings.Builder{}, 1)
	if err == nil {
		t.Fatalf("expected error on closed input")
	}
	if ok {
		t.Fatalf("closed input must not approve")
	}
}
