package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"clipbatch/internal/errlog"
)

// exitInvariant is the distinguished status for internal invariant
// violations; per-job failures never change the exit status.
const exitInvariant = 3

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		if errlog.IsInvariant(err) {
			os.Exit(exitInvariant)
		}
		os.Exit(1)
	}
}
