package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmRun asks the operator to approve the plan. Non-interactive stdin
// approves implicitly so piped invocations never hang.
func confirmRun(in io.Reader, out io.Writer, jobCount int) (bool, error) {
	fmt.Fprintf(out, "Process %d job(s)? [y/N] ", jobCount)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
