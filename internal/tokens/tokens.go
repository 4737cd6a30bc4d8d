// Package tokens turns raw batch input into the flat token stream consumed
// by the job-model builder. Command-line arguments pass through as-is;
// config-file text is stripped of comments and blank lines and split on
// whitespace.
package tokens

import (
	"fmt"
	"strings"

	"clipbatch/internal/errlog"
)

// FromArgs validates command-line tokens. The shell already split them; the
// only constraint enforced here is that no token carries an embedded newline.
func FromArgs(args []string) ([]string, error) {
	for _, arg := range args {
		if strings.ContainsRune(arg, '\n') {
			return nil, fmt.Errorf("%w: argument %q contains an embedded newline", errlog.ErrFormat, arg)
		}
	}
	out := make([]string, len(args))
	copy(out, args)
	return out, nil
}

// FromConfig tokenizes config-file text. Everything from an unescaped '#' to
// end of line is a comment; "\#" spells a literal hash. Blank lines are
// dropped and the remainder is split on whitespace.
func FromConfig(text string) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = stripComment(line)
		result = append(result, strings.Fields(line)...)
	}
	return result
}

func stripComment(line string) string {
	var b strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '#':
			return b.String()
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}
