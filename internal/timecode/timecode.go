// Package timecode validates the timestamp grammar used for trim bounds and
// image extraction points.
package timecode

import (
	"fmt"
	"regexp"
	"strings"

	"clipbatch/internal/errlog"
)

// Grammar: HH:MM:SS with an optional fractional part of one or two digits.
// Fields are exactly two digits; there is no semantic range check, the
// external encoder is the authority on what a source can actually seek to.
var pattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d{1,2})?$`)

// Validate checks value against the timestamp grammar and returns an
// errlog.ErrFormat error when it does not conform.
func Validate(value string) error {
	if !pattern.MatchString(value) {
		return fmt.Errorf("%w: timestamp %q does not match HH:MM:SS[.f[f]]", errlog.ErrFormat, value)
	}
	return nil
}

// Valid reports whether value conforms to the timestamp grammar.
func Valid(value string) bool {
	return pattern.MatchString(value)
}

// ForFileName returns the timestamp spelled for use inside a file name,
// with ":" replaced by ".".
func ForFileName(value string) string {
	return strings.ReplaceAll(value, ":", ".")
}
