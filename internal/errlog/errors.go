package errlog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure classes. Callers wrap these
// with fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrFormat marks a malformed timestamp or malformed config token.
	ErrFormat = errors.New("format error")
	// ErrSourceRejected marks an unreadable, empty, or unsupported source.
	ErrSourceRejected = errors.New("source rejected")
	// ErrDirectory marks a missing, uncreatable, or unwritable directory.
	ErrDirectory = errors.New("directory error")
	// ErrSequenceExhausted marks a naming space with no free sequence number.
	ErrSequenceExhausted = errors.New("sequence exhausted")
	// ErrEncodeFailure marks a failed external encoder invocation.
	ErrEncodeFailure = errors.New("encode failure")
)

// InvariantError reports a structural impossibility inside the pipeline. It
// is fatal: main maps it to a distinguished exit status and aborts the run.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "internal invariant violated: " + e.Msg
}

// Invariant constructs a fatal InvariantError.
func Invariant(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err carries an InvariantError anywhere in its
// chain.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
