package ima

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedLine is returned for a line that cannot be tokenized
	// into a measurement entry.
	ErrMalformedLine = errors.New("malformed measurement line")
	// ErrUnknownNamespace is returned when an entry references a
	// namespace id that is not in the tree.
	ErrUnknownNamespace = errors.New("unknown namespace reference")
	// ErrDuplicateNamespace is returned when a namespace id is created twice.
	ErrDuplicateNamespace = errors.New("namespace already exists")
	// ErrUnsupportedAlgorithm is returned for a digest algorithm outside
	// sha1, sha256, sha384 and sha512.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")
	// ErrInvalidTarget is returned when the reference PCR value cannot be
	// decoded for the selected algorithm.
	ErrInvalidTarget = errors.New("invalid reference PCR value")
)

// LineError ties a replay failure to the log line that caused it.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

// Cause lets errors.Cause reach the sentinel.
func (e *LineError) Cause() error { return e.Err }

func (e *LineError) Unwrap() error { return e.Err }

// IsFatal reports whether err makes the log unprocessable, as opposed to
// an ordinary failure such as a cancelled context or a read error.
func IsFatal(err error) bool {
	switch errors.Cause(err) {
	case ErrMalformedLine, ErrUnknownNamespace, ErrDuplicateNamespace,
		ErrUnsupportedAlgorithm, ErrInvalidTarget:
		return true
	}
	return false
}
