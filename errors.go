package jpeg

import (
	"github.com/pkg/errors"
)

// Sentinel error kinds, per the error-handling design: every failure the
// decoder can produce is one of these, wrapped with phase-specific context.
var (
	ErrMalformedContainer = errors.New("malformed container")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrMalformedTable     = errors.New("malformed code table")
	ErrEntropyUnderrun    = errors.New("entropy stream underrun")
	ErrIO                 = errors.New("I/O failure")
)

// wrapf attaches phase context to one of the sentinel error kinds, so the
// caller sees both the failing phase and the underlying cause.
func wrapf(kind error, phase string, format string, args ...interface{}) error {
	return errors.Wrapf(kind, phase+": "+format, args...)
}
