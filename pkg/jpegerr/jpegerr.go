// Package jpegerr defines the fatal-error taxonomy shared by the codec and
// the steganography engine.
package jpegerr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// InvalidContainer covers a bad SOI, an unexpected marker, a length
	// mismatch, or EOF in the middle of a segment.
	InvalidContainer Kind = iota
	// UnsupportedFeature covers progressive/lossless/arithmetic JPEG,
	// CMYK/YCCK colour, 16-bit precision, or non-trivial spectral
	// selection / successive approximation.
	UnsupportedFeature
	// MalformedTable covers a duplicate Huffman table definition, a
	// code-length overflow past 16 bits, a symbol-to-code lookup
	// failure, or a quantisation table destination out of range.
	MalformedTable
	// CapacityExceeded covers a secret frame that does not fit in the
	// cover image's available AC-coefficient bit capacity.
	CapacityExceeded
	// FrameCorrupt covers an extracted frame with no '/' separator or a
	// truncated length prefix.
	FrameCorrupt
	// Io covers file-not-found, permission, and overwrite failures.
	Io
)

func (k Kind) String() string {
	switch k {
	case InvalidContainer:
		return "InvalidContainer"
	case UnsupportedFeature:
		return "UnsupportedFeature"
	case MalformedTable:
		return "MalformedTable"
	case CapacityExceeded:
		return "CapacityExceeded"
	case FrameCorrupt:
		return "FrameCorrupt"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error is a fatal error tagged with a Kind so callers can branch on
// errors.As without parsing message text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that wraps an underlying cause.
func Wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err (or any error it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == k {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
