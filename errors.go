package txtar

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidName is returned for an empty or marker-colliding file name.
	ErrInvalidName = errors.New("txtar: invalid file name")

	// ErrInvalidBase64 is returned when a base64 body fails to decode.
	ErrInvalidBase64 = errors.New("txtar: invalid base64 body")

	// ErrInvalidEditSyntax is returned for a malformed edit section.
	ErrInvalidEditSyntax = errors.New("txtar: invalid edit syntax")

	// ErrUnexpectedEOF is returned when an edit section is missing its
	// new-content delimiter before input ends.
	ErrUnexpectedEOF = errors.New("txtar: unexpected end of input")

	// ErrBinaryContent is returned when plain encoding is claimed for
	// content that cannot round-trip as UTF-8 text.
	ErrBinaryContent = errors.New("txtar: content cannot be stored as plain text")

	// ErrEditApply is returned when an edit's old content does not match
	// the target exactly once.
	ErrEditApply = errors.New("txtar: edit does not apply")
)

// DecodeError reports where decoding failed. Decoding is all-or-nothing: no
// partial archive accompanies the error.
type DecodeError struct {
	// Name is the file section being decoded, if one was active.
	Name string

	// Line is the 1-based input line where decoding failed.
	Line int

	// Err is the underlying error; it unwraps to one of the sentinels.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v (file %q, line %d)", e.Err, e.Name, e.Line)
	}
	return fmt.Sprintf("%v (line %d)", e.Err, e.Line)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports which file could not be encoded.
type EncodeError struct {
	// Name is the file that failed to encode.
	Name string

	// Err is the underlying error; it unwraps to one of the sentinels.
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%v (file %q)", e.Err, e.Name)
}

func (e *EncodeError) Unwrap() error { return e.Err }
