package clientrouting

import "fmt"

// InvalidInputError reports an encode argument that was rejected before any
// encoding took place: a malformed client IP, or a value supplied for the
// reserved content group field through Encode.
type InvalidInputError struct {
	Field  string // argument name: "client_ip" or "content_group_id"
	Value  string // the rejected value, verbatim
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// DecodeLengthError reports a first label whose length does not match the
// length of a client routing label. Both counts are exposed so callers can
// tell a truncated label from an unrelated domain.
type DecodeLengthError struct {
	NumChars         int // characters in the label that was passed
	ExpectedNumChars int // characters a valid label has
}

func (e *DecodeLengthError) Error() string {
	return fmt.Sprintf("client routing label has %d characters, expected %d",
		e.NumChars, e.ExpectedNumChars)
}

// DecodeContentError reports a first label whose length is valid but whose
// content is not: a character outside the label alphabet, or an empty label.
type DecodeContentError struct {
	Position int  // index of the offending character, -1 for an empty label
	Char     byte // offending character, 0 for an empty label
}

func (e *DecodeContentError) Error() string {
	if e.Position < 0 {
		return "client routing label is empty"
	}
	return fmt.Sprintf("invalid character %q at position %d in client routing label",
		e.Char, e.Position)
}
