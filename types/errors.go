package types

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrDivisionByZero is returned when inverting zero.
	ErrDivisionByZero = ErrorKind("ErrDivisionByZero")

	// ErrInvalidPoint is returned for a zero coordinate, a coordinate that
	// is not below the base field modulus, or a point off the curve.
	ErrInvalidPoint = ErrorKind("ErrInvalidPoint")

	// ErrInvalidScalar is returned for a value not below the scalar field
	// modulus.
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")

	// ErrInvalidBaseField is returned for a value not below the base field
	// modulus where a base field element is expected.
	ErrInvalidBaseField = ErrorKind("ErrInvalidBaseField")

	// ErrUnsupportedFieldSize is returned for values or moduli that need
	// more than 256 bits.
	ErrUnsupportedFieldSize = ErrorKind("ErrUnsupportedFieldSize")

	// ErrLengthMismatch is returned when multi-scalar multiplication gets a
	// different number of points and scalars.
	ErrLengthMismatch = ErrorKind("ErrLengthMismatch")

	// ErrUnknownModulus is returned when an explicit modulus matches
	// neither field of the curve.
	ErrUnknownModulus = ErrorKind("ErrUnknownModulus")
)

var reasons = map[ErrorKind]string{
	ErrDivisionByZero:       "division by zero",
	ErrInvalidPoint:         "invalid point",
	ErrInvalidScalar:        "invalid scalar field",
	ErrInvalidBaseField:     "invalid base field",
	ErrUnsupportedFieldSize: "unsupported field size",
	ErrLengthMismatch:       "length mismatch",
	ErrUnknownModulus:       "unknown modulus",
}

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Reason returns the short text used in rejection messages.
func (e ErrorKind) Reason() string {
	if r, ok := reasons[e]; ok {
		return r
	}
	return string(e)
}

// Error identifies a rejection by a curve oracle. Description holds the
// rejection message, e.g. "Pallas: invalid point".
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError returns the rejection of the given kind for the named curve.
func NewError(curve string, kind ErrorKind) Error {
	return Error{Err: kind, Description: curve + ": " + kind.Reason()}
}
