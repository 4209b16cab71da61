package model

import "errors"

// Sentinel errors for the process engine. Callers match with errors.Is;
// detection sites wrap these with fmt.Errorf("...: %w", ...) context.
var (
	// ErrDomain indicates invalid model parameters (non-positive or
	// non-finite) or an invalid state (negative coordinates) passed into
	// a rate or probability function.
	ErrDomain = errors.New("duopop: domain error")

	// ErrNumerical indicates a computed probability mass was non-finite
	// or negative, or the normalization constant underflowed below a
	// usable threshold.
	ErrNumerical = errors.New("duopop: numerical error")

	// ErrInvalidArgument indicates simulation control parameters that
	// violate basic constraints (non-positive duration, negative burn-in,
	// non-positive grid bound).
	ErrInvalidArgument = errors.New("duopop: invalid argument")
)
