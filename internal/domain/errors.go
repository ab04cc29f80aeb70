package domain

import "errors"

var (
	// ErrInvalidPosition indicates a position violating degree, longitude or
	// retrograde invariants.
	ErrInvalidPosition = errors.New("invalid planetary position")

	// ErrInvalidSnapshot indicates a snapshot missing required bodies or
	// violating node opposition.
	ErrInvalidSnapshot = errors.New("invalid position snapshot")
)
