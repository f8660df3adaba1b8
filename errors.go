package impulse

import "github.com/pkg/errors"

var (
	// ErrInvalidPairing is returned for a pair of bodies no narrow phase test handles
	ErrInvalidPairing = errors.New("invalid collision pairing")

	// ErrNonFinite fails a step that produced a NaN or infinite body state
	ErrNonFinite = errors.New("non-finite body state")
)
