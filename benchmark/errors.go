package benchmark

import "errors"

// ErrInvalidTier is returned when a size tier name is not recognised.
var ErrInvalidTier = errors.New("invalid size tier")

// ErrInsufficientResources is returned when the machine cannot provide the
// memory, processes or disk space a run needs.
var ErrInsufficientResources = errors.New("insufficient resources")
