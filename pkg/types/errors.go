package types

import "errors"

// ErrInvalidProfile is returned when a profile name is not one of the
// three recognized profiles, or is not currently advertised by the
// daemon.
var ErrInvalidProfile = errors.New("invalid profile")
