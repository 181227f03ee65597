package rank

import "errors"

// Sentinel kinds for rank scale errors.
var (
	ErrUnknownTier     = errors.New("unknown tier")
	ErrUnknownDivision = errors.New("unknown division")
	ErrMalformedRank   = errors.New("malformed rank")
)
