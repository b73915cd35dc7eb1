package ccff

import "errors"

var (
	ErrInvalidMagic    = errors.New("ccff: invalid magic")
	ErrTruncated       = errors.New("ccff: truncated input")
	ErrOutOfRange      = errors.New("ccff: section data out of range")
	ErrSectionName     = errors.New("ccff: invalid section name")
	ErrTooManySections = errors.New("ccff: too many sections")
	ErrSectionTooLarge = errors.New("ccff: section data too large")
	ErrDuplicateName   = errors.New("ccff: duplicate section name")
	ErrLimitExceeded   = errors.New("ccff: limit exceeded")
)
