package markets

import "errors"

var (
	ErrUnknownState          = errors.New("unknown market state")
	ErrNotConnected          = errors.New("my markets requires a connected account")
	ErrSortIndexOutOfRange   = errors.New("sort index out of range")
	ErrUnknownCurationSource = errors.New("unknown curation source")
	ErrCurationDisabled      = errors.New("curation filter is disabled")
)
