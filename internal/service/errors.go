package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidAccount = errors.New("invalid account address")

	ErrNoMoreMarkets    = errors.New("no more markets")
	ErrNoPreviousPage   = errors.New("already on the first page")
	ErrMarketsNotLoaded = errors.New("markets are not loaded")

	ErrMarketsUnavailable = errors.New("markets are temporarily unavailable")
	ErrRateLimited        = errors.New("too many requests, try again later")
)
