package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/internal/wallet"
)

var errorStatusMap = map[error]int{
	ErrInvalidBody:        http.StatusBadRequest,
	ErrInvalidSafeAddress: http.StatusBadRequest,
	ErrUnknownNetwork:     http.StatusBadRequest,
	ErrEmptySession:       http.StatusBadRequest,
	ErrUnknownTxState:     http.StatusBadRequest,

	wallet.ErrUnknownConnector: http.StatusBadRequest,
	wallet.ErrManagerClosed:    http.StatusServiceUnavailable,

	connection.ErrMachineClosed: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
