// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/merlin-client/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrTooManyRequests):
		return ErrRateLimited

	case errors.Is(err, adapter.ErrSubgraph),
		errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway):
		return errors.Join(ErrMarketsUnavailable, err)
	}

	return err
}
