// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"
)

// ErrUserQuit is returned by MainLoop when the program was killed instead
// of quit normally.
var ErrUserQuit = errors.New("user quit")

func humanizeRPCUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		// Отсутствует сеть или RPC недоступен
		return "Network is unreachable or the endpoint is down"
	}

	return err.Error()
}
