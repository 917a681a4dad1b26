// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the connection machine, the optional host bridge and the terminal
// UI as one process lifecycle and tears them down in reverse order when the
// user quits.
package client
