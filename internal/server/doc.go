// Package server runs the local HTTP bridge of the client, including
// startup and graceful shutdown when the application context ends.
package server
