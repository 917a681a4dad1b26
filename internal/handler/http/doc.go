// Package http implements the local HTTP bridge of the client.
//
// The bridge lets an embedding Safe host report itself, lets a WalletConnect
// relay deliver a session record and exposes the current connection and its
// user actions to local tooling. Cross-cutting concerns such as request
// tracing, access logging and response compression are handled here before
// requests reach the connection machine.
package http
