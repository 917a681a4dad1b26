package adapter

import (
	"errors"
	"fmt"
)

// Transport errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

var (
	// ErrEmptyResponse is returned when a JSON-RPC response carries neither a
	// result nor an error.
	ErrEmptyResponse = errors.New("empty json-rpc response")

	// ErrSubgraph is returned when the subgraph answers with GraphQL errors.
	ErrSubgraph = errors.New("subgraph query failed")
)

// JSON-RPC error codes the client reacts to.
const (
	// CodeUserRejected is returned by wallets when the user declines a request.
	CodeUserRejected = 4001
	// CodeUnrecognizedChain is returned by wallet_switchEthereumChain when the
	// wallet does not know the requested chain.
	CodeUnrecognizedChain = 4902
)

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}

// ErrorCode extracts the JSON-RPC error code from err.
func ErrorCode(err error) (int, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.Code, true
	}
	return 0, false
}
