package wallet

import "errors"

var (
	// ErrUnknownConnector is returned for a name that is not in the registry.
	ErrUnknownConnector = errors.New("unknown connector")

	// ErrManagerClosed is returned by a closed [Manager].
	ErrManagerClosed = errors.New("wallet manager is closed")

	// ErrNoAccounts is returned when a wallet grants no account.
	ErrNoAccounts = errors.New("wallet returned no accounts")

	// ErrSafeNotInitialized is returned when the Safe connector is activated
	// before [Safe.Init].
	ErrSafeNotInitialized = errors.New("safe connector is not initialized")

	// ErrUnsupportedNetwork is returned when no RPC endpoint is configured
	// for a network.
	ErrUnsupportedNetwork = errors.New("unsupported network")

	// ErrHandshakeTimeout is returned when no WalletConnect session arrives
	// in time.
	ErrHandshakeTimeout = errors.New("walletconnect handshake timed out")

	// ErrHandshakeStopped is returned when a pending handshake is stopped by
	// a connector switch.
	ErrHandshakeStopped = errors.New("walletconnect handshake stopped")

	// ErrSessionEnded is reported when the WalletConnect session record is
	// removed while the connector is active.
	ErrSessionEnded = errors.New("walletconnect session ended")

	// ErrInvalidSession is returned for a malformed session record.
	ErrInvalidSession = errors.New("invalid walletconnect session")
)
