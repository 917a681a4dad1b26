// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectorName identifies one wallet-connection strategy. The value is the
// one persisted under [StorageKeyConnector] so it must stay stable between
// releases.
type ConnectorName string

const (
	// ConnectorInjected talks to a locally running wallet that accepts
	// eth_requestAccounts and wallet_* requests over JSON-RPC.
	ConnectorInjected ConnectorName = "Injected"

	// ConnectorInfura is the read-only hosted RPC connector. It never
	// exposes an account and is the fallback for every failure path.
	ConnectorInfura ConnectorName = "Infura"

	// ConnectorSafe is the host-bridge connector used when the client runs
	// embedded in a Safe host which supplies the account and network.
	ConnectorSafe ConnectorName = "Safe"

	// ConnectorWalletConnect restores a WalletConnect session pushed by a
	// relay and persisted under [StorageKeyWalletConnect].
	ConnectorWalletConnect ConnectorName = "WalletConnect"
)

// String implements fmt.Stringer.
func (c ConnectorName) String() string {
	return string(c)
}

// Durable client storage keys.
const (
	// StorageKeyConnector holds the name of the last selected connector.
	StorageKeyConnector = "CONNECTOR"

	// StorageKeyWalletConnect holds the WalletConnect session blob.
	StorageKeyWalletConnect = "walletconnect"

	// StorageKeyRPCAddress optionally overrides the hosted RPC endpoint.
	// The client only reads it.
	StorageKeyRPCAddress = "rpcAddress"
)

// SafeAppInfo is what an embedding Safe host reports about itself.
type SafeAppInfo struct {
	SafeAddress string `json:"safeAddress"`
	Network     string `json:"network"`
}

// WalletConnectSession is the persisted WalletConnect session record.
type WalletConnectSession struct {
	Accounts []string `json:"accounts"`
	ChainID  uint64   `json:"chainId"`
	Bridge   string   `json:"bridge,omitempty"`
	PeerName string   `json:"peerName,omitempty"`
}

// DebugOverride forces the Safe connector with a fixed address and network.
// Set distinguishes an explicitly empty address from an absent one.
type DebugOverride struct {
	Set       bool
	Address   string
	NetworkID uint64
}

// Active reports whether the override should force the Safe connector.
func (d DebugOverride) Active() bool {
	return d.Set && d.Address != ""
}
