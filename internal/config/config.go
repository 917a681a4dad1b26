// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// merlin client. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the durable client storage settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local bridge HTTP server settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the JSON-RPC and subgraph endpoints.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background pollers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Wallet holds connector and relay settings.
	Wallet Wallet `envPrefix:"WALLET_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the client storage backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the client SQLite database.
type DB struct {
	// DSN is the SQLite file path (e.g. "merlin-client.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings for the local bridge HTTP server which lets
// an embedding host or a WalletConnect relay talk to the client.
type Server struct {
	// HTTPAddress is the TCP address on which the bridge listens,
	// in "host:port" format (e.g. "127.0.0.1:8484").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single bridge request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound endpoints used by connectors and services.
type Adapter struct {
	// HostedRPCURL is the read-only RPC endpoint of the Infura connector.
	// Env: ADAPTER_HOSTED_RPC_URL
	HostedRPCURL string `env:"HOSTED_RPC_URL"`

	// InjectedRPCURL is the RPC endpoint of a locally running wallet
	// (e.g. Frame on http://127.0.0.1:1248).
	// Env: ADAPTER_INJECTED_RPC_URL
	InjectedRPCURL string `env:"INJECTED_RPC_URL"`

	// RelayRPCURL is the RPC endpoint of the relay network.
	// Env: ADAPTER_RELAY_RPC_URL
	RelayRPCURL string `env:"RELAY_RPC_URL"`

	// SubgraphURL is the GraphQL endpoint markets are read from.
	// Env: ADAPTER_SUBGRAPH_URL
	SubgraphURL string `env:"SUBGRAPH_URL"`

	// NetworkRPCURLs maps a network id to an RPC endpoint. Used by the
	// Safe and WalletConnect connectors.
	// Env: ADAPTER_NETWORK_RPC_URLS (e.g. "1=https://...,100=https://...")
	NetworkRPCURLs map[uint64]string `env:"NETWORK_RPC_URLS" envKeyValSeparator:"="`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background pollers.
type Workers struct {
	// BlockTrackerInterval is how often the hosted block tracker polls.
	BlockTrackerInterval time.Duration `env:"BLOCK_TRACKER_INTERVAL"`

	// KeepBlockTracker leaves the hosted block tracker running after
	// activation. By default it is stopped right away.
	KeepBlockTracker bool `env:"KEEP_BLOCK_TRACKER"`

	// HandshakeTimeout bounds how long WalletConnect waits for a session.
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`

	// HandshakePollInterval is how often WalletConnect checks for a session.
	HandshakePollInterval time.Duration `env:"HANDSHAKE_POLL_INTERVAL"`
}

// Wallet holds connector selection and relay settings.
type Wallet struct {
	// DebugAddress forces the Safe connector with this address. An
	// explicitly empty value is kept distinct from an absent one.
	// Env: WALLET_DEBUG_ADDRESS
	DebugAddress *string `env:"DEBUG_ADDRESS"`

	// DebugNetworkID is the network used with DebugAddress (default 1).
	// Env: WALLET_DEBUG_NETWORK_ID
	DebugNetworkID uint64 `env:"DEBUG_NETWORK_ID"`

	// CPKFactory is the proxy factory the counterfactual proxy is derived from.
	// Env: WALLET_CPK_FACTORY
	CPKFactory string `env:"CPK_FACTORY"`

	// CPKMasterCopy is the Safe master copy the proxy points at.
	// Env: WALLET_CPK_MASTER_COPY
	CPKMasterCopy string `env:"CPK_MASTER_COPY"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
