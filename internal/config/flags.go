package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-a bridge server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-rpc hosted RPC endpoint
//	-injected-rpc local wallet RPC endpoint
//	-relay-rpc relay network RPC endpoint
//	-subgraph markets subgraph endpoint
//	-request-timeout outbound request timeout (e.g., "10s")
//	-block-tracker-interval hosted block tracker poll interval
//	-keep-block-tracker leave the hosted block tracker running
//	-handshake-timeout WalletConnect handshake timeout
//	-debug-address force the Safe connector with this address
//	-debug-network-id network id used with -debug-address
func ParseFlags(args []string) (*StructuredConfig, error) {
	return parseFlags(args)
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("merlin-client", flag.ContinueOnError)

	var bridgeAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var hostedRPC, injectedRPC, relayRPC, subgraph string
	var requestTimeout time.Duration
	var blockTrackerInterval time.Duration
	var keepBlockTracker bool
	var handshakeTimeout time.Duration
	var debugAddress string
	var debugNetworkID uint64

	fs.Var(&bridgeAddress, "a", "Bridge net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hostedRPC, "rpc", "", "Hosted RPC endpoint")
	fs.StringVar(&injectedRPC, "injected-rpc", "", "Local wallet RPC endpoint")
	fs.StringVar(&relayRPC, "relay-rpc", "", "Relay network RPC endpoint")
	fs.StringVar(&subgraph, "subgraph", "", "Markets subgraph endpoint")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.DurationVar(&blockTrackerInterval, "block-tracker-interval", 0, "Block tracker poll interval")
	fs.BoolVar(&keepBlockTracker, "keep-block-tracker", false, "Keep the hosted block tracker running")
	fs.DurationVar(&handshakeTimeout, "handshake-timeout", 0, "WalletConnect handshake timeout")
	fs.StringVar(&debugAddress, "debug-address", "", "Force the Safe connector with this address")
	fs.Uint64Var(&debugNetworkID, "debug-network-id", 0, "Network id used with -debug-address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: bridgeAddress.String(),
		},
		Adapter: Adapter{
			HostedRPCURL:   hostedRPC,
			InjectedRPCURL: injectedRPC,
			RelayRPCURL:    relayRPC,
			SubgraphURL:    subgraph,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			BlockTrackerInterval: blockTrackerInterval,
			KeepBlockTracker:     keepBlockTracker,
			HandshakeTimeout:     handshakeTimeout,
		},
		Wallet: Wallet{
			DebugNetworkID: debugNetworkID,
		},
		JSONFilePath: jsonConfigPath,
	}

	// -debug-address= is meaningful, so presence is checked rather than value
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "debug-address" {
			cfg.Wallet.DebugAddress = &debugAddress
		}
	})

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
