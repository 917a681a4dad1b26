// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// Known network ids.
const (
	NetworkMainnet uint64 = 1
	NetworkRinkeby uint64 = 4
	NetworkSokol   uint64 = 77
	NetworkXDAI    uint64 = 100
)

// RelayNetworkID is the network every relayed provider is bound to.
const RelayNetworkID = NetworkXDAI

var networkIDsByName = map[string]uint64{
	"MAINNET": NetworkMainnet,
	"RINKEBY": NetworkRinkeby,
	"SOKOL":   NetworkSokol,
	"XDAI":    NetworkXDAI,
	"GNOSIS":  NetworkXDAI,
}

// NetworkIDByName maps a network name such as "xdai" or "Mainnet" to its id.
// The lookup is case-insensitive.
func NetworkIDByName(name string) (uint64, bool) {
	id, ok := networkIDsByName[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

// NetworkLabel returns a short human readable label for a network id.
func NetworkLabel(id uint64) string {
	switch id {
	case NetworkMainnet:
		return "Mainnet"
	case NetworkRinkeby:
		return "Rinkeby"
	case NetworkSokol:
		return "Sokol"
	case NetworkXDAI:
		return "Gnosis"
	default:
		return "Unknown"
	}
}

// NativeCurrency describes the native token of a chain.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// AddChainParams is the wallet_addEthereumChain parameter object.
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	RPCURLs           []string       `json:"rpcUrls"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

// SwitchChainParams is the wallet_switchEthereumChain parameter object.
type SwitchChainParams struct {
	ChainID string `json:"chainId"`
}

// GnosisChain is the chain the client asks wallets to switch to.
var GnosisChain = AddChainParams{
	ChainID:   "0x64",
	RPCURLs:   []string{"https://rpc.gnosischain.com/"},
	ChainName: "Gnosis Chain",
	NativeCurrency: NativeCurrency{
		Name:     "xDAI",
		Symbol:   "xDAI",
		Decimals: 18,
	},
	BlockExplorerURLs: []string{"https://gnosis.blockscout.com/"},
}
