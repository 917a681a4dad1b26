// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package relay decides whether a connection goes through the relay and,
// when it does, which counterfactual proxy (CPK) address and provider the
// connection uses.
package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MKhiriev/merlin-client/internal/adapter"
)

const cpkFactoryABI = `[
	{"type":"function","name":"proxyCreationCode","stateMutability":"pure","inputs":[],"outputs":[{"name":"","type":"bytes"}]}
]`

var (
	factoryABI = mustParseABI(cpkFactoryABI)

	// saltNonce is keccak256("Contract Proxy Kit").
	saltNonce = crypto.Keccak256Hash([]byte("Contract Proxy Kit"))

	saltArgs = abi.Arguments{
		{Type: mustNewType("address")},
		{Type: mustNewType("bytes32")},
	}
)

// ProxyDeriver computes CPK proxy addresses with CREATE2. It is pure: the
// same owner always maps to the same proxy.
type ProxyDeriver struct {
	factory      common.Address
	initCodeHash common.Hash
}

// NewProxyDeriver creates a deriver for factory and the proxy init code.
func NewProxyDeriver(factory common.Address, initCode []byte) *ProxyDeriver {
	return &ProxyDeriver{
		factory:      factory,
		initCodeHash: crypto.Keccak256Hash(initCode),
	}
}

// InitCode returns the proxy init code: the factory creation code followed
// by the ABI-encoded master copy address.
func InitCode(creationCode []byte, masterCopy common.Address) []byte {
	code := make([]byte, 0, len(creationCode)+common.HashLength)
	code = append(code, creationCode...)
	return append(code, common.LeftPadBytes(masterCopy.Bytes(), common.HashLength)...)
}

// FetchCreationCode reads proxyCreationCode() from the factory.
func FetchCreationCode(ctx context.Context, provider adapter.RPCProvider, factory common.Address) ([]byte, error) {
	data, err := factoryABI.Pack("proxyCreationCode")
	if err != nil {
		return nil, fmt.Errorf("pack proxyCreationCode: %w", err)
	}

	out, err := provider.CallContract(ctx, factory, data)
	if err != nil {
		return nil, fmt.Errorf("call proxyCreationCode: %w", err)
	}

	values, err := factoryABI.Unpack("proxyCreationCode", out)
	if err != nil {
		return nil, fmt.Errorf("unpack proxyCreationCode: %w", err)
	}
	code, ok := values[0].([]byte)
	if !ok || len(code) == 0 {
		return nil, fmt.Errorf("unpack proxyCreationCode: %w", ErrEmptyCreationCode)
	}
	return code, nil
}

// Address returns the proxy address owned by owner.
func (d *ProxyDeriver) Address(owner common.Address) common.Address {
	return crypto.CreateAddress2(d.factory, salt(owner), d.initCodeHash.Bytes())
}

// salt is keccak256(abi.encode(owner, saltNonce)).
func salt(owner common.Address) common.Hash {
	encoded, err := saltArgs.Pack(owner, saltNonce)
	if err != nil {
		// address and bytes32 always encode
		panic(err)
	}
	return crypto.Keccak256Hash(encoded)
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
