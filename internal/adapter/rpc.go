package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/utils"
)

const rpcRetries = 2

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

type callArgs struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

type rpcProvider struct {
	client *utils.HTTPClient
	url    string
	nextID atomic.Uint64

	logger *logger.Logger
}

// NewRPCProvider constructs a JSON-RPC [RPCProvider] for url over HTTP.
func NewRPCProvider(url string, timeout time.Duration, logger *logger.Logger) (RPCProvider, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("empty rpc url")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &rpcProvider{
		client: utils.NewJSONClient(timeout, rpcRetries),
		url:    url,
		logger: logger,
	}, nil
}

func (p *rpcProvider) URL() string {
	return p.url
}

func (p *rpcProvider) Call(ctx context.Context, result any, method string, params ...any) error {
	if params == nil {
		params = []any{}
	}
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      p.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(p.url)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	if err = mapHTTPError(resp); err != nil {
		p.logger.Debug().
			Str("func", "rpcProvider.Call").
			Str("method", method).
			Int("status", resp.StatusCode()).
			Msg("json-rpc transport error")
		return fmt.Errorf("%s: %w", method, err)
	}

	var out rpcResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if out.Error != nil {
		return out.Error
	}
	if len(out.Result) == 0 {
		return fmt.Errorf("%s: %w", method, ErrEmptyResponse)
	}
	if result == nil {
		return nil
	}
	if err = json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	return nil
}

func (p *rpcProvider) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := p.Call(ctx, &id, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (p *rpcProvider) BlockNumber(ctx context.Context) (uint64, error) {
	var n hexutil.Uint64
	if err := p.Call(ctx, &n, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (p *rpcProvider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance hexutil.Big
	if err := p.Call(ctx, &balance, "eth_getBalance", account, "latest"); err != nil {
		return nil, err
	}
	return balance.ToInt(), nil
}

func (p *rpcProvider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var out hexutil.Bytes
	if err := p.Call(ctx, &out, "eth_call", callArgs{To: to, Data: data}, "latest"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *rpcProvider) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	var code hexutil.Bytes
	if err := p.Call(ctx, &code, "eth_getCode", account, "latest"); err != nil {
		return nil, err
	}
	return code, nil
}
