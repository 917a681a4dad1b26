package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/mock"
	"github.com/MKhiriev/merlin-client/internal/relay"
)

func testDeriver() *relay.ProxyDeriver {
	return relay.NewProxyDeriver(
		common.HexToAddress("0x0fB4340432e56c014fa96286de17222822a9281b"),
		relay.InitCode([]byte{0x60, 0x80}, common.HexToAddress("0x6851D6fDFAfD08c0295C392436245E5bc78B0185")),
	)
}

func TestProxyService_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		code     []byte
		deployed bool
	}{
		{name: "counterfactual", code: nil, deployed: false},
		{name: "deployed", code: []byte{0x60, 0x80}, deployed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mock.NewMockRPCProvider(ctrl)
			d := testDeriver()
			owner := common.HexToAddress(testAccount)

			provider.EXPECT().ChainID(gomock.Any()).Return(uint64(100), nil)
			provider.EXPECT().CodeAt(gomock.Any(), d.Address(owner)).Return(tt.code, nil)

			p, err := NewProxyService(d, logger.Nop()).Resolve(context.Background(), provider, testAccount)
			require.NoError(t, err)
			assert.Equal(t, owner, p.Owner)
			assert.Equal(t, d.Address(owner), p.Address)
			assert.Equal(t, uint64(100), p.NetworkID)
			assert.Equal(t, tt.deployed, p.Deployed)
		})
	}
}

func TestProxyService_Resolve_Errors(t *testing.T) {
	t.Run("invalid owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := NewProxyService(testDeriver(), logger.Nop()).Resolve(context.Background(), mock.NewMockRPCProvider(ctrl), "")
		assert.ErrorIs(t, err, ErrInvalidAccount)
	})

	t.Run("chain id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mock.NewMockRPCProvider(ctrl)
		boom := errors.New("offline")
		provider.EXPECT().ChainID(gomock.Any()).Return(uint64(0), boom)

		_, err := NewProxyService(testDeriver(), logger.Nop()).Resolve(context.Background(), provider, testAccount)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mock.NewMockRPCProvider(ctrl)
		boom := errors.New("offline")
		provider.EXPECT().ChainID(gomock.Any()).Return(uint64(1), nil)
		provider.EXPECT().CodeAt(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := NewProxyService(testDeriver(), logger.Nop()).Resolve(context.Background(), provider, testAccount)
		assert.ErrorIs(t, err, boom)
	})
}
