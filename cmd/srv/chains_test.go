package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/neftit-lab/backend/config"
	"github.com/stretchr/testify/require"
)

type chainIDService struct{ id uint64 }

func (s *chainIDService) ChainId() hexutil.Uint64 {
	return hexutil.Uint64(s.id)
}

func newRPCServer(t *testing.T, chainID uint64) string {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &chainIDService{id: chainID}))

	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})

	return httpServer.URL
}

func TestCheckEndpoints(t *testing.T) {
	good := newRPCServer(t, 80002)
	wrong := newRPCServer(t, 1)

	chains := []config.ChainConfig{
		{Network: "polygon-amoy", ChainID: 80002, RPCURLs: []string{good, wrong}},
		{Network: "sepolia", ChainID: 11155111, RPCURLs: []string{"http://127.0.0.1:1"}},
	}

	statuses := checkEndpoints(context.Background(), chains, 2)
	require.Len(t, statuses, 3)

	require.Equal(t, "polygon-amoy", statuses[0].Network)
	require.Equal(t, good, statuses[0].URL)
	require.NoError(t, statuses[0].Err)

	require.Equal(t, wrong, statuses[1].URL)
	require.ErrorContains(t, statuses[1].Err, "unexpected chain id 1")

	require.Equal(t, "sepolia", statuses[2].Network)
	require.Error(t, statuses[2].Err)
}
