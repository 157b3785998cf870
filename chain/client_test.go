package chain

import (
	"context"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rpcRequest struct {
	ID     jsoniter.RawMessage `json:"id"`
	Method string              `json:"method"`
	Params []any               `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type rpcResponse struct {
	Version string              `json:"jsonrpc"`
	ID      jsoniter.RawMessage `json:"id"`
	Result  any                 `json:"result,omitempty"`
	Error   *rpcError           `json:"error,omitempty"`
}

// handlerFunc returns result or error for a single call. Returning status other than 200
// fails the http request.
type handlerFunc func(method string, params []any) (status int, result any, err *rpcError)

type node struct {
	mu    sync.Mutex
	calls map[string]int
	fn    handlerFunc
}

func (n *node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	n.calls[req.Method]++
	n.mu.Unlock()

	status, result, rerr := n.fn(req.Method, req.Params)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	resp := rpcResponse{Version: "2.0", ID: req.ID, Result: result, Error: rerr}
	if rerr == nil && result == nil {
		// explicit null result
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":null}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *node) count(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func newTestClient(tb testing.TB, fn handlerFunc) (*Client, *node) {
	tb.Helper()
	n := &node{calls: map[string]int{}, fn: fn}
	srv := httptest.NewServer(n)
	tb.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.URL = srv.URL
	cfg.RetryDelay = time.Millisecond
	cfg.MaxRetries = 3
	cfg.RequestsPerSecond = 0
	cfg.Timeout = 5 * time.Second
	client, err := NewClient(context.Background(), cfg, WithLogger(zaptest.NewLogger(tb)))
	require.NoError(tb, err)
	tb.Cleanup(client.Close)
	return client, n
}

func revertData(tb testing.TB, reason string) string {
	tb.Helper()
	str, err := abi.NewType("string", "", nil)
	require.NoError(tb, err)
	packed, err := abi.Arguments{{Type: str}}.Pack(reason)
	require.NoError(tb, err)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return hexutil.Encode(append(selector, packed...))
}

func TestClientEmptyURL(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
}

func TestClientReadsAreRetried(t *testing.T) {
	var (
		mu       sync.Mutex
		failures = 2
	)
	client, n := newTestClient(t, func(method string, _ []any) (int, any, *rpcError) {
		mu.Lock()
		defer mu.Unlock()
		if failures > 0 {
			failures--
			return http.StatusServiceUnavailable, nil, nil
		}
		return http.StatusOK, "0x10e", nil
	})
	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, big.NewInt(270), id)
	require.Equal(t, 3, n.count("eth_chainId"))
}

func TestClientBroadcastIsNotRetried(t *testing.T) {
	client, n := newTestClient(t, func(method string, _ []any) (int, any, *rpcError) {
		return http.StatusServiceUnavailable, nil, nil
	})
	_, err := client.SendRawTransaction(context.Background(), []byte{0x71, 0xc0})
	require.Error(t, err)
	require.Equal(t, 1, n.count("eth_sendRawTransaction"))
}

func TestClientSendRawTransaction(t *testing.T) {
	expected := common.HexToHash("0x53128f07fab70d89946559e1b53547d985b2c1fce700208a34c46ab694f42b73")
	var got []any
	client, _ := newTestClient(t, func(method string, params []any) (int, any, *rpcError) {
		got = params
		return http.StatusOK, expected.Hex(), nil
	})
	hash, err := client.SendRawTransaction(context.Background(), []byte{0x71, 0xc0})
	require.NoError(t, err)
	require.Equal(t, expected, hash)
	require.Equal(t, []any{"0x71c0"}, got)
}

func TestClientReceipt(t *testing.T) {
	hash := common.HexToHash("0x01")
	t.Run("unknown", func(t *testing.T) {
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, nil, nil
		})
		_, err := client.TransactionReceipt(context.Background(), hash)
		require.ErrorIs(t, err, ethereum.NotFound)
	})
	t.Run("not sealed", func(t *testing.T) {
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, map[string]any{
				"transactionHash": hash.Hex(),
				"status":          "0x1",
				"gasUsed":         "0x10",
				"blockNumber":     nil,
			}, nil
		})
		_, err := client.TransactionReceipt(context.Background(), hash)
		require.ErrorIs(t, err, ethereum.NotFound)
	})
	t.Run("included", func(t *testing.T) {
		contract := common.HexToAddress("0x50BFb217F72A4e00a65040d64120002C7798A393")
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, map[string]any{
				"transactionHash": hash.Hex(),
				"status":          "0x0",
				"gasUsed":         "0x10",
				"blockNumber":     "0x2a",
				"from":            contract.Hex(),
				"to":              contract.Hex(),
			}, nil
		})
		receipt, err := client.TransactionReceipt(context.Background(), hash)
		require.NoError(t, err)
		require.Equal(t, hash, receipt.TxHash)
		require.False(t, receipt.Succeeded())
		require.Equal(t, uint64(42), receipt.BlockNumber.Uint64())
		require.Equal(t, uint64(16), receipt.GasUsed)
		require.Equal(t, contract, receipt.From)
	})
}

func TestClientRevertReason(t *testing.T) {
	msg := ethereum.CallMsg{To: &common.Address{1}}
	t.Run("decoded", func(t *testing.T) {
		data := revertData(t, "owners mismatch")
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, nil, &rpcError{Code: 3, Message: "execution reverted", Data: data}
		})
		reason, err := client.RevertReason(context.Background(), msg, big.NewInt(1))
		require.NoError(t, err)
		require.Equal(t, "owners mismatch", reason)
	})
	t.Run("message only", func(t *testing.T) {
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, nil, &rpcError{Code: -32000, Message: "out of gas"}
		})
		reason, err := client.RevertReason(context.Background(), msg, nil)
		require.NoError(t, err)
		require.Equal(t, "out of gas", reason)
	})
	t.Run("call succeeds", func(t *testing.T) {
		client, _ := newTestClient(t, func(string, []any) (int, any, *rpcError) {
			return http.StatusOK, "0x", nil
		})
		reason, err := client.RevertReason(context.Background(), msg, nil)
		require.NoError(t, err)
		require.Empty(t, reason)
	})
}

func TestRevertReasonTransportError(t *testing.T) {
	expected := errors.New("connection refused")
	_, err := revertReason(expected)
	require.ErrorIs(t, err, expected)
}
