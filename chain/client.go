package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config of the rpc client.
type Config struct {
	URL string `mapstructure:"url"`
	// MaxRetries applies only to reads. Broadcast is never retried.
	MaxRetries int           `mapstructure:"max-retries"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
	// RequestsPerSecond limits reads. Zero disables the limit.
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns default rpc client config.
func DefaultConfig() Config {
	return Config{
		URL:               "http://localhost:3050",
		MaxRetries:        5,
		RetryDelay:        time.Second,
		RequestsPerSecond: 10,
		Timeout:           30 * time.Second,
	}
}

// A wrapper around zap.Logger to make it compatible with
// retryablehttp.LeveledLogger interface.
type retryableHttpLogger struct {
	inner *zap.Logger
}

func (r retryableHttpLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHttpLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHttpLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHttpLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}

type clientOpts struct {
	logger *zap.Logger
}

// ClientOpt configures Client.
type ClientOpt func(*clientOpts)

// WithLogger sets logger for the client.
func WithLogger(logger *zap.Logger) ClientOpt {
	return func(o *clientOpts) {
		o.logger = logger
	}
}

// Client talks to the node over json-rpc.
//
// Reads are retried on transport errors, broadcast uses separate client without retries.
type Client struct {
	logger    *zap.Logger
	limiter   *rate.Limiter
	reads     *rpc.Client
	eth       *ethclient.Client
	broadcast *rpc.Client
}

var _ Network = (*Client)(nil)

// NewClient dials the node.
func NewClient(ctx context.Context, cfg Config, opts ...ClientOpt) (*Client, error) {
	options := &clientOpts{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(options)
	}
	if cfg.URL == "" {
		return nil, errors.New("rpc url is not set")
	}

	retrying := retryablehttp.NewClient()
	retrying.RetryMax = cfg.MaxRetries
	retrying.RetryWaitMin = cfg.RetryDelay
	retrying.RetryWaitMax = 2 * cfg.RetryDelay
	retrying.Backoff = retryablehttp.LinearJitterBackoff
	retrying.CheckRetry = retryablehttp.DefaultRetryPolicy
	retrying.Logger = &retryableHttpLogger{inner: options.logger}
	retrying.HTTPClient.Timeout = cfg.Timeout
	retrying.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			options.logger.Debug("retrying rpc request",
				zap.Stringer("url", req.URL),
				zap.Int("attempt", attempt),
			)
		}
	}

	reads, err := rpc.DialOptions(ctx, cfg.URL, rpc.WithHTTPClient(retrying.StandardClient()))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}
	broadcast, err := rpc.DialOptions(ctx, cfg.URL, rpc.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	if err != nil {
		reads.Close()
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		logger:    options.logger,
		limiter:   rate.NewLimiter(limit, 1),
		reads:     reads,
		eth:       ethclient.NewClient(reads),
		broadcast: broadcast,
	}, nil
}

// Close both connections.
func (c *Client) Close() {
	c.reads.Close()
	c.broadcast.Close()
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.eth.ChainID(ctx)
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.eth.SuggestGasPrice(ctx)
}

func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}
	return c.eth.EstimateGas(ctx, msg)
}

func (c *Client) NonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if err := c.wait(ctx); err != nil {
		return 0, err
	}
	return c.eth.NonceAt(ctx, account, nil)
}

func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.eth.BalanceAt(ctx, account, nil)
}

func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.eth.CallContract(ctx, msg, nil)
}

func (c *Client) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.broadcast.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	var r *rpcReceipt
	if err := c.reads.CallContext(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	// receipt without block is returned for transactions that are not sealed yet.
	if r == nil || r.BlockNumber == nil {
		return nil, ethereum.NotFound
	}
	return r.receipt(), nil
}

func (c *Client) RevertReason(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	_, err := c.eth.CallContract(ctx, msg, block)
	if err == nil {
		return "", nil
	}
	return revertReason(err)
}

func revertReason(err error) (string, error) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if encoded, ok := dataErr.ErrorData().(string); ok {
			data, decodeErr := hexutil.Decode(encoded)
			if decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason, nil
				}
			}
		}
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Error(), nil
	}
	return "", err
}
