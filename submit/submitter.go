// Package submit broadcasts authorized envelopes and tracks them until inclusion.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/metrics"
)

// ErrTimeout is returned if the transaction wasn't included before the deadline.
// The transaction may still be included later, its sender must not be reused
// before the nonce is checked.
var ErrTimeout = errors.New("transaction was not included in time")

// Config of the receipt polling.
type Config struct {
	PollInterval time.Duration `mapstructure:"poll-interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns default receipt polling config.
func DefaultConfig() Config {
	return Config{
		PollInterval: time.Second,
		Timeout:      5 * time.Minute,
	}
}

// Opt configures Submitter.
type Opt func(*Submitter)

// WithLogger sets logger for the submitter.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// WithClock sets clock used for receipt polling.
func WithClock(clock clockwork.Clock) Opt {
	return func(s *Submitter) {
		s.clock = clock
	}
}

// WithConfig overwrites default config.
func WithConfig(cfg Config) Opt {
	return func(s *Submitter) {
		s.cfg = cfg
	}
}

// Submitter serializes and broadcasts authorized envelopes.
//
// Broadcast is attempted once. Resending the same envelope after a transport failure
// may result in a duplicate if the first attempt reached the node, so the decision
// is left to the caller.
type Submitter struct {
	logger  *zap.Logger
	clock   clockwork.Clock
	cfg     Config
	network chain.Network
}

// New creates Submitter.
func New(network chain.Network, opts ...Opt) *Submitter {
	s := &Submitter{
		logger:  zap.NewNop(),
		clock:   clockwork.NewRealClock(),
		cfg:     DefaultConfig(),
		network: network,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit serializes the envelope and broadcasts it.
func (s *Submitter) Submit(ctx context.Context, env *core.Envelope) (*Pending, error) {
	raw, err := env.Serialize()
	if err != nil {
		submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}
	local, err := core.TxHash(env)
	if err != nil {
		submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}
	s.logger.Debug("broadcasting transaction",
		zap.Stringer("from", env.From),
		zap.Uint64("nonce", env.Nonce),
		zap.Stringer("tx_hash", local),
		zap.Int("size", len(raw)),
	)
	hash, err := s.network.SendRawTransaction(ctx, raw)
	if err != nil {
		submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: %w", core.ErrSubmission, err)
	}
	if hash != local {
		s.logger.Warn("node returned unexpected transaction hash",
			zap.Stringer("expected", local),
			zap.Stringer("received", hash),
		)
	}
	if err := env.MarkSubmitted(); err != nil {
		return nil, err
	}
	submissions.WithLabelValues(metrics.OutcomeOK).Inc()
	return &Pending{
		Hash:      hash,
		env:       env,
		submitter: s,
		timer:     metrics.StartTimer(inclusionLatency, s.clock.Now()),
	}, nil
}

// Pending is a broadcasted transaction.
type Pending struct {
	Hash common.Hash

	env       *core.Envelope
	submitter *Submitter
	timer     metrics.Timer
}

// Wait polls the receipt until the transaction is included.
//
// If the transaction reverted the receipt is returned together with *core.RevertError.
func (p *Pending) Wait(ctx context.Context) (*chain.Receipt, error) {
	s := p.submitter
	logger := s.logger.With(zap.Stringer("tx_hash", p.Hash))
	deadline := s.clock.Now().Add(s.cfg.Timeout)
	ticker := s.clock.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		receipt, err := s.network.TransactionReceipt(ctx, p.Hash)
		switch {
		case err == nil:
			return p.finalize(ctx, logger, receipt)
		case errors.Is(err, ethereum.NotFound):
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			logger.Debug("failed to get receipt", zap.Error(err))
		}
		if !s.clock.Now().Before(deadline) {
			receipts.WithLabelValues(metrics.OutcomeFailed).Inc()
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, p.Hash.Hex(), s.cfg.Timeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.Chan():
		}
	}
}

func (p *Pending) finalize(ctx context.Context, logger *zap.Logger, receipt *chain.Receipt) (*chain.Receipt, error) {
	s := p.submitter
	elapsed := p.timer.Stop(s.clock.Now())
	logger = logger.With(
		zap.Uint64("status", receipt.Status),
		zap.Stringer("block", receipt.BlockNumber),
		zap.Uint64("gas_used", receipt.GasUsed),
		zap.Duration("elapsed", elapsed),
	)
	if receipt.Succeeded() {
		receipts.WithLabelValues(metrics.OutcomeOK).Inc()
		logger.Debug("transaction included")
		if err := p.env.Finalize(core.Included); err != nil {
			return receipt, err
		}
		return receipt, nil
	}

	receipts.WithLabelValues(metrics.OutcomeReverted).Inc()
	if err := p.env.Finalize(core.Rejected); err != nil {
		return receipt, err
	}
	msg := ethereum.CallMsg{
		From:  p.env.From,
		To:    p.env.To,
		Gas:   p.env.GasLimit,
		Value: p.env.Value,
		Data:  p.env.Data,
	}
	reason, err := s.network.RevertReason(ctx, msg, receipt.BlockNumber)
	if err != nil {
		logger.Debug("failed to replay reverted transaction", zap.Error(err))
	}
	logger.Warn("transaction reverted", zap.String("reason", reason))
	return receipt, &core.RevertError{TxHash: p.Hash, Reason: reason}
}
