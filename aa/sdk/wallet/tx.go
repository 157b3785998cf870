package wallet

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/sdk"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/signing"
)

// ChainState is a snapshot of the values the envelope depends on.
// It is valid only until the next transaction from the sender is included.
type ChainState struct {
	ChainID  *big.Int
	GasPrice *big.Int
	GasLimit uint64
	Nonce    uint64
}

// Intent is what the sender wants to execute.
type Intent struct {
	From  common.Address
	To    *common.Address
	Value *big.Int
	Data  []byte
}

func (i Intent) callMsg() ethereum.CallMsg {
	return ethereum.CallMsg{
		From:  i.From,
		To:    i.To,
		Value: i.Value,
		Data:  i.Data,
	}
}

// Snapshot reads chain state for the intent. Nothing is cached, every call queries the network.
func Snapshot(ctx context.Context, network chain.Network, intent Intent) (ChainState, error) {
	var state ChainState
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		id, err := network.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("chain id: %w", err)
		}
		state.ChainID = id
		return nil
	})
	eg.Go(func() error {
		price, err := network.SuggestGasPrice(ctx)
		if err != nil {
			return fmt.Errorf("gas price: %w", err)
		}
		state.GasPrice = price
		return nil
	})
	eg.Go(func() error {
		gas, err := network.EstimateGas(ctx, intent.callMsg())
		if err != nil {
			return fmt.Errorf("estimate gas: %w", err)
		}
		state.GasLimit = gas
		return nil
	})
	eg.Go(func() error {
		nonce, err := network.NonceAt(ctx, intent.From)
		if err != nil {
			return fmt.Errorf("nonce of %s: %w", intent.From.Hex(), err)
		}
		state.Nonce = nonce
		return nil
	})
	if err := eg.Wait(); err != nil {
		return ChainState{}, err
	}
	return state, nil
}

// Build creates unsigned envelope for the intent.
func Build(state ChainState, intent Intent, opts ...sdk.Opt) *core.Envelope {
	options := sdk.Defaults()
	for _, opt := range opts {
		opt(options)
	}

	value := intent.Value
	if options.Value != nil {
		value = options.Value
	}
	if value == nil {
		value = new(big.Int)
	}
	env := &core.Envelope{
		Type:      core.EIP712TxType,
		ChainID:   new(big.Int).Set(state.ChainID),
		Nonce:     state.Nonce,
		From:      intent.From,
		Value:     new(big.Int).Set(value),
		Data:      bytes.Clone(intent.Data),
		GasLimit:  state.GasLimit,
		GasFeeCap: new(big.Int).Set(state.GasPrice),
		GasTipCap: options.GasTipCap,
		Meta: core.Meta{
			GasPerPubdata: options.GasPerPubdata,
			FactoryDeps:   options.FactoryDeps,
		},
	}
	if intent.To != nil {
		to := *intent.To
		env.To = &to
	}
	if options.Paymaster != nil {
		pp := *options.Paymaster
		env.Meta.PaymasterParams = &pp
	}
	return env
}

// Sign computes the digest and attaches the top-level signature of the sender.
func Sign(ctx context.Context, env *core.Envelope, signer signing.Signer) error {
	if signer.Address() != env.From {
		return fmt.Errorf("%w: signer %s is not the sender %s",
			core.ErrSigningKeyUnavailable, signer.Address().Hex(), env.From.Hex())
	}
	digest, err := env.SignedDigest()
	if err != nil {
		return err
	}
	sig, err := signer.SignDigest(ctx, digest)
	if err != nil {
		return fmt.Errorf("sign digest: %w", err)
	}
	return env.AttachSignature(sig)
}
