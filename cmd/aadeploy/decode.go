package main

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/aamultisig/go-aamultisig/aa/core"
)

type decodedEnvelope struct {
	Type            hexutil.Uint64  `json:"type"`
	ChainID         *hexutil.Big    `json:"chainId"`
	Nonce           hexutil.Uint64  `json:"nonce"`
	From            common.Address  `json:"from"`
	To              *common.Address `json:"to"`
	Value           *hexutil.Big    `json:"value"`
	Data            hexutil.Bytes   `json:"data"`
	GasLimit        hexutil.Uint64  `json:"gasLimit"`
	GasFeeCap       *hexutil.Big    `json:"maxFeePerGas"`
	GasTipCap       *hexutil.Big    `json:"maxPriorityFeePerGas"`
	GasPerPubdata   *hexutil.Big    `json:"gasPerPubdata"`
	FactoryDeps     []hexutil.Bytes `json:"factoryDeps,omitempty"`
	CustomSignature hexutil.Bytes   `json:"customSignature,omitempty"`
	Paymaster       *common.Address `json:"paymaster,omitempty"`
	PaymasterInput  hexutil.Bytes   `json:"paymasterInput,omitempty"`
	Signature       hexutil.Bytes   `json:"signature,omitempty"`
	Digest          common.Hash     `json:"digest"`
	Hash            *common.Hash    `json:"hash,omitempty"`
}

func bigOf(v *big.Int) *hexutil.Big {
	if v == nil {
		return nil
	}
	return (*hexutil.Big)(v)
}

func describe(env *core.Envelope) (*decodedEnvelope, error) {
	digest, err := core.ComputeDigest(env)
	if err != nil {
		return nil, err
	}
	out := &decodedEnvelope{
		Type:            hexutil.Uint64(env.Type),
		ChainID:         bigOf(env.ChainID),
		Nonce:           hexutil.Uint64(env.Nonce),
		From:            env.From,
		To:              env.To,
		Value:           bigOf(env.Value),
		Data:            env.Data,
		GasLimit:        hexutil.Uint64(env.GasLimit),
		GasFeeCap:       bigOf(env.GasFeeCap),
		GasTipCap:       bigOf(env.EffectiveGasTipCap()),
		GasPerPubdata:   bigOf(env.Meta.GasPerPubdata),
		CustomSignature: env.Meta.CustomSignature,
		Signature:       env.Signature,
		Digest:          digest,
	}
	for _, dep := range env.Meta.FactoryDeps {
		out.FactoryDeps = append(out.FactoryDeps, dep)
	}
	if pp := env.Meta.PaymasterParams; pp != nil {
		out.Paymaster = &pp.Paymaster
		out.PaymasterInput = pp.Input
	}
	if len(env.Signature) > 0 || len(env.Meta.CustomSignature) > 0 {
		hash, err := core.TxHash(env)
		if err != nil {
			return nil, err
		}
		out.Hash = &hash
	}
	return out, nil
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "print the serialized transaction as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := strings.TrimSpace(args[0])
			if !strings.HasPrefix(arg, "0x") {
				arg = "0x" + arg
			}
			raw, err := hexutil.Decode(arg)
			if err != nil {
				return err
			}
			env, err := core.Decode(raw)
			if err != nil {
				return err
			}
			out, err := describe(env)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}
}
