package sdk

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/aa/core"
)

// Opt modifies Options.
type Opt func(*Options)

// Defaults returns default Options.
func Defaults() *Options {
	return &Options{GasPerPubdata: big.NewInt(core.DefaultGasPerPubdataLimit)}
}

// Options to modify common transaction fields.
type Options struct {
	GasPerPubdata *big.Int
	// GasTipCap is set to the gas price if nil.
	GasTipCap   *big.Int
	FactoryDeps [][]byte
	Paymaster   *core.PaymasterParams
	// Value overwrites the value of the intent if not nil.
	Value *big.Int
}

// WithGasPerPubdata overwrites the default gas per pubdata limit.
func WithGasPerPubdata(limit *big.Int) Opt {
	return func(opts *Options) {
		opts.GasPerPubdata = limit
	}
}

// WithGasTipCap sets max priority fee per gas.
func WithGasTipCap(tip *big.Int) Opt {
	return func(opts *Options) {
		opts.GasTipCap = tip
	}
}

// WithFactoryDeps attaches bytecodes of contracts that the transaction may deploy.
func WithFactoryDeps(deps ...[]byte) Opt {
	return func(opts *Options) {
		opts.FactoryDeps = append(opts.FactoryDeps, deps...)
	}
}

// WithValue sets the amount transferred with the call.
func WithValue(value *big.Int) Opt {
	return func(opts *Options) {
		opts.Value = value
	}
}

// WithPaymaster sponsors the fee by the paymaster contract, input is passed to it as is.
func WithPaymaster(paymaster common.Address, input []byte) Opt {
	return func(opts *Options) {
		opts.Paymaster = &core.PaymasterParams{Paymaster: paymaster, Input: input}
	}
}
