package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// EIP712TxType is the transaction type discriminant of account abstraction transactions.
	EIP712TxType = 0x71

	// DefaultGasPerPubdataLimit is the gas price per byte of published data expected by the
	// operator. Transactions below it are rejected as underpriced.
	DefaultGasPerPubdataLimit = 50_000

	// SignatureSize is the size of a single r||s||v signature.
	SignatureSize = 65
)

// Envelope is an account abstraction transaction.
//
// Fields are mutable until the envelope reaches Authorized stage. Any change made
// after that point is detected when the envelope is serialized.
type Envelope struct {
	Type    uint8
	ChainID *big.Int
	Nonce   uint64
	From    common.Address
	// To is nil for contract creation.
	To    *common.Address
	Value *big.Int
	Data  []byte

	GasLimit uint64
	// GasFeeCap is a max fee per gas, set from the gas price.
	GasFeeCap *big.Int
	// GasTipCap is a max priority fee per gas. GasFeeCap is used if nil.
	GasTipCap *big.Int

	Meta Meta

	// Signature is the top-level r||s||v signature. Only externally owned
	// senders use it; smart accounts use Meta.CustomSignature.
	Signature []byte

	stage  Stage
	digest common.Hash

	// copies of the signature fields taken when the envelope was authorized
	signature       []byte
	customSignature []byte
}

// Meta is the chain specific extension of the envelope.
type Meta struct {
	// GasPerPubdata is the gas price per byte of data availability.
	GasPerPubdata   *big.Int
	FactoryDeps     [][]byte
	CustomSignature []byte
	PaymasterParams *PaymasterParams
}

// PaymasterParams selects a paymaster that covers the fee.
type PaymasterParams struct {
	Paymaster common.Address
	Input     []byte
}

// Stage returns current stage of the envelope.
func (e *Envelope) Stage() Stage {
	return e.stage
}

// EffectiveGasTipCap returns the tip charged by the chain, GasFeeCap if the tip is not set.
func (e *Envelope) EffectiveGasTipCap() *big.Int {
	if e.GasTipCap != nil {
		return e.GasTipCap
	}
	return e.GasFeeCap
}

func (e *Envelope) gasPerPubdata() *big.Int {
	if e.Meta.GasPerPubdata != nil {
		return e.Meta.GasPerPubdata
	}
	return big.NewInt(DefaultGasPerPubdataLimit)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
