package core

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	domainName    = "zkSync"
	domainVersion = "2"
	primaryType   = "Transaction"
)

var eip712Types = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	primaryType: {
		{Name: "txType", Type: "uint256"},
		{Name: "from", Type: "uint256"},
		{Name: "to", Type: "uint256"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "gasPerPubdataByteLimit", Type: "uint256"},
		{Name: "maxFeePerGas", Type: "uint256"},
		{Name: "maxPriorityFeePerGas", Type: "uint256"},
		{Name: "paymaster", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "factoryDeps", Type: "bytes32[]"},
		{Name: "paymasterInput", Type: "bytes"},
	},
}

// TypedData returns EIP-712 structured data of the envelope.
//
// Top-level signature and custom signature are not part of the structure.
func TypedData(env *Envelope) (*apitypes.TypedData, error) {
	if env.Type != EIP712TxType {
		return nil, fmt.Errorf("%w: unexpected tx type %d", ErrSerialization, env.Type)
	}
	if env.ChainID == nil {
		return nil, fmt.Errorf("%w: chain id is not set", ErrSerialization)
	}
	to := new(big.Int)
	if env.To != nil {
		to.SetBytes(env.To.Bytes())
	}
	paymaster := new(big.Int)
	paymasterInput := []byte{}
	if pp := env.Meta.PaymasterParams; pp != nil {
		paymaster.SetBytes(pp.Paymaster.Bytes())
		paymasterInput = pp.Input
	}
	// hex strings, since byte slices inside arrays are treated as nested arrays.
	deps := make([]any, 0, len(env.Meta.FactoryDeps))
	for i, dep := range env.Meta.FactoryDeps {
		h, err := HashBytecode(dep)
		if err != nil {
			return nil, fmt.Errorf("factory dep %d: %w", i, err)
		}
		deps = append(deps, h.Hex())
	}
	data := env.Data
	if data == nil {
		data = []byte{}
	}
	return &apitypes.TypedData{
		Types:       eip712Types,
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:    domainName,
			Version: domainVersion,
			ChainId: (*math.HexOrDecimal256)(new(big.Int).Set(env.ChainID)),
		},
		Message: apitypes.TypedDataMessage{
			"txType":                 big.NewInt(int64(env.Type)),
			"from":                   new(big.Int).SetBytes(env.From.Bytes()),
			"to":                     to,
			"gasLimit":               new(big.Int).SetUint64(env.GasLimit),
			"gasPerPubdataByteLimit": env.gasPerPubdata(),
			"maxFeePerGas":           orZero(env.GasFeeCap),
			"maxPriorityFeePerGas":   orZero(env.EffectiveGasTipCap()),
			"paymaster":              paymaster,
			"nonce":                  new(big.Int).SetUint64(env.Nonce),
			"value":                  orZero(env.Value),
			"data":                   hexutil.Bytes(data),
			"factoryDeps":            deps,
			"paymasterInput":         hexutil.Bytes(paymasterInput),
		},
	}, nil
}

// ComputeDigest computes the digest that has to be signed by the sender.
func ComputeDigest(env *Envelope) (common.Hash, error) {
	typed, err := TypedData(env)
	if err != nil {
		return common.Hash{}, err
	}
	digest, _, err := apitypes.TypedDataAndHash(*typed)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: typed data hash: %w", ErrSerialization, err)
	}
	return common.BytesToHash(digest), nil
}
