package core

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/aamultisig/go-aamultisig/hash"
)

// wireEnvelope is the rlp list that follows the type byte.
type wireEnvelope struct {
	Nonce     uint64
	GasTipCap *uint256.Int
	GasFeeCap *uint256.Int
	GasLimit  uint64
	To        []byte
	Value     *uint256.Int
	Data      []byte
	// V is a recovery id for signed envelopes and chain id otherwise.
	V               *uint256.Int
	R               *uint256.Int
	S               *uint256.Int
	ChainID         *uint256.Int
	From            common.Address
	GasPerPubdata   *uint256.Int
	FactoryDeps     [][]byte
	CustomSignature []byte
	// PaymasterParams is either empty or [paymaster, input].
	PaymasterParams [][]byte
}

func toU256(name string, v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is negative", ErrSerialization, name)
	}
	rst, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s overflows 256 bits", ErrSerialization, name)
	}
	return rst, nil
}

// Encode envelope as 0x71 || rlp(fields).
func Encode(env *Envelope) ([]byte, error) {
	if env.Type != EIP712TxType {
		return nil, fmt.Errorf("%w: unexpected tx type %d", ErrSerialization, env.Type)
	}
	if env.ChainID == nil {
		return nil, fmt.Errorf("%w: chain id is not set", ErrSerialization)
	}
	if env.Meta.CustomSignature != nil && len(env.Meta.CustomSignature) == 0 {
		return nil, fmt.Errorf("%w: empty custom signature", ErrSerialization)
	}
	var (
		w   wireEnvelope
		err error
	)
	w.Nonce = env.Nonce
	w.GasLimit = env.GasLimit
	w.From = env.From
	w.Data = env.Data
	w.FactoryDeps = env.Meta.FactoryDeps
	w.CustomSignature = env.Meta.CustomSignature
	if env.To != nil {
		w.To = env.To.Bytes()
	}
	for _, field := range []struct {
		name string
		src  *big.Int
		dst  **uint256.Int
	}{
		{"max priority fee", env.EffectiveGasTipCap(), &w.GasTipCap},
		{"max fee", env.GasFeeCap, &w.GasFeeCap},
		{"value", env.Value, &w.Value},
		{"chain id", env.ChainID, &w.ChainID},
		{"gas per pubdata", env.gasPerPubdata(), &w.GasPerPubdata},
	} {
		if *field.dst, err = toU256(field.name, field.src); err != nil {
			return nil, err
		}
	}
	if env.Signature != nil {
		if err := validateSignature(env.Signature); err != nil {
			return nil, err
		}
		w.R = new(uint256.Int).SetBytes(env.Signature[:32])
		w.S = new(uint256.Int).SetBytes(env.Signature[32:64])
		w.V = uint256.NewInt(uint64(env.Signature[64] - 27))
	} else {
		w.V = w.ChainID
		w.R = new(uint256.Int)
		w.S = new(uint256.Int)
	}
	if pp := env.Meta.PaymasterParams; pp != nil {
		w.PaymasterParams = [][]byte{pp.Paymaster.Bytes(), pp.Input}
	}

	buf := bytes.NewBuffer(nil)
	buf.WriteByte(EIP712TxType)
	if err := rlp.Encode(buf, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// Decode envelope from the wire format. The decoded envelope is in Unsigned stage.
//
// Encode writes the fee cap in place of a nil tip, so a tip equal to the fee cap
// is decoded as nil. Both forms produce the same digest and payload.
func Decode(raw []byte) (*Envelope, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrSerialization)
	}
	if raw[0] != EIP712TxType {
		return nil, fmt.Errorf("%w: unexpected tx type %d", ErrSerialization, raw[0])
	}
	var w wireEnvelope
	if err := rlp.DecodeBytes(raw[1:], &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	env := &Envelope{
		Type:      EIP712TxType,
		ChainID:   w.ChainID.ToBig(),
		Nonce:     w.Nonce,
		From:      w.From,
		Value:     w.Value.ToBig(),
		Data:      w.Data,
		GasLimit:  w.GasLimit,
		GasFeeCap: w.GasFeeCap.ToBig(),
		Meta: Meta{
			GasPerPubdata: w.GasPerPubdata.ToBig(),
			FactoryDeps:   w.FactoryDeps,
		},
	}
	if !w.GasTipCap.Eq(w.GasFeeCap) {
		env.GasTipCap = w.GasTipCap.ToBig()
	}
	switch len(w.To) {
	case 0:
	case common.AddressLength:
		to := common.BytesToAddress(w.To)
		env.To = &to
	default:
		return nil, fmt.Errorf("%w: recipient length %d", ErrSerialization, len(w.To))
	}
	if len(w.CustomSignature) > 0 {
		env.Meta.CustomSignature = w.CustomSignature
	}
	switch len(w.PaymasterParams) {
	case 0:
	case 2:
		if len(w.PaymasterParams[0]) != common.AddressLength {
			return nil, fmt.Errorf("%w: paymaster length %d", ErrSerialization, len(w.PaymasterParams[0]))
		}
		env.Meta.PaymasterParams = &PaymasterParams{
			Paymaster: common.BytesToAddress(w.PaymasterParams[0]),
			Input:     w.PaymasterParams[1],
		}
	default:
		return nil, fmt.Errorf("%w: paymaster params with %d items", ErrSerialization, len(w.PaymasterParams))
	}
	if !w.R.IsZero() || !w.S.IsZero() {
		if !w.V.IsUint64() || w.V.Uint64() > 1 {
			return nil, fmt.Errorf("%w: invalid recovery id %s", ErrSerialization, w.V.Hex())
		}
		sig := make([]byte, SignatureSize)
		w.R.WriteToSlice(sig[:32])
		w.S.WriteToSlice(sig[32:64])
		sig[64] = byte(w.V.Uint64()) + 27
		env.Signature = sig
	}
	return env, nil
}

var errNoSignature = errors.New("envelope has no signature")

// TxHash computes the hash the chain assigns to the envelope:
// keccak256(digest || keccak256(signature)), where signature is the custom signature
// if present and r||s||recovery id otherwise.
func TxHash(env *Envelope) (common.Hash, error) {
	digest, err := ComputeDigest(env)
	if err != nil {
		return common.Hash{}, err
	}
	var sig []byte
	switch {
	case len(env.Meta.CustomSignature) > 0:
		sig = env.Meta.CustomSignature
	case env.Signature != nil:
		if err := validateSignature(env.Signature); err != nil {
			return common.Hash{}, err
		}
		sig = bytes.Clone(env.Signature)
		sig[64] -= 27
	default:
		return common.Hash{}, fmt.Errorf("%w: %w", ErrSerialization, errNoSignature)
	}
	return hash.Keccak256(digest.Bytes(), hash.Keccak256(sig).Bytes()), nil
}
