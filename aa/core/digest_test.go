package core

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

var (
	// account derived from testOwner1 in TestCreate2Address.
	testAccount = common.HexToAddress("0xe87ebca7e6c56a09769feec4f30daaea241e23e8")
	// deployAccount(bytes32(0), testOwner3).
	testCalldata = hexutil.MustDecode("0x1bb64f61" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000006813eb9362372eef6200f3b1dbc3f819671cba69")
)

func testEnvelope() *Envelope {
	to := testFactory
	return &Envelope{
		Type:      EIP712TxType,
		ChainID:   big.NewInt(270),
		Nonce:     0,
		From:      testAccount,
		To:        &to,
		Value:     new(big.Int),
		Data:      bytes.Clone(testCalldata),
		GasLimit:  2_000_000,
		GasFeeCap: big.NewInt(250_000_000),
		Meta: Meta{
			GasPerPubdata: big.NewInt(DefaultGasPerPubdataLimit),
		},
	}
}

func TestComputeDigest(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		digest, err := ComputeDigest(testEnvelope())
		require.NoError(t, err)
		require.Equal(t,
			common.HexToHash("0xddc7dc3e8e71bdd5296c5eb32a345f16ff0576b178de77ea614bca2901161329"), digest)
	})
	t.Run("paymaster and factory deps", func(t *testing.T) {
		env := testEnvelope()
		env.Nonce = 7
		env.Value = big.NewInt(12345)
		env.GasTipCap = big.NewInt(100_000_000)
		env.Meta.FactoryDeps = [][]byte{testBytecode()}
		env.Meta.PaymasterParams = &PaymasterParams{
			Paymaster: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
			Input:     []byte{1, 2, 3},
		}
		digest, err := ComputeDigest(env)
		require.NoError(t, err)
		require.Equal(t,
			common.HexToHash("0xffcf12e8503dcd78180dbe33b5df704948cd03c664ef24f744465827e159979b"), digest)
	})
	t.Run("tip defaults to fee cap", func(t *testing.T) {
		env := testEnvelope()
		env.GasTipCap = new(big.Int).Set(env.GasFeeCap)
		digest, err := ComputeDigest(env)
		require.NoError(t, err)
		require.Equal(t,
			common.HexToHash("0xddc7dc3e8e71bdd5296c5eb32a345f16ff0576b178de77ea614bca2901161329"), digest)
	})
}

func TestDigestIgnoresSignatures(t *testing.T) {
	expect, err := ComputeDigest(testEnvelope())
	require.NoError(t, err)

	withCustom := testEnvelope()
	withCustom.Meta.CustomSignature = bytes.Repeat([]byte{0xab}, 2*SignatureSize)
	withTop := testEnvelope()
	withTop.Signature = append(bytes.Repeat([]byte{1}, 64), 27)
	withBoth := testEnvelope()
	withBoth.Signature = append(bytes.Repeat([]byte{2}, 64), 28)
	withBoth.Meta.CustomSignature = []byte{1}

	for _, env := range []*Envelope{withCustom, withTop, withBoth} {
		digest, err := ComputeDigest(env)
		require.NoError(t, err)
		require.Equal(t, expect, digest)
	}
}

func TestDigestBindsExecutionFields(t *testing.T) {
	base, err := ComputeDigest(testEnvelope())
	require.NoError(t, err)
	for _, tc := range []struct {
		desc   string
		mutate func(*Envelope)
	}{
		{"nonce", func(e *Envelope) { e.Nonce++ }},
		{"chain id", func(e *Envelope) { e.ChainID = big.NewInt(280) }},
		{"sender", func(e *Envelope) { e.From = testOwner1 }},
		{"recipient", func(e *Envelope) { e.To = &testOwner2 }},
		{"creation", func(e *Envelope) { e.To = nil }},
		{"value", func(e *Envelope) { e.Value = big.NewInt(1) }},
		{"data", func(e *Envelope) { e.Data[len(e.Data)-1] ^= 1 }},
		{"gas limit", func(e *Envelope) { e.GasLimit++ }},
		{"fee", func(e *Envelope) { e.GasFeeCap = big.NewInt(1) }},
		{"tip", func(e *Envelope) { e.GasTipCap = big.NewInt(1) }},
		{"gas per pubdata", func(e *Envelope) { e.Meta.GasPerPubdata = big.NewInt(800) }},
		{"factory deps", func(e *Envelope) { e.Meta.FactoryDeps = [][]byte{testBytecode()} }},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			env := testEnvelope()
			tc.mutate(env)
			digest, err := ComputeDigest(env)
			require.NoError(t, err)
			require.NotEqual(t, base, digest)
		})
	}
}

func TestDigestInvalid(t *testing.T) {
	env := testEnvelope()
	env.Type = 2
	_, err := ComputeDigest(env)
	require.ErrorIs(t, err, ErrSerialization)

	env = testEnvelope()
	env.ChainID = nil
	_, err = ComputeDigest(env)
	require.ErrorIs(t, err, ErrSerialization)

	env = testEnvelope()
	env.Meta.FactoryDeps = [][]byte{{1, 2, 3}}
	_, err = ComputeDigest(env)
	require.ErrorIs(t, err, ErrInvalidInputLength)
}
