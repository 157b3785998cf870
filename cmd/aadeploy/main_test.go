package main

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/sdk/wallet"
	"github.com/aamultisig/go-aamultisig/signing"
)

func keyOf(b byte) []byte {
	key := make([]byte, signing.PrivateKeySize)
	key[len(key)-1] = b
	return key
}

func newSigner(tb testing.TB, b byte) *signing.KeySigner {
	tb.Helper()
	signer, err := signing.NewKeySigner(signing.WithPrivateKey(keyOf(b)))
	require.NoError(tb, err)
	return signer
}

func execute(tb testing.TB, args ...string) (string, error) {
	tb.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecode(t *testing.T) {
	signer := newSigner(t, 1)
	to := common.Address{0xaa}
	env := wallet.Build(wallet.ChainState{
		ChainID:  big.NewInt(270),
		GasPrice: big.NewInt(250_000_000),
		GasLimit: 50_000,
		Nonce:    7,
	}, wallet.Intent{From: signer.Address(), To: &to, Value: big.NewInt(10), Data: []byte{1, 2}})
	require.NoError(t, wallet.Sign(context.Background(), env, signer))
	raw, err := env.Serialize()
	require.NoError(t, err)
	digest, err := core.ComputeDigest(env)
	require.NoError(t, err)
	hash, err := core.TxHash(env)
	require.NoError(t, err)

	for _, arg := range []string{hexutil.Encode(raw), strings.TrimPrefix(hexutil.Encode(raw), "0x")} {
		out, err := execute(t, "decode", arg)
		require.NoError(t, err)

		var decoded decodedEnvelope
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Equal(t, hexutil.Uint64(core.EIP712TxType), decoded.Type)
		require.Equal(t, signer.Address(), decoded.From)
		require.Equal(t, to, *decoded.To)
		require.Equal(t, hexutil.Uint64(7), decoded.Nonce)
		require.Equal(t, int64(10), decoded.Value.ToInt().Int64())
		require.Equal(t, hexutil.Bytes{1, 2}, decoded.Data)
		require.NotNil(t, decoded.GasTipCap)
		require.Equal(t, int64(250_000_000), decoded.GasTipCap.ToInt().Int64())
		require.Equal(t, digest, decoded.Digest)
		require.NotNil(t, decoded.Hash)
		require.Equal(t, hash, *decoded.Hash)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := execute(t, "decode", "0xzz")
	require.Error(t, err)

	_, err = execute(t, "decode", "0x02c0")
	require.Error(t, err)

	_, err = execute(t, "decode")
	require.Error(t, err)
}

func TestAddress(t *testing.T) {
	owner1, owner2 := newSigner(t, 1).Address(), newSigner(t, 2).Address()
	bytecodeHash := "0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc"

	for _, tc := range []struct {
		desc     string
		args     []string
		owners   []common.Address
		expected common.Address
	}{
		{
			desc:     "single owner",
			args:     []string{"--owner", owner1.Hex()},
			owners:   []common.Address{owner1},
			expected: common.HexToAddress("0xe87ebca7e6c56a09769feec4f30daaea241e23e8"),
		},
		{
			desc:     "two owners",
			args:     []string{"--owner", owner1.Hex() + "," + owner2.Hex()},
			owners:   []common.Address{owner1, owner2},
			expected: common.HexToAddress("0x614f01360a3af4c26649dbe4e585f4928153f052"),
		},
		{
			desc:     "salt",
			args:     []string{"--owner", owner1.Hex(), "--salt", common.Hash{31: 1}.Hex()},
			owners:   []common.Address{owner1},
			expected: common.HexToAddress("0x4d44966e16c256b6d896435b25d24a40de6136f4"),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			args := append([]string{"address", "--bytecode-hash", bytecodeHash}, tc.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var report addressReport
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			require.Equal(t, tc.expected, report.Address)
			require.Equal(t, tc.owners, report.Owners)
			require.Equal(t, common.HexToHash(bytecodeHash), report.BytecodeHash)
			require.NotEmpty(t, report.ConstructorInput)
		})
	}
}

func TestAddressInvalid(t *testing.T) {
	owner := newSigner(t, 1).Address().Hex()
	bytecodeHash := "0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc"
	for _, tc := range []struct {
		desc string
		args []string
	}{
		{"no owners", []string{"--bytecode-hash", bytecodeHash}},
		{"bad owner", []string{"--bytecode-hash", bytecodeHash, "--owner", "0x12"}},
		{"short bytecode hash", []string{"--bytecode-hash", "0x0100", "--owner", owner}},
		{"no bytecode hash", []string{"--artifact=", "--owner", owner}},
		{"missing artifact", []string{"--artifact", "/nonexistent/artifact.json", "--owner", owner}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := execute(t, append([]string{"address"}, tc.args...)...)
			require.Error(t, err)
		})
	}
}
