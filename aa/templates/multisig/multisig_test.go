package multisig

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/aamultisig/go-aamultisig/signing"
)

func newSigners(tb testing.TB, n int) []*signing.KeySigner {
	tb.Helper()
	signers := make([]*signing.KeySigner, n)
	for i := range signers {
		key := make([]byte, signing.PrivateKeySize)
		key[31] = byte(i + 1)
		signer, err := signing.NewKeySigner(signing.WithPrivateKey(key))
		require.NoError(tb, err)
		signers[i] = signer
	}
	return signers
}

func sign(tb testing.TB, digest common.Hash, signers ...*signing.KeySigner) []byte {
	tb.Helper()
	var blob []byte
	for _, s := range signers {
		sig, err := s.SignDigest(context.Background(), digest)
		require.NoError(tb, err)
		blob = append(blob, sig...)
	}
	return blob
}

func owners(signers ...*signing.KeySigner) []common.Address {
	rst := make([]common.Address, len(signers))
	for i, s := range signers {
		rst[i] = s.Address()
	}
	return rst
}

func TestVerify(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("transaction"))
	for n := 1; n <= 4; n++ {
		signers := newSigners(t, n)
		require.NoError(t, Verify(digest, sign(t, digest, signers...), owners(signers...)...))
	}
}

func TestVerifyOrderIsSignificant(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("transaction"))
	signers := newSigners(t, 2)
	ms := New(&SpawnArguments{Owners: owners(signers...)})

	require.NoError(t, ms.Verify(digest, sign(t, digest, signers[0], signers[1])))

	swapped := sign(t, digest, signers[1], signers[0])
	require.ErrorIs(t, ms.Verify(digest, swapped), ErrInvalidAuthorization)

	duplicated := sign(t, digest, signers[0], signers[0])
	require.ErrorIs(t, ms.Verify(digest, duplicated), ErrInvalidAuthorization)
}

func TestVerifyRejectsPrefixedSignatures(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("transaction"))
	signers := newSigners(t, 2)
	prefixed := sign(t, common.BytesToHash(accounts.TextHash(digest[:])), signers...)
	raw := sign(t, digest, signers...)
	require.NotEqual(t, raw, prefixed)

	require.NoError(t, Verify(digest, raw, owners(signers...)...))
	require.ErrorIs(t, Verify(digest, prefixed, owners(signers...)...), ErrInvalidAuthorization)
}

func TestVerifyMalformed(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("transaction"))
	signers := newSigners(t, 2)
	valid := sign(t, digest, signers...)

	highS := func() []byte {
		blob := bytes.Clone(valid)
		s := new(big.Int).SetBytes(blob[32:64])
		s.Sub(crypto.S256().Params().N, s)
		copy(blob[32:64], common.LeftPadBytes(s.Bytes(), 32))
		blob[64] ^= 1 // 27 <-> 28
		return blob
	}

	for _, tc := range []struct {
		desc string
		blob []byte
	}{
		{"empty", nil},
		{"one signature", valid[:65]},
		{"extra byte", append(bytes.Clone(valid), 0)},
		{"three signatures", append(bytes.Clone(valid), valid[:65]...)},
		{"recovery id without offset", func() []byte {
			blob := bytes.Clone(valid)
			blob[64] -= 27
			return blob
		}()},
		{"high s", highS()},
		{"zero signature", make([]byte, 130)},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.ErrorIs(t, Verify(digest, tc.blob, owners(signers...)...), ErrInvalidAuthorization)
		})
	}
	require.ErrorIs(t, Verify(digest, nil), ErrInvalidAuthorization)
}

func TestParse(t *testing.T) {
	digest := crypto.Keccak256Hash([]byte("transaction"))
	signers := newSigners(t, 3)
	blob := sign(t, digest, signers...)
	ms := New(&SpawnArguments{Owners: owners(signers...)})
	require.Equal(t, 3, ms.Required())

	sigs, err := ms.Parse(blob)
	require.NoError(t, err)
	require.Len(t, sigs, 3)
	for i, part := range sigs {
		require.Equal(t, uint8(i), part.Ref)
		require.Equal(t, blob[i*65:(i+1)*65], part.Sig[:])
	}
	require.Contains(t, (&SpawnArguments{Owners: owners(signers...)}).String(), "required=3")
}

func TestParseTooManyOwners(t *testing.T) {
	ms := New(&SpawnArguments{Owners: make([]common.Address, MaxOwners+1)})
	_, err := ms.Parse(make([]byte, (MaxOwners+1)*65))
	require.ErrorIs(t, err, ErrInvalidAuthorization)

	ms = New(&SpawnArguments{Owners: make([]common.Address, MaxOwners)})
	sigs, err := ms.Parse(make([]byte, MaxOwners*65))
	require.NoError(t, err)
	require.Equal(t, uint8(MaxOwners-1), sigs[len(sigs)-1].Ref)
}
