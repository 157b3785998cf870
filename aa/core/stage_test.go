package core

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeLifecycle(t *testing.T) {
	env := testEnvelope()
	require.Equal(t, Unsigned, env.Stage())

	digest, err := env.SignedDigest()
	require.NoError(t, err)
	require.Equal(t, DigestComputed, env.Stage())
	expect, err := ComputeDigest(testEnvelope())
	require.NoError(t, err)
	require.Equal(t, expect, digest)

	blob := bytes.Repeat([]byte{0xab}, SignatureSize)
	require.NoError(t, env.Authorize(blob))
	require.Equal(t, Authorized, env.Stage())
	blob[0] = 0
	require.Equal(t, byte(0xab), env.Meta.CustomSignature[0], "blob must be copied")

	cached, err := env.SignedDigest()
	require.NoError(t, err)
	require.Equal(t, digest, cached)

	raw, err := env.Serialize()
	require.NoError(t, err)
	require.Equal(t, Serialized, env.Stage())
	encoded, err := Encode(env)
	require.NoError(t, err)
	require.Equal(t, encoded, raw)

	require.NoError(t, env.MarkSubmitted())
	require.Equal(t, Submitted, env.Stage())
	require.NoError(t, env.Finalize(Included))
	require.Equal(t, Included, env.Stage())

	require.ErrorIs(t, env.Finalize(Rejected), ErrStageOrder)
	require.ErrorIs(t, env.MarkSubmitted(), ErrStageOrder)
}

func TestEnvelopeNoBackwardTransitions(t *testing.T) {
	env := testEnvelope()
	require.ErrorIs(t, env.Authorize([]byte{1}), ErrStageOrder)
	_, err := env.Serialize()
	require.ErrorIs(t, err, ErrStageOrder)
	require.ErrorIs(t, env.MarkSubmitted(), ErrStageOrder)
	require.ErrorIs(t, env.Finalize(Included), ErrStageOrder)

	_, err = env.SignedDigest()
	require.NoError(t, err)
	require.NoError(t, env.Authorize([]byte{1}))
	require.ErrorIs(t, env.Authorize([]byte{2}), ErrStageOrder)
	require.ErrorIs(t, env.AttachSignature(append(make([]byte, 64), 27)), ErrStageOrder)
	require.Equal(t, []byte{1}, env.Meta.CustomSignature)

	_, err = env.Serialize()
	require.NoError(t, err)
	_, err = env.Serialize()
	require.ErrorIs(t, err, ErrStageOrder)
	require.NoError(t, env.MarkSubmitted())
	require.ErrorIs(t, env.Finalize(Serialized), ErrStageOrder)
	require.NoError(t, env.Finalize(Rejected))
}

func TestEnvelopeMutationAfterAuthorization(t *testing.T) {
	env := testEnvelope()
	_, err := env.SignedDigest()
	require.NoError(t, err)
	require.NoError(t, env.Authorize([]byte{1}))

	env.Nonce++
	_, err = env.Serialize()
	require.ErrorIs(t, err, ErrSerialization)
	require.ErrorIs(t, err, ErrEnvelopeMutated)
	require.Equal(t, Authorized, env.Stage())

	env.Nonce--
	_, err = env.Serialize()
	require.NoError(t, err)
}

func TestEnvelopeSignatureReplacedAfterAuthorization(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		authorize func(*Envelope) error
		replace   func(*Envelope)
	}{
		{
			desc:      "custom signature replaced",
			authorize: func(env *Envelope) error { return env.Authorize([]byte{1}) },
			replace:   func(env *Envelope) { env.Meta.CustomSignature = []byte{2} },
		},
		{
			desc:      "custom signature modified in place",
			authorize: func(env *Envelope) error { return env.Authorize([]byte{1}) },
			replace:   func(env *Envelope) { env.Meta.CustomSignature[0] = 2 },
		},
		{
			desc:      "signature added to account envelope",
			authorize: func(env *Envelope) error { return env.Authorize([]byte{1}) },
			replace:   func(env *Envelope) { env.Signature = append(make([]byte, 64), 27) },
		},
		{
			desc:      "top-level signature replaced",
			authorize: func(env *Envelope) error { return env.AttachSignature(append(make([]byte, 64), 27)) },
			replace:   func(env *Envelope) { env.Signature = append(make([]byte, 64), 28) },
		},
		{
			desc:      "custom signature added to signed envelope",
			authorize: func(env *Envelope) error { return env.AttachSignature(append(make([]byte, 64), 27)) },
			replace:   func(env *Envelope) { env.Meta.CustomSignature = []byte{1} },
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			env := testEnvelope()
			_, err := env.SignedDigest()
			require.NoError(t, err)
			require.NoError(t, tc.authorize(env))

			tc.replace(env)
			_, err = env.Serialize()
			require.ErrorIs(t, err, ErrSerialization)
			require.ErrorIs(t, err, ErrEnvelopeMutated)
			require.Equal(t, Authorized, env.Stage())
		})
	}
}

func TestEnvelopeMutationBeforeAuthorization(t *testing.T) {
	env := testEnvelope()
	_, err := env.SignedDigest()
	require.NoError(t, err)
	env.Value = big.NewInt(1)
	require.ErrorIs(t, env.Authorize([]byte{1}), ErrEnvelopeMutated)
	require.ErrorIs(t, env.AttachSignature(append(make([]byte, 64), 27)), ErrEnvelopeMutated)
	require.Equal(t, DigestComputed, env.Stage())
}

func TestAttachSignature(t *testing.T) {
	env := testEnvelope()
	_, err := env.SignedDigest()
	require.NoError(t, err)
	require.ErrorIs(t, env.AttachSignature(make([]byte, 64)), ErrSerialization)
	require.ErrorIs(t, env.AttachSignature(make([]byte, SignatureSize)), ErrSerialization)
	require.ErrorIs(t, env.Authorize(nil), ErrSerialization)

	sig := append(bytes.Repeat([]byte{3}, 64), 28)
	require.NoError(t, env.AttachSignature(sig))
	require.Equal(t, sig, env.Signature)
	require.Equal(t, Authorized, env.Stage())
}

func TestStageError(t *testing.T) {
	require.NoError(t, WrapStage("build", nil))
	err := WrapStage("submit", &RevertError{Reason: "out of gas"})
	require.ErrorIs(t, err, ErrExecutionReverted)
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, "submit", stageErr.Stage)
	var revert *RevertError
	require.True(t, errors.As(err, &revert))
	require.Equal(t, "out of gas", revert.Reason)
	require.Contains(t, err.Error(), "out of gas")
}
