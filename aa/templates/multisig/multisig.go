package multisig

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/signing"
)

// ErrInvalidAuthorization is returned if the authorization blob doesn't pass account checks.
var ErrInvalidAuthorization = errors.New("invalid authorization")

// MultiSig N/N account. Same checks are executed by the account contract
// when the bootloader validates the transaction.
type MultiSig struct {
	Owners []common.Address
}

// New returns account with owners in declaration order.
func New(args *SpawnArguments) *MultiSig {
	return &MultiSig{Owners: args.Owners}
}

// Required returns the number of signatures in a valid blob.
func (ms *MultiSig) Required() int {
	return len(ms.Owners)
}

// Parse splits the blob into parts.
func (ms *MultiSig) Parse(blob []byte) (Signatures, error) {
	if len(ms.Owners) == 0 {
		return nil, fmt.Errorf("%w: account without owners", ErrInvalidAuthorization)
	}
	if len(ms.Owners) > MaxOwners {
		return nil, fmt.Errorf("%w: %d owners, at most %d are supported", ErrInvalidAuthorization, len(ms.Owners), MaxOwners)
	}
	if expect := len(ms.Owners) * core.SignatureSize; len(blob) != expect {
		return nil, fmt.Errorf("%w: blob length %d, expected %d", ErrInvalidAuthorization, len(blob), expect)
	}
	sigs := make(Signatures, len(ms.Owners))
	for i := range sigs {
		sigs[i].Ref = uint8(i)
		copy(sigs[i].Sig[:], blob[i*core.SignatureSize:])
	}
	return sigs, nil
}

// Verify that every owner signed the digest, in the owner order.
func (ms *MultiSig) Verify(digest common.Hash, blob []byte) error {
	sigs, err := ms.Parse(blob)
	if err != nil {
		return err
	}
	for _, part := range sigs {
		r := new(big.Int).SetBytes(part.Sig[:32])
		s := new(big.Int).SetBytes(part.Sig[32:64])
		v := part.Sig[64]
		if v != 27 && v != 28 {
			return fmt.Errorf("%w: part %d has v %d", ErrInvalidAuthorization, part.Ref, v)
		}
		if !crypto.ValidateSignatureValues(v-27, r, s, true) {
			return fmt.Errorf("%w: part %d is malleable or out of range", ErrInvalidAuthorization, part.Ref)
		}
		signer, err := signing.Recover(digest, part.Sig[:])
		if err != nil {
			return fmt.Errorf("%w: part %d: %w", ErrInvalidAuthorization, part.Ref, err)
		}
		if owner := ms.Owners[part.Ref]; signer != owner {
			return fmt.Errorf("%w: part %d recovered %s, expected %s",
				ErrInvalidAuthorization, part.Ref, signer.Hex(), owner.Hex())
		}
	}
	return nil
}

// Verify authorization blob for the owners.
func Verify(digest common.Hash, blob []byte, owners ...common.Address) error {
	return New(&SpawnArguments{Owners: owners}).Verify(digest, blob)
}
