package signing

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureSize is the size of r||s||v signature.
const SignatureSize = crypto.SignatureLength

// ErrInvalidSignature is returned for signatures that can't be recovered.
var ErrInvalidSignature = errors.New("invalid signature")

// Recover returns the address that signed the raw digest.
func Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureSize {
		return common.Address{}, fmt.Errorf("%w: size %d", ErrInvalidSignature, len(sig))
	}
	v := sig[64]
	if v != 27 && v != 28 {
		return common.Address{}, fmt.Errorf("%w: v %d", ErrInvalidSignature, v)
	}
	normalized := make([]byte, SignatureSize)
	copy(normalized, sig)
	normalized[64] = v - 27
	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
