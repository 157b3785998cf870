package signing

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interfaces.go

// Signer is a capability to sign a 32-byte digest with a single key.
//
// Digest is signed as is, without any message prefix. The signature is r||s||v
// where v is 27 + recovery id.
type Signer interface {
	Address() common.Address
	SignDigest(ctx context.Context, digest common.Hash) ([]byte, error)
}

// Keyring resolves owner address to the signing capability.
type Keyring interface {
	Signer(owner common.Address) (Signer, bool)
}
