package signing

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Keys is an in-memory Keyring.
type Keys struct {
	mu      sync.RWMutex
	signers map[common.Address]Signer
}

// NewKeys creates keyring with signers.
func NewKeys(signers ...Signer) *Keys {
	k := &Keys{signers: make(map[common.Address]Signer, len(signers))}
	for _, s := range signers {
		k.signers[s.Address()] = s
	}
	return k
}

// Add signer to the keyring.
func (k *Keys) Add(s Signer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.signers[s.Address()] = s
}

// Signer returns signer for the owner.
func (k *Keys) Signer(owner common.Address) (Signer, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.signers[owner]
	return s, ok
}

// Len returns number of signers in the keyring.
func (k *Keys) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.signers)
}
