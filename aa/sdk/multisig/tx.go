package multisig

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/templates/multisig"
	"github.com/aamultisig/go-aamultisig/signing"
)

// Aggregator is a signature accumulator.
//
// Parts are kept by owner position, the blob lists them in the owner declaration order
// regardless of the order they were added in.
type Aggregator struct {
	digest common.Hash
	owners []common.Address

	mu    sync.Mutex
	parts map[uint8]multisig.Part
}

// NewAggregator creates accumulator for the digest signed by owners.
// Owner positions are part references, so at most multisig.MaxOwners are accepted.
func NewAggregator(digest common.Hash, owners ...common.Address) (*Aggregator, error) {
	if len(owners) > multisig.MaxOwners {
		return nil, fmt.Errorf("%d owners, at most %d are supported", len(owners), multisig.MaxOwners)
	}
	return &Aggregator{
		digest: digest,
		owners: owners,
		parts:  map[uint8]multisig.Part{},
	}, nil
}

// Add signature parts to the accumulator.
func (a *Aggregator) Add(parts ...multisig.Part) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, part := range parts {
		if int(part.Ref) >= len(a.owners) {
			return fmt.Errorf("part ref %d out of range for %d owners", part.Ref, len(a.owners))
		}
		a.parts[part.Ref] = part
	}
	return nil
}

// Part returns signature part from the owner at ref position.
func (a *Aggregator) Part(ref uint8) *multisig.Part {
	a.mu.Lock()
	defer a.mu.Unlock()
	part, exists := a.parts[ref]
	if !exists {
		return nil
	}
	return &part
}

// Missing returns positions of owners that haven't signed yet.
func (a *Aggregator) Missing() []uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var missing []uint8
	for i := range a.owners {
		if _, exists := a.parts[uint8(i)]; !exists {
			missing = append(missing, uint8(i))
		}
	}
	return missing
}

// Sign collects missing parts from the keyring. Owners sign concurrently.
//
// If a key for any of the missing owners is not in the keyring nothing is signed.
func (a *Aggregator) Sign(ctx context.Context, keys signing.Keyring) error {
	missing := a.Missing()
	signers := make([]signing.Signer, len(missing))
	for i, ref := range missing {
		owner := a.owners[ref]
		signer, ok := keys.Signer(owner)
		if !ok {
			return fmt.Errorf("%w: owner %d %s", core.ErrSigningKeyUnavailable, ref, owner.Hex())
		}
		signers[i] = signer
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i, ref := range missing {
		signer := signers[i]
		owner := a.owners[ref]
		eg.Go(func() error {
			sig, err := signer.SignDigest(ctx, a.digest)
			if err != nil {
				return fmt.Errorf("owner %d %s: %w", ref, owner.Hex(), err)
			}
			recovered, err := signing.Recover(a.digest, sig)
			if err != nil {
				return fmt.Errorf("owner %d %s: %w", ref, owner.Hex(), err)
			}
			if recovered != owner {
				return fmt.Errorf("owner %d: signature recovers to %s, expected %s", ref, recovered.Hex(), owner.Hex())
			}
			part := multisig.Part{Ref: ref}
			copy(part.Sig[:], sig)
			return a.Add(part)
		})
	}
	return eg.Wait()
}

// Blob returns concatenated signatures ordered by owner position.
func (a *Aggregator) Blob() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.parts) != len(a.owners) {
		return nil, fmt.Errorf("collected %d out of %d signatures", len(a.parts), len(a.owners))
	}
	sigs := make(multisig.Signatures, 0, len(a.parts))
	for _, part := range a.parts {
		sigs = append(sigs, part)
	}
	sort.Slice(sigs, func(i, j int) bool {
		return sigs[i].Ref < sigs[j].Ref
	})
	buf := bytes.NewBuffer(make([]byte, 0, len(sigs)*core.SignatureSize))
	for _, part := range sigs {
		buf.Write(part.Sig[:])
	}
	return buf.Bytes(), nil
}

// Authorize signs the envelope by every owner and attaches the blob as the custom signature.
func Authorize(ctx context.Context, env *core.Envelope, owners []common.Address, keys signing.Keyring) error {
	digest, err := env.SignedDigest()
	if err != nil {
		return err
	}
	agg, err := NewAggregator(digest, owners...)
	if err != nil {
		return err
	}
	if err := agg.Sign(ctx, keys); err != nil {
		return err
	}
	blob, err := agg.Blob()
	if err != nil {
		return err
	}
	if err := multisig.Verify(digest, blob, owners...); err != nil {
		return err
	}
	return env.Authorize(blob)
}
