package core

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Stage of the envelope lifecycle. Transitions are strictly forward.
type Stage uint8

const (
	Unsigned Stage = iota
	DigestComputed
	Authorized
	Serialized
	Submitted
	Included
	Rejected
)

func (s Stage) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case DigestComputed:
		return "digest_computed"
	case Authorized:
		return "authorized"
	case Serialized:
		return "serialized"
	case Submitted:
		return "submitted"
	case Included:
		return "included"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Status is a terminal outcome reported by the chain.
type Status = Stage

func (e *Envelope) advance(from, to Stage) error {
	if e.stage != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrStageOrder, from, to, e.stage)
	}
	e.stage = to
	return nil
}

// SignedDigest computes the digest owners sign and moves the envelope to DigestComputed.
// On later stages it returns the cached digest.
func (e *Envelope) SignedDigest() (common.Hash, error) {
	if e.stage != Unsigned {
		return e.digest, nil
	}
	digest, err := ComputeDigest(e)
	if err != nil {
		return common.Hash{}, err
	}
	e.digest = digest
	e.stage = DigestComputed
	return digest, nil
}

// Authorize attaches authorization blob into the custom signature field.
func (e *Envelope) Authorize(blob []byte) error {
	if len(blob) == 0 {
		return fmt.Errorf("%w: empty authorization", ErrSerialization)
	}
	if err := e.checkDigest(); err != nil {
		return err
	}
	if err := e.advance(DigestComputed, Authorized); err != nil {
		return err
	}
	e.Meta.CustomSignature = bytes.Clone(blob)
	e.snapshotAuthorization()
	return nil
}

// AttachSignature attaches top-level signature for externally owned senders.
func (e *Envelope) AttachSignature(sig []byte) error {
	if err := validateSignature(sig); err != nil {
		return err
	}
	if err := e.checkDigest(); err != nil {
		return err
	}
	if err := e.advance(DigestComputed, Authorized); err != nil {
		return err
	}
	e.Signature = bytes.Clone(sig)
	e.snapshotAuthorization()
	return nil
}

// Serialize encodes the authorized envelope into wire format.
func (e *Envelope) Serialize() ([]byte, error) {
	if e.stage != Authorized {
		return nil, fmt.Errorf("%w: serialize in stage %s", ErrStageOrder, e.stage)
	}
	if err := e.checkDigest(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if !bytes.Equal(e.Signature, e.signature) || !bytes.Equal(e.Meta.CustomSignature, e.customSignature) {
		return nil, fmt.Errorf("%w: %w: signature changed after authorization", ErrSerialization, ErrEnvelopeMutated)
	}
	raw, err := Encode(e)
	if err != nil {
		return nil, err
	}
	e.stage = Serialized
	return raw, nil
}

// MarkSubmitted records that the serialized envelope was handed to the network.
func (e *Envelope) MarkSubmitted() error {
	return e.advance(Serialized, Submitted)
}

// Finalize records terminal status of the submitted envelope.
func (e *Envelope) Finalize(status Status) error {
	if status != Included && status != Rejected {
		return fmt.Errorf("%w: %s is not terminal", ErrStageOrder, status)
	}
	return e.advance(Submitted, status)
}

func (e *Envelope) snapshotAuthorization() {
	e.signature = bytes.Clone(e.Signature)
	e.customSignature = bytes.Clone(e.Meta.CustomSignature)
}

func (e *Envelope) checkDigest() error {
	if e.stage < DigestComputed {
		return nil
	}
	digest, err := ComputeDigest(e)
	if err != nil {
		return err
	}
	if digest != e.digest {
		return ErrEnvelopeMutated
	}
	return nil
}

func validateSignature(sig []byte) error {
	if len(sig) != SignatureSize {
		return fmt.Errorf("%w: signature size %d", ErrSerialization, len(sig))
	}
	if v := sig[SignatureSize-1]; v != 27 && v != 28 {
		return fmt.Errorf("%w: signature v %d", ErrSerialization, v)
	}
	return nil
}
