package core

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInvalidInputLength is returned when address derivation inputs have wrong size.
	ErrInvalidInputLength = errors.New("invalid input length")
	// ErrSigningKeyUnavailable is returned when an owner key is not present.
	ErrSigningKeyUnavailable = errors.New("signing key unavailable")
	// ErrSerialization is returned when the envelope can't be encoded or decoded.
	ErrSerialization = errors.New("serialization error")
	// ErrSubmission is returned on transport or rpc failure during broadcast.
	// The caller may retry after rebuilding the envelope from fresh chain state.
	ErrSubmission = errors.New("submission error")
	// ErrExecutionReverted is returned when the chain rejected a broadcasted transaction.
	ErrExecutionReverted = errors.New("execution reverted")

	// ErrStageOrder is returned on a transition that doesn't move envelope one stage forward.
	ErrStageOrder = errors.New("invalid stage transition")
	// ErrEnvelopeMutated is returned if envelope fields changed after the digest was computed.
	ErrEnvelopeMutated = errors.New("envelope mutated after digest was computed")
)

// StageError attaches the name of the failed stage to an error.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage returns nil if err is nil, otherwise err tagged with the stage.
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// RevertError is returned when a transaction was included but its execution failed.
type RevertError struct {
	TxHash common.Hash
	// Reason is empty if the chain didn't report it.
	Reason string
}

func (e *RevertError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("tx %s: %v", e.TxHash, ErrExecutionReverted)
	}
	return fmt.Sprintf("tx %s: %v: %s", e.TxHash, ErrExecutionReverted, e.Reason)
}

func (e *RevertError) Unwrap() error {
	return ErrExecutionReverted
}
