package multisig

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/aa/core"
)

// MaxOwners is the largest owner set addressable by a part reference.
const MaxOwners = math.MaxUint8

// SpawnArguments are the constructor arguments of the account.
type SpawnArguments struct {
	Owners []common.Address
}

func (s *SpawnArguments) String() string {
	builder := bytes.NewBuffer(nil)
	builder.WriteString(fmt.Sprintf("required=%d\n", len(s.Owners)))
	for i, owner := range s.Owners {
		builder.WriteString(fmt.Sprintf("%d : %s\n", i, owner.Hex()))
	}
	return builder.String()
}

// Signatures is a collection of parts ordered by owner position.
type Signatures []Part

// Part contains a reference to the owner position and a signature from the owner key.
type Part struct {
	Ref uint8
	Sig [core.SignatureSize]byte
}
