package core

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/hash"
)

const (
	bytecodeVersion = 1
	// maxBytecodeWords is exclusive.
	maxBytecodeWords = 1 << 16
	wordSize         = 32
)

// HashBytecode computes the versioned hash of the contract bytecode.
//
// Layout: version (1 byte), zero (1 byte), big endian length in words (2 bytes)
// and the last 28 bytes of sha256(bytecode).
func HashBytecode(bytecode []byte) (common.Hash, error) {
	if len(bytecode)%wordSize != 0 {
		return common.Hash{}, fmt.Errorf("%w: bytecode length %d is not divisible by %d",
			ErrInvalidInputLength, len(bytecode), wordSize)
	}
	words := len(bytecode) / wordSize
	if words >= maxBytecodeWords {
		return common.Hash{}, fmt.Errorf("%w: bytecode has too many words %d", ErrInvalidInputLength, words)
	}
	if words%2 == 0 {
		return common.Hash{}, fmt.Errorf("%w: bytecode words count %d must be odd", ErrInvalidInputLength, words)
	}
	sum := hash.Sum(bytecode)
	var rst common.Hash
	rst[0] = bytecodeVersion
	binary.BigEndian.PutUint16(rst[2:], uint16(words))
	copy(rst[4:], sum[4:])
	return rst, nil
}
