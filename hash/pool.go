package hash

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// pool amortizes allocations of keccak states.
var pool = &sync.Pool{
	New: func() any {
		return crypto.NewKeccakState()
	},
}

// GetKeccak will get a keccak state from the pool. The state is reset.
func GetKeccak() crypto.KeccakState {
	h := pool.Get().(crypto.KeccakState)
	h.Reset()
	return h
}

// PutKeccak returns the state back to the pool.
func PutKeccak(h crypto.KeccakState) {
	pool.Put(h)
}

// Keccak256 computes keccak256 over the concatenation of chunks.
func Keccak256(chunks ...[]byte) (rst common.Hash) {
	h := GetKeccak()
	defer PutKeccak(h)
	for _, chunk := range chunks {
		h.Write(chunk)
	}
	h.Read(rst[:])
	return rst
}
