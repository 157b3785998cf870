package hash

import "github.com/minio/sha256-simd"

// Size is an alias to minio sha256.Size (32 bytes).
const Size = sha256.Size

// Sum computes sha256 over the concatenation of chunks.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	if len(chunks) == 1 {
		return sha256.Sum256(chunks[0])
	}
	h := sha256.New()
	for _, chunk := range chunks {
		h.Write(chunk)
	}
	h.Sum(rst[:0])
	return rst
}
