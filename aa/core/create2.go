package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/aamultisig/go-aamultisig/hash"
)

// create2Prefix is keccak256("zksyncCreate2").
var create2Prefix = crypto.Keccak256([]byte("zksyncCreate2"))

// Create2Address computes the address of a contract deployed by the factory with CREATE2.
//
// The result matches address computed by the deployer system contract:
// keccak256(prefix || pad32(factory) || salt || bytecodeHash || keccak256(input))[12:].
func Create2Address(factory, bytecodeHash, salt, input []byte) (common.Address, error) {
	if len(factory) != common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: factory %d", ErrInvalidInputLength, len(factory))
	}
	if len(bytecodeHash) != common.HashLength {
		return common.Address{}, fmt.Errorf("%w: bytecode hash %d", ErrInvalidInputLength, len(bytecodeHash))
	}
	if len(salt) != common.HashLength {
		return common.Address{}, fmt.Errorf("%w: salt %d", ErrInvalidInputLength, len(salt))
	}
	return ComputeAddress(
		common.BytesToAddress(factory),
		common.BytesToHash(bytecodeHash),
		common.BytesToHash(salt),
		input,
	), nil
}

// ComputeAddress is Create2Address for inputs with fixed sizes.
func ComputeAddress(factory common.Address, bytecodeHash, salt common.Hash, input []byte) common.Address {
	h := hash.Keccak256(
		create2Prefix,
		common.LeftPadBytes(factory.Bytes(), common.HashLength),
		salt.Bytes(),
		bytecodeHash.Bytes(),
		crypto.Keccak256(input),
	)
	return common.BytesToAddress(h[12:])
}
