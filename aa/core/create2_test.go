package core

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	testFactory = common.HexToAddress("0x50BFb217F72A4e00a65040d64120002C7798A393")
	// addresses of private keys 1, 2 and 3.
	testOwner1 = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	testOwner2 = common.HexToAddress("0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF")
	testOwner3 = common.HexToAddress("0x6813Eb9362372EEF6200f3b1dbC3f819671cBA69")
)

func testBytecode() []byte {
	code := make([]byte, 96)
	for i := range code {
		code[i] = byte(i)
	}
	return code
}

func encodeOwners(owners ...common.Address) []byte {
	var input []byte
	for _, owner := range owners {
		input = append(input, common.LeftPadBytes(owner.Bytes(), 32)...)
	}
	return input
}

func TestCreate2Address(t *testing.T) {
	bytecodeHash, err := HashBytecode(testBytecode())
	require.NoError(t, err)
	for _, tc := range []struct {
		desc   string
		salt   common.Hash
		owners []common.Address
		expect common.Address
	}{
		{
			desc:   "single owner",
			owners: []common.Address{testOwner1},
			expect: common.HexToAddress("0xe87ebca7e6c56a09769feec4f30daaea241e23e8"),
		},
		{
			desc:   "two owners",
			owners: []common.Address{testOwner1, testOwner2},
			expect: common.HexToAddress("0x614f01360a3af4c26649dbe4e585f4928153f052"),
		},
		{
			desc:   "non zero salt",
			salt:   common.BigToHash(common.Big1),
			owners: []common.Address{testOwner1},
			expect: common.HexToAddress("0x4d44966e16c256b6d896435b25d24a40de6136f4"),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			addr, err := Create2Address(
				testFactory.Bytes(), bytecodeHash.Bytes(), tc.salt.Bytes(), encodeOwners(tc.owners...))
			require.NoError(t, err)
			require.Equal(t, tc.expect, addr)
			require.Equal(t, tc.expect, ComputeAddress(testFactory, bytecodeHash, tc.salt, encodeOwners(tc.owners...)))
		})
	}
}

func TestCreate2AddressDeterministic(t *testing.T) {
	bytecodeHash, err := HashBytecode(testBytecode())
	require.NoError(t, err)
	input := encodeOwners(testOwner1, testOwner2)
	first, err := Create2Address(testFactory.Bytes(), bytecodeHash.Bytes(), make([]byte, 32), input)
	require.NoError(t, err)

	// interleave with other inputs to make sure there is no hidden state.
	for i := range 10 {
		_, err := Create2Address(testFactory.Bytes(), bytecodeHash.Bytes(), common.BigToHash(common.Big2).Bytes(),
			encodeOwners(testOwner3))
		require.NoError(t, err)
		again, err := Create2Address(testFactory.Bytes(), bytecodeHash.Bytes(), make([]byte, 32), input)
		require.NoError(t, err)
		require.Equal(t, first, again, "iteration %d", i)
	}
}

func TestCreate2AddressInvalidLength(t *testing.T) {
	hash32 := make([]byte, 32)
	for _, tc := range []struct {
		desc                string
		factory, hash, salt []byte
	}{
		{desc: "short factory", factory: make([]byte, 19), hash: hash32, salt: hash32},
		{desc: "padded factory", factory: make([]byte, 32), hash: hash32, salt: hash32},
		{desc: "short hash", factory: testFactory.Bytes(), hash: make([]byte, 31), salt: hash32},
		{desc: "long salt", factory: testFactory.Bytes(), hash: hash32, salt: make([]byte, 33)},
		{desc: "empty salt", factory: testFactory.Bytes(), hash: hash32},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Create2Address(tc.factory, tc.hash, tc.salt, nil)
			require.ErrorIs(t, err, ErrInvalidInputLength)
		})
	}
}
