package artifact

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var (
	owner1 = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	owner2 = common.HexToAddress("0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF")
	owner3 = common.HexToAddress("0x6813Eb9362372EEF6200f3b1dbC3f819671cBA69")
)

func testBytecode() []byte {
	code := make([]byte, 96)
	for i := range code {
		code[i] = byte(i)
	}
	return code
}

func testArtifact(bytecode []byte) []byte {
	return []byte(fmt.Sprintf(`{
  "_format": "hh-zksolc-artifact-1",
  "contractName": "TwoUserMultisig",
  "sourceName": "contracts/TwoUserMultisig.sol",
  "abi": [
    {"type": "constructor", "inputs": [{"name": "_owner1", "type": "address"}], "stateMutability": "nonpayable"},
    {"type": "function", "name": "owner1", "inputs": [], "outputs": [{"name": "", "type": "address"}], "stateMutability": "view"}
  ],
  "bytecode": "%s",
  "deployedBytecode": "%s",
  "factoryDeps": {
    "0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc": "contracts/TwoUserMultisig.sol:TwoUserMultisig"
  }
}`, hexutil.Encode(bytecode), hexutil.Encode(bytecode)))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/artifacts/multisig.json", testArtifact(testBytecode()), 0o600))

	art, err := Load(fs, "/artifacts/multisig.json")
	require.NoError(t, err)
	require.Equal(t, "TwoUserMultisig", art.ContractName)
	require.Equal(t, "contracts/TwoUserMultisig.sol", art.SourceName)
	require.Equal(t, testBytecode(), art.Bytecode)
	require.Equal(t,
		common.HexToHash("0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc"),
		art.BytecodeHash,
	)
	require.Equal(t, "contracts/TwoUserMultisig.sol:TwoUserMultisig", art.FactoryDeps[art.BytecodeHash])
	require.Contains(t, art.ABI.Methods, "owner1")
	require.Len(t, art.ABI.Constructor.Inputs, 1)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/none.json")
	require.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	for _, tc := range []struct {
		desc string
		data []byte
	}{
		{"not json", []byte("{")},
		{"missing bytecode", []byte(`{"contractName": "A", "abi": []}`)},
		{"empty name", []byte(`{"contractName": "", "abi": [], "bytecode": "0x"}`)},
		{"unaligned bytecode", []byte(`{"contractName": "A", "abi": [], "bytecode": "0x0102"}`)},
		{"unknown abi entry", []byte(`{"contractName": "A", "abi": [{"type": "method"}], "bytecode": "0x"}`)},
		{"even number of words", testArtifact(make([]byte, 64))},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Parse(tc.data)
			require.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.json", testArtifact(testBytecode()), 0o600))

	cache, err := NewCache(fs, 2)
	require.NoError(t, err)
	first, err := cache.Get("a.json")
	require.NoError(t, err)

	// loaded once, the file is not read again
	require.NoError(t, fs.Remove("a.json"))
	second, err := cache.Get("a.json")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, cache.Len())

	_, err = cache.Get("b.json")
	require.Error(t, err)
	require.Equal(t, 1, cache.Len())
}

func TestFactoryMethods(t *testing.T) {
	factory := FactoryABI()

	for _, tc := range []struct {
		owners   int
		selector string
	}{
		{1, "0x1bb64f61"},
		{2, "0x76fb8b65"},
	} {
		method, err := DeployAccountMethod(factory, tc.owners)
		require.NoError(t, err)
		require.Equal(t, tc.selector, hexutil.Encode(method.ID))
	}
	_, err := DeployAccountMethod(factory, 4)
	require.ErrorIs(t, err, ErrUnsupportedOwners)
	_, err = DeployAccountMethod(factory, 0)
	require.ErrorIs(t, err, ErrUnsupportedOwners)

	data, err := PackBytecodeHash(factory)
	require.NoError(t, err)
	require.Equal(t, "0xc795c913", hexutil.Encode(data))
}

func TestPackDeployAccount(t *testing.T) {
	factory := FactoryABI()
	salt := common.Hash{31: 1}

	data, err := PackDeployAccount(factory, salt, owner1)
	require.NoError(t, err)
	expected := append(hexutil.MustDecode("0x1bb64f61"), salt.Bytes()...)
	expected = append(expected, common.LeftPadBytes(owner1.Bytes(), 32)...)
	require.Equal(t, expected, data)

	for _, owners := range [][]common.Address{
		{owner1},
		{owner1, owner2},
		{owner3, owner2, owner1},
	} {
		data, err := PackDeployAccount(factory, salt, owners...)
		require.NoError(t, err)
		require.Len(t, data, 4+32*(len(owners)+1))

		gotSalt, gotOwners, err := UnpackDeployAccount(factory, data)
		require.NoError(t, err)
		require.Equal(t, salt, gotSalt)
		require.Equal(t, owners, gotOwners)
	}

	_, err = PackDeployAccount(factory, salt, owner1, owner2, owner3, owner1)
	require.ErrorIs(t, err, ErrUnsupportedOwners)

	_, _, err = UnpackDeployAccount(factory, []byte{1})
	require.Error(t, err)
	call, err := PackBytecodeHash(factory)
	require.NoError(t, err)
	_, _, err = UnpackDeployAccount(factory, call)
	require.Error(t, err)
}

func TestUnpackBytecodeHash(t *testing.T) {
	factory := FactoryABI()
	expected := common.HexToHash("0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc")
	got, err := UnpackBytecodeHash(factory, expected.Bytes())
	require.NoError(t, err)
	require.Equal(t, expected, got)

	_, err = UnpackBytecodeHash(factory, bytes.Repeat([]byte{1}, 5))
	require.Error(t, err)
}
