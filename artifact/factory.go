package artifact

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// MethodDeployAccount deploys the account with owners at create2 address.
	MethodDeployAccount = "deployAccount"
	// MethodAABytecodeHash returns the bytecode hash of the accounts deployed by the factory.
	MethodAABytecodeHash = "aaBytecodeHash"
)

//go:embed factory.abi.json
var factoryABI string

// ErrUnsupportedOwners is returned if the factory has no deploy method for the number of owners.
var ErrUnsupportedOwners = errors.New("unsupported number of owners")

// FactoryABI returns the abi of the account factory that is used when no artifact is supplied.
func FactoryABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(factoryABI))
	if err != nil {
		panic(err) // embedded abi is static
	}
	return parsed
}

// DeployAccountMethod selects the deploy method that accepts salt and n owners.
func DeployAccountMethod(factory abi.ABI, n int) (abi.Method, error) {
	for _, method := range factory.Methods {
		if method.RawName != MethodDeployAccount || len(method.Inputs) != n+1 {
			continue
		}
		if method.Inputs[0].Type.T != abi.FixedBytesTy || method.Inputs[0].Type.Size != common.HashLength {
			continue
		}
		match := true
		for _, input := range method.Inputs[1:] {
			if input.Type.T != abi.AddressTy {
				match = false
				break
			}
		}
		if match {
			return method, nil
		}
	}
	return abi.Method{}, fmt.Errorf("%w: factory has no %s for %d owners", ErrUnsupportedOwners, MethodDeployAccount, n)
}

// PackDeployAccount encodes the call to deploy the account.
func PackDeployAccount(factory abi.ABI, salt common.Hash, owners ...common.Address) ([]byte, error) {
	method, err := DeployAccountMethod(factory, len(owners))
	if err != nil {
		return nil, err
	}
	args := make([]any, 0, len(owners)+1)
	args = append(args, salt)
	for _, owner := range owners {
		args = append(args, owner)
	}
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method.Sig, err)
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// UnpackDeployAccount decodes salt and owners from the deploy call.
func UnpackDeployAccount(factory abi.ABI, data []byte) (common.Hash, []common.Address, error) {
	if len(data) < 4 {
		return common.Hash{}, nil, fmt.Errorf("call data too short: %d", len(data))
	}
	method, err := factory.MethodById(data[:4])
	if err != nil {
		return common.Hash{}, nil, err
	}
	if method.RawName != MethodDeployAccount {
		return common.Hash{}, nil, fmt.Errorf("unexpected method %s", method.Sig)
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Hash{}, nil, fmt.Errorf("unpack %s: %w", method.Sig, err)
	}
	salt, ok := values[0].([common.HashLength]byte)
	if !ok {
		return common.Hash{}, nil, fmt.Errorf("unexpected salt type %T", values[0])
	}
	owners := make([]common.Address, 0, len(values)-1)
	for _, v := range values[1:] {
		owner, ok := v.(common.Address)
		if !ok {
			return common.Hash{}, nil, fmt.Errorf("unexpected owner type %T", v)
		}
		owners = append(owners, owner)
	}
	return salt, owners, nil
}

// PackBytecodeHash encodes the call that reads bytecode hash of the account.
func PackBytecodeHash(factory abi.ABI) ([]byte, error) {
	return factory.Pack(MethodAABytecodeHash)
}

// UnpackBytecodeHash decodes the result of aaBytecodeHash call.
func UnpackBytecodeHash(factory abi.ABI, data []byte) (common.Hash, error) {
	values, err := factory.Unpack(MethodAABytecodeHash, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("unpack %s: %w", MethodAABytecodeHash, err)
	}
	if len(values) != 1 {
		return common.Hash{}, fmt.Errorf("unexpected %s result with %d values", MethodAABytecodeHash, len(values))
	}
	h, ok := values[0].([common.HashLength]byte)
	if !ok {
		return common.Hash{}, fmt.Errorf("unexpected %s result type %T", MethodAABytecodeHash, values[0])
	}
	return h, nil
}
