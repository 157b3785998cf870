package multisig

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/templates/multisig"
)

var addressType, _ = abi.NewType("address", "", nil)

// ConstructorInput encodes owners as constructor arguments of the account.
// Every owner is a static address argument, the order is the declaration order.
func ConstructorInput(owners ...common.Address) ([]byte, error) {
	if len(owners) == 0 {
		return nil, errors.New("account without owners")
	}
	if len(owners) > multisig.MaxOwners {
		return nil, fmt.Errorf("%d owners, at most %d are supported", len(owners), multisig.MaxOwners)
	}
	args := make(abi.Arguments, len(owners))
	values := make([]any, len(owners))
	for i, owner := range owners {
		args[i] = abi.Argument{Type: addressType}
		values[i] = owner
	}
	input, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("pack owners: %w", err)
	}
	return input, nil
}

// Address computes the address of the account deployed by the factory.
func Address(factory common.Address, bytecodeHash, salt common.Hash, owners ...common.Address) (common.Address, error) {
	input, err := ConstructorInput(owners...)
	if err != nil {
		return common.Address{}, err
	}
	return core.Create2Address(factory.Bytes(), bytecodeHash.Bytes(), salt.Bytes(), input)
}
