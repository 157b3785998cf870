package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aamultisig/go-aamultisig/aa/sdk/multisig"
	"github.com/aamultisig/go-aamultisig/artifact"
)

type addressReport struct {
	Address          common.Address   `json:"address"`
	Factory          common.Address   `json:"factory"`
	Salt             common.Hash      `json:"salt"`
	BytecodeHash     common.Hash      `json:"bytecodeHash"`
	Owners           []common.Address `json:"owners"`
	ConstructorInput hexutil.Bytes    `json:"constructorInput"`
}

func newAddressCmd() *cobra.Command {
	var (
		owners       []string
		bytecodeHash string
	)
	cmd := &cobra.Command{
		Use:   "address",
		Short: "derive the account address without contacting the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, afero.NewOsFs())
			if err != nil {
				return err
			}
			if len(owners) == 0 {
				return errors.New("at least one --owner is required")
			}
			report := addressReport{Factory: cfg.Factory, Salt: cfg.Salt}
			for _, owner := range owners {
				if !common.IsHexAddress(owner) {
					return fmt.Errorf("invalid owner address %q", owner)
				}
				report.Owners = append(report.Owners, common.HexToAddress(owner))
			}
			switch {
			case bytecodeHash != "":
				raw, err := hexutil.Decode(bytecodeHash)
				if err != nil || len(raw) != common.HashLength {
					return fmt.Errorf("invalid bytecode hash %q", bytecodeHash)
				}
				report.BytecodeHash = common.BytesToHash(raw)
			case cfg.ArtifactPath != "":
				art, err := artifact.Load(artifactFs, cfg.ArtifactPath)
				if err != nil {
					return err
				}
				report.BytecodeHash = art.BytecodeHash
			default:
				return errors.New("either --bytecode-hash or --artifact of the account contract is required")
			}
			report.ConstructorInput, err = multisig.ConstructorInput(report.Owners...)
			if err != nil {
				return err
			}
			report.Address, err = multisig.Address(report.Factory, report.BytecodeHash, report.Salt, report.Owners...)
			if err != nil {
				return err
			}
			return writeJSON(cmd, report)
		},
	}
	cmd.Flags().StringSliceVar(&owners, "owner", nil, "owner of the account, in signature order")
	cmd.Flags().StringVar(&bytecodeHash, "bytecode-hash", "", "versioned hash of the account bytecode")
	return cmd
}
