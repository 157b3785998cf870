// Package artifact loads compiled contracts produced by the zksolc hardhat plugin.
package artifact

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/aamultisig/go-aamultisig/aa/core"
)

const schemaFile = "schema.json"

//go:embed schema.json
var Schema string

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidArtifact is returned if the artifact doesn't match the schema or can't be decoded.
var ErrInvalidArtifact = errors.New("invalid artifact")

// Artifact is a compiled contract.
type Artifact struct {
	ContractName string
	SourceName   string
	ABI          abi.ABI
	Bytecode     []byte
	// BytecodeHash is the versioned hash the chain uses to refer to the bytecode.
	BytecodeHash common.Hash
	// FactoryDeps maps bytecode hash of the dependency to its contract name.
	FactoryDeps map[common.Hash]string
}

type encoded struct {
	Format       string              `json:"_format"`
	ContractName string              `json:"contractName"`
	SourceName   string              `json:"sourceName"`
	ABI          jsoniter.RawMessage `json:"abi"`
	Bytecode     hexutil.Bytes       `json:"bytecode"`
	FactoryDeps  map[string]string   `json:"factoryDeps"`
}

// Load reads the artifact file from fs.
func Load(fs afero.Fs, path string) (*Artifact, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	art, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return art, nil
}

// Parse decodes and validates the artifact.
func Parse(data []byte) (*Artifact, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	var enc encoded
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrInvalidArtifact, err)
	}
	parsed, err := abi.JSON(bytes.NewReader(enc.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: abi of %s: %w", ErrInvalidArtifact, enc.ContractName, err)
	}
	art := &Artifact{
		ContractName: enc.ContractName,
		SourceName:   enc.SourceName,
		ABI:          parsed,
		Bytecode:     enc.Bytecode,
		FactoryDeps:  make(map[common.Hash]string, len(enc.FactoryDeps)),
	}
	if len(art.Bytecode) > 0 {
		art.BytecodeHash, err = core.HashBytecode(art.Bytecode)
		if err != nil {
			return nil, fmt.Errorf("%w: bytecode of %s: %w", ErrInvalidArtifact, enc.ContractName, err)
		}
	}
	for h, name := range enc.FactoryDeps {
		art.FactoryDeps[common.HexToHash(h)] = name
	}
	return art, nil
}

// ValidateSchema checks that data is a json document matching the artifact schema.
func ValidateSchema(data []byte) error {
	sch, err := jsonschema.CompileString(schemaFile, Schema)
	if err != nil {
		return fmt.Errorf("compile artifact json schema: %w", err)
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: unmarshal: %w", ErrInvalidArtifact, err)
	}
	if err = sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return nil
}
