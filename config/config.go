// Package config loads the deployer configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/aamultisig/go-aamultisig/aa/templates/multisig"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/config/mapstructureutil"
	"github.com/aamultisig/go-aamultisig/deploy"
	"github.com/aamultisig/go-aamultisig/log"
	"github.com/aamultisig/go-aamultisig/sql"
	"github.com/aamultisig/go-aamultisig/submit"
)

const (
	defaultDataDir = "./aadeploy-data"
	// DefaultFactory is the account factory of the zkSync era testnet.
	DefaultFactory = "0x50BFb217F72A4e00a65040d64120002C7798A393"
)

// ErrInvalidConfig is returned if the loaded config can't be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the deployer configuration.
type Config struct {
	Preset string `mapstructure:"preset"`

	Network Network `mapstructure:"network"`
	RPC     RPC     `mapstructure:"rpc"`

	Factory common.Address `mapstructure:"factory"`
	Salt    common.Hash    `mapstructure:"salt"`
	// NextOwners own the account deployed by the multisig. A random key is generated if empty.
	NextOwners []common.Address `mapstructure:"next-owners"`

	deploy.Config `mapstructure:",squash"`

	// KeyFile of the deployer. Required for the run command.
	KeyFile string `mapstructure:"key-file"`
	// OwnerKeyFiles are created with random keys if missing.
	OwnerKeyFiles []string `mapstructure:"owner-key-files"`
	// DataDir holds the journal and the generated owner keys.
	DataDir string `mapstructure:"data-dir"`
	// ArtifactPath of the factory artifact. The embedded factory abi is used if empty.
	ArtifactPath string `mapstructure:"artifact"`

	Receipt  submit.Config `mapstructure:"receipt"`
	Logging  log.Config    `mapstructure:"logging"`
	Database sql.Config    `mapstructure:"database"`
}

// Network the deployer connects to.
type Network struct {
	URL string `mapstructure:"url"`
	// ChainID is checked against the node if not zero.
	ChainID uint64 `mapstructure:"chain-id"`
}

// RPC client tuning.
type RPC struct {
	MaxRetries        int           `mapstructure:"max-retries"`
	RetryDelay        time.Duration `mapstructure:"retry-delay"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultConfig targets a local node.
func DefaultConfig() Config {
	rpc := chain.DefaultConfig()
	return Config{
		Network: Network{
			URL:     rpc.URL,
			ChainID: 270,
		},
		RPC: RPC{
			MaxRetries:        rpc.MaxRetries,
			RetryDelay:        rpc.RetryDelay,
			RequestsPerSecond: rpc.RequestsPerSecond,
			Timeout:           rpc.Timeout,
		},
		Factory:  common.HexToAddress(DefaultFactory),
		Config:   deploy.DefaultConfig(),
		DataDir:  defaultDataDir,
		Receipt:  submit.DefaultConfig(),
		Logging:  log.DefaultConfig(),
		Database: sql.DefaultConfig(),
	}
}

// Client returns config of the rpc client.
func (c *Config) Client() chain.Config {
	return chain.Config{
		URL:               c.Network.URL,
		MaxRetries:        c.RPC.MaxRetries,
		RetryDelay:        c.RPC.RetryDelay,
		RequestsPerSecond: c.RPC.RequestsPerSecond,
		Timeout:           c.RPC.Timeout,
	}
}

// Validate checks values that can't be checked by the decoder.
func (c *Config) Validate() error {
	switch {
	case c.Network.URL == "":
		return fmt.Errorf("%w: network url is empty", ErrInvalidConfig)
	case c.Owners < 1:
		return fmt.Errorf("%w: at least one owner is required, got %d", ErrInvalidConfig, c.Owners)
	case c.Owners > multisig.MaxOwners:
		return fmt.Errorf("%w: at most %d owners are supported, got %d", ErrInvalidConfig, multisig.MaxOwners, c.Owners)
	case len(c.OwnerKeyFiles) > 0 && len(c.OwnerKeyFiles) != c.Owners:
		return fmt.Errorf("%w: %d owner key files for %d owners", ErrInvalidConfig, len(c.OwnerKeyFiles), c.Owners)
	case c.Prefund && (c.PrefundAmount == nil || c.PrefundAmount.Sign() <= 0):
		return fmt.Errorf("%w: prefund amount must be positive", ErrInvalidConfig)
	case c.Receipt.PollInterval <= 0 || c.Receipt.Timeout < c.Receipt.PollInterval:
		return fmt.Errorf("%w: receipt poll interval %s and timeout %s",
			ErrInvalidConfig, c.Receipt.PollInterval, c.Receipt.Timeout)
	case c.Database.Connections < 1:
		return fmt.Errorf("%w: database needs at least one connection, got %d", ErrInvalidConfig, c.Database.Connections)
	}
	return nil
}

// LoadConfig reads the config file into viper. Empty path is ignored.
func LoadConfig(fs afero.Fs, path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetFs(fs)
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

// Load decodes values from viper over cfg. Keys missing in viper keep values of cfg.
func Load(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructureutil.BigIntDecodeFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// WithErrorUnused rejects keys that don't map to any config field.
func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
