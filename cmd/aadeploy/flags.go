package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aamultisig/go-aamultisig/config"
	"github.com/aamultisig/go-aamultisig/config/presets"
)

const (
	flagConfig = "config"
	flagPreset = "preset"
)

// addConfigFlags registers flags named after config keys. Nested keys use dots.
func addConfigFlags(flags *pflag.FlagSet) {
	defaults := config.DefaultConfig()
	flags.StringP(flagConfig, "c", "", "load configuration from file")
	flags.StringP(flagPreset, "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))

	flags.String("network.url", defaults.Network.URL, "json-rpc url of the node")
	flags.Uint64("network.chain-id", defaults.Network.ChainID, "expected chain id, zero to skip the check")
	flags.Int("rpc.max-retries", defaults.RPC.MaxRetries, "retries of failed reads")
	flags.Duration("rpc.retry-delay", defaults.RPC.RetryDelay, "delay between retried reads")
	flags.Float64("rpc.requests-per-second", defaults.RPC.RequestsPerSecond, "limit of reads, zero disables the limit")
	flags.Duration("rpc.timeout", defaults.RPC.Timeout, "timeout of a single request")

	flags.String("factory", defaults.Factory.Hex(), "address of the account factory")
	flags.String("salt", defaults.Salt.Hex(), "salt of the deployed account")
	flags.StringSlice("next-owners", nil, "owners of the account deployed by the multisig")
	flags.Int("owners", defaults.Owners, "number of owners of the deployed account")
	flags.Bool("prefund", defaults.Prefund, "send funds to the account after deployment")
	flags.String("prefund-amount", defaults.PrefundAmount.String(), "prefund amount in wei")

	flags.String("key-file", defaults.KeyFile, "hex encoded private key of the deployer")
	flags.StringSlice("owner-key-files", nil, "hex encoded private keys of the owners, created if missing")
	flags.String("data-dir", defaults.DataDir, "directory for the journal and generated keys")
	flags.String("artifact", defaults.ArtifactPath, "path to the factory artifact")

	flags.Duration("receipt.poll-interval", defaults.Receipt.PollInterval, "interval between receipt requests")
	flags.Duration("receipt.timeout", defaults.Receipt.Timeout, "time to wait for inclusion")
	flags.String("logging.level", defaults.Logging.Level, "log level")
	flags.String("logging.encoder", defaults.Logging.Encoder, "log encoder, console or json")
	flags.Int("database.connections", defaults.Database.Connections, "size of the journal connection pool")
	flags.Bool("database.latency-metering", defaults.Database.LatencyMetering, "record duration of journal queries")
}

// loadConfig applies the preset, the config file and flags changed on the command line,
// in that order.
func loadConfig(cmd *cobra.Command, fs afero.Fs) (*config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	preset, err := flags.GetString(flagPreset)
	if err != nil {
		return nil, err
	}

	vip := viper.New()
	if err := config.LoadConfig(fs, path, vip); err != nil {
		return nil, err
	}
	if len(preset) == 0 && vip.IsSet(flagPreset) {
		preset = vip.GetString(flagPreset)
	}
	cfg := config.DefaultConfig()
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
		vip.Set(flagPreset, preset)
	}

	flags.Visit(func(f *pflag.Flag) {
		if f.Name == flagConfig || f.Name == flagPreset {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			vip.Set(f.Name, sv.GetSlice())
			return
		}
		vip.Set(f.Name, f.Value.String())
	})
	if err := config.Load(vip, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
