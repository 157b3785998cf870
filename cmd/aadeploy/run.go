package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aamultisig/go-aamultisig/artifact"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/config"
	"github.com/aamultisig/go-aamultisig/deploy"
	"github.com/aamultisig/go-aamultisig/log"
	"github.com/aamultisig/go-aamultisig/signing"
	"github.com/aamultisig/go-aamultisig/sql"
)

const journalFile = "journal.sql"

// dial connects to the node. Replaced in tests.
var dial = func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (chain.Network, func(), error) {
	client, err := chain.NewClient(ctx, cfg.Client(), chain.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

var artifactFs = afero.NewOsFs()

type runReport struct {
	Account      common.Address   `json:"account"`
	Owners       []common.Address `json:"owners"`
	BytecodeHash common.Hash      `json:"bytecodeHash"`
	DeployTx     common.Hash      `json:"deployTx"`
	Balance      string           `json:"balance,omitempty"`
	Tx           common.Hash      `json:"tx"`
	Nonce        uint64           `json:"nonce"`
	Next         common.Address   `json:"next"`
	NextOwners   []common.Address `json:"nextOwners"`
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "deploy the account, prefund it and deploy another account from it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, afero.NewOsFs())
			if err != nil {
				return err
			}
			logger, err := log.New("aadeploy", cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(cmd, cfg, logger)
		},
	}
}

func factoryABI(cfg *config.Config) (*abi.ABI, error) {
	if cfg.ArtifactPath == "" {
		return nil, nil
	}
	cache, err := artifact.NewCache(artifactFs, artifact.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	art, err := cache.Get(cfg.ArtifactPath)
	if err != nil {
		return nil, err
	}
	return &art.ABI, nil
}

func run(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	ctx := cmd.Context()
	lock, err := lockDataDir(cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Error("failed to unlock data dir", zap.String("path", lock.Path()), zap.Error(err))
		}
	}()

	deployer, err := loadDeployer(cfg.KeyFile)
	if err != nil {
		return err
	}
	owners, err := loadOwners(logger, cfg)
	if err != nil {
		return err
	}
	next := cfg.NextOwners
	if len(next) == 0 {
		signer, err := loadOrCreate(logger, filepath.Join(cfg.DataDir, nextOwnerKey))
		if err != nil {
			return err
		}
		next = []common.Address{signer.Address()}
	}
	fabi, err := factoryABI(cfg)
	if err != nil {
		return err
	}

	network, closeNetwork, err := dial(ctx, cfg, logger.Named("rpc"))
	if err != nil {
		return err
	}
	defer closeNetwork()
	if cfg.Network.ChainID != 0 {
		id, err := network.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("chain id: %w", err)
		}
		if !id.IsUint64() || id.Uint64() != cfg.Network.ChainID {
			return fmt.Errorf("node %s is on chain %s, expected %d", cfg.Network.URL, id, cfg.Network.ChainID)
		}
	}

	db, err := sql.Open("file:"+filepath.Join(cfg.DataDir, journalFile),
		sql.WithLogger(logger.Named("db")),
		sql.WithConfig(cfg.Database),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	keys := signing.NewKeys()
	addresses := make([]common.Address, 0, len(owners))
	for _, owner := range owners {
		keys.Add(owner)
		addresses = append(addresses, owner.Address())
	}
	d, err := deploy.New(deploy.Prm{
		Logger:     logger.Named("deploy"),
		Network:    network,
		Deployer:   deployer,
		Owners:     addresses,
		Keys:       keys,
		Factory:    cfg.Factory,
		Salt:       cfg.Salt,
		FactoryABI: fabi,
		Config:     cfg.Config,
		Submit:     &cfg.Receipt,
		Journal:    db,
	})
	if err != nil {
		return err
	}
	report, err := d.Run(ctx, next...)
	if err != nil {
		return err
	}
	out := runReport{
		Account:      report.Account.Address,
		Owners:       report.Account.Owners,
		BytecodeHash: report.Account.BytecodeHash,
		DeployTx:     report.Account.DeployTx,
		Tx:           report.Result.TxHash,
		Nonce:        report.Result.Nonce,
		Next:         report.Next,
		NextOwners:   next,
	}
	if report.Account.Balance != nil {
		out.Balance = report.Account.Balance.String()
	}
	return writeJSON(cmd, out)
}
