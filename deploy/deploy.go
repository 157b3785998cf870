// Package deploy deploys a multisig account from a factory and sends transactions
// originating from it.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/sdk"
	"github.com/aamultisig/go-aamultisig/aa/sdk/multisig"
	"github.com/aamultisig/go-aamultisig/aa/sdk/wallet"
	"github.com/aamultisig/go-aamultisig/artifact"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/log"
	"github.com/aamultisig/go-aamultisig/signing"
	"github.com/aamultisig/go-aamultisig/sql"
	"github.com/aamultisig/go-aamultisig/sql/deployments"
	"github.com/aamultisig/go-aamultisig/submit"
)

// Names of the stages attached to errors with core.StageError.
const (
	StageEncode       = "encode"
	StageSnapshot     = "snapshot"
	StageSign         = "sign"
	StageAuthorize    = "authorize"
	StageSubmit       = "submit"
	StageWait         = "wait"
	StageBytecodeHash = "bytecode_hash"
	StageDerive       = "derive"
	StageVerify       = "verify"
	StagePrefund      = "prefund"
)

var (
	// ErrNonceMismatch is returned if the account nonce didn't advance by exactly one
	// after the transaction was included.
	ErrNonceMismatch = errors.New("account nonce mismatch")
	// ErrAddressMismatch is returned if the chain reported a deployed address that differs
	// from the derived one.
	ErrAddressMismatch = errors.New("deployed address mismatch")
	// ErrInvalidParameters is returned by New on incomplete Prm.
	ErrInvalidParameters = errors.New("invalid deployment parameters")
)

// Prm groups the collaborators of the deployment flow.
type Prm struct {
	// Writes progress into the log. Silent if nil.
	Logger *zap.Logger

	Network chain.Network

	// Deployer is the externally owned account that pays for the deployment.
	Deployer signing.Signer

	// Owners of the deployed account, in the order their signatures are expected.
	Owners []common.Address
	// Keys of the owners. Every owner must be present.
	Keys signing.Keyring

	Factory common.Address
	Salt    common.Hash
	// FactoryABI defaults to artifact.FactoryABI().
	FactoryABI *abi.ABI

	Config Config
	// Submit defaults to submit.DefaultConfig().
	Submit *submit.Config

	// Journal records deployed accounts and transactions if not nil.
	Journal sql.Executor

	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Deployer runs the deployment flow.
type Deployer struct {
	logger    *zap.Logger
	network   chain.Network
	deployer  signing.Signer
	owners    []common.Address
	keys      signing.Keyring
	factory   common.Address
	salt      common.Hash
	abi       abi.ABI
	cfg       Config
	journal   sql.Executor
	clock     clockwork.Clock
	submitter *submit.Submitter
}

// New validates parameters and creates Deployer.
func New(prm Prm) (*Deployer, error) {
	switch {
	case prm.Network == nil:
		return nil, fmt.Errorf("%w: network is missing", ErrInvalidParameters)
	case prm.Deployer == nil:
		return nil, fmt.Errorf("%w: deployer is missing", ErrInvalidParameters)
	case len(prm.Owners) == 0:
		return nil, fmt.Errorf("%w: no owners", ErrInvalidParameters)
	case prm.Keys == nil:
		return nil, fmt.Errorf("%w: owner keys are missing", ErrInvalidParameters)
	case prm.Config.Owners != 0 && prm.Config.Owners != len(prm.Owners):
		return nil, fmt.Errorf("%w: configured %d owners, got %d",
			ErrInvalidParameters, prm.Config.Owners, len(prm.Owners))
	case prm.Config.Prefund && (prm.Config.PrefundAmount == nil || prm.Config.PrefundAmount.Sign() <= 0):
		return nil, fmt.Errorf("%w: prefund amount must be positive", ErrInvalidParameters)
	}
	d := &Deployer{
		logger:   prm.Logger,
		network:  prm.Network,
		deployer: prm.Deployer,
		owners:   append([]common.Address(nil), prm.Owners...),
		keys:     prm.Keys,
		factory:  prm.Factory,
		salt:     prm.Salt,
		cfg:      prm.Config,
		journal:  prm.Journal,
		clock:    prm.Clock,
	}
	if d.logger == nil {
		d.logger = log.NewNop()
	}
	if d.clock == nil {
		d.clock = clockwork.NewRealClock()
	}
	if prm.FactoryABI != nil {
		d.abi = *prm.FactoryABI
	} else {
		d.abi = artifact.FactoryABI()
	}
	if _, err := artifact.DeployAccountMethod(d.abi, len(d.owners)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	cfg := submit.DefaultConfig()
	if prm.Submit != nil {
		cfg = *prm.Submit
	}
	d.submitter = submit.New(d.network,
		submit.WithLogger(d.logger.Named("submit")),
		submit.WithClock(d.clock),
		submit.WithConfig(cfg),
	)
	return d, nil
}

// Account is a deployed multisig account.
type Account struct {
	Address      common.Address
	Factory      common.Address
	Salt         common.Hash
	BytecodeHash common.Hash
	Owners       []common.Address
	DeployTx     common.Hash
	// Balance after the prefund. Nil if the account wasn't prefunded.
	Balance *big.Int
}

// Call is a transaction that the account executes.
type Call struct {
	To    *common.Address
	Value *big.Int
	Data  []byte
	Opts  []sdk.Opt
}

// Result of the executed call.
type Result struct {
	TxHash  common.Hash
	Receipt *chain.Receipt
	// Nonce the transaction was sent with. The account nonce is Nonce+1 after inclusion.
	Nonce uint64
}

// Report of the complete flow.
type Report struct {
	Account *Account
	Result  *Result
	// Next is the address of the account deployed by the multisig.
	Next common.Address
}

// DeployAccount deploys the account owned by the configured owners, derives its address
// and prefunds it if configured.
func (d *Deployer) DeployAccount(ctx context.Context) (*Account, error) {
	logger := log.FromContext(ctx, d.logger)
	data, err := artifact.PackDeployAccount(d.abi, d.salt, d.owners...)
	if err != nil {
		return nil, core.WrapStage(StageEncode, err)
	}
	logger.Info("deploying account",
		zap.Stringer("factory", d.factory),
		zap.Stringer("salt", d.salt),
		zap.Int("owners", len(d.owners)),
	)
	factory := d.factory
	receipt, err := d.send(ctx, wallet.Intent{
		From: d.deployer.Address(),
		To:   &factory,
		Data: data,
	})
	if err != nil {
		return nil, err
	}

	raw, err := d.network.CallContract(ctx, d.bytecodeHashCall())
	if err != nil {
		return nil, core.WrapStage(StageBytecodeHash, err)
	}
	bytecodeHash, err := artifact.UnpackBytecodeHash(d.abi, raw)
	if err != nil {
		return nil, core.WrapStage(StageBytecodeHash, err)
	}
	address, err := multisig.Address(d.factory, bytecodeHash, d.salt, d.owners...)
	if err != nil {
		return nil, core.WrapStage(StageDerive, err)
	}
	if receipt.ContractAddress != nil && *receipt.ContractAddress != address {
		return nil, core.WrapStage(StageVerify, fmt.Errorf("%w: chain reported %s, derived %s",
			ErrAddressMismatch, receipt.ContractAddress.Hex(), address.Hex()))
	}
	nonce, err := d.network.NonceAt(ctx, address)
	if err != nil {
		return nil, core.WrapStage(StageVerify, err)
	}
	account := &Account{
		Address:      address,
		Factory:      d.factory,
		Salt:         d.salt,
		BytecodeHash: bytecodeHash,
		Owners:       append([]common.Address(nil), d.owners...),
		DeployTx:     receipt.TxHash,
	}
	logger.Info("account deployed",
		zap.Stringer("address", address),
		zap.Stringer("tx_hash", receipt.TxHash),
		zap.Stringer("bytecode_hash", bytecodeHash),
		zap.Uint64("nonce", nonce),
	)
	if d.journal != nil {
		hash := receipt.TxHash
		if err := deployments.Add(d.journal, &deployments.Account{
			Address:      address,
			Factory:      d.factory,
			Salt:         d.salt,
			BytecodeHash: bytecodeHash,
			Owners:       account.Owners,
			DeployTx:     &hash,
			Created:      d.clock.Now(),
		}); err != nil {
			logger.Error("failed to journal deployed account",
				zap.Stringer("address", address),
				zap.Error(err),
			)
		}
	}
	if d.cfg.Prefund {
		balance, err := d.Prefund(ctx, account.Address, d.cfg.PrefundAmount)
		if err != nil {
			return nil, err
		}
		account.Balance = balance
	}
	return account, nil
}

func (d *Deployer) bytecodeHashCall() ethereum.CallMsg {
	data, err := artifact.PackBytecodeHash(d.abi)
	if err != nil {
		// abi is checked to have the method by New
		panic(err)
	}
	factory := d.factory
	return ethereum.CallMsg{To: &factory, Data: data}
}

// Prefund sends amount from the deployer to the address and returns the balance of the address.
func (d *Deployer) Prefund(ctx context.Context, address common.Address, amount *big.Int) (*big.Int, error) {
	logger := log.FromContext(ctx, d.logger)
	logger.Info("prefunding account",
		zap.Stringer("address", address),
		zap.Stringer("amount", amount),
	)
	if _, err := d.send(ctx, wallet.Intent{
		From:  d.deployer.Address(),
		To:    &address,
		Value: amount,
	}); err != nil {
		return nil, err
	}
	balance, err := d.network.BalanceAt(ctx, address)
	if err != nil {
		return nil, core.WrapStage(StagePrefund, err)
	}
	logger.Info("account balance", zap.Stringer("address", address), zap.Stringer("balance", balance))
	return balance, nil
}

// send signs the intent by the deployer, broadcasts it and waits for inclusion.
func (d *Deployer) send(ctx context.Context, intent wallet.Intent) (*chain.Receipt, error) {
	state, err := wallet.Snapshot(ctx, d.network, intent)
	if err != nil {
		return nil, core.WrapStage(StageSnapshot, err)
	}
	env := wallet.Build(state, intent)
	if err := wallet.Sign(ctx, env, d.deployer); err != nil {
		return nil, core.WrapStage(StageSign, err)
	}
	pending, err := d.submitter.Submit(ctx, env)
	if err != nil {
		return nil, core.WrapStage(StageSubmit, err)
	}
	receipt, err := pending.Wait(ctx)
	if err != nil {
		return nil, core.WrapStage(StageWait, err)
	}
	return receipt, nil
}

// Execute sends the call from the account authorized by every owner.
//
// The account nonce is read before the envelope is built and again after inclusion.
// The call is never retried. Once the transaction is broadcasted journal failures
// are only logged, so the result always reaches the caller.
func (d *Deployer) Execute(ctx context.Context, account *Account, call Call) (*Result, error) {
	logger := log.FromContext(ctx, d.logger).With(zap.Stringer("account", account.Address))
	intent := wallet.Intent{
		From:  account.Address,
		To:    call.To,
		Value: call.Value,
		Data:  call.Data,
	}
	state, err := wallet.Snapshot(ctx, d.network, intent)
	if err != nil {
		return nil, core.WrapStage(StageSnapshot, err)
	}
	logger.Info("account nonce before transaction", zap.Uint64("nonce", state.Nonce))

	env := wallet.Build(state, intent, call.Opts...)
	if err := multisig.Authorize(ctx, env, account.Owners, d.keys); err != nil {
		return nil, core.WrapStage(StageAuthorize, err)
	}
	pending, err := d.submitter.Submit(ctx, env)
	if err != nil {
		return nil, core.WrapStage(StageSubmit, err)
	}
	if d.journal != nil {
		if err := deployments.AddTx(d.journal, &deployments.Tx{
			Hash:    pending.Hash,
			Account: account.Address,
			Nonce:   state.Nonce,
			Status:  core.Submitted,
			Created: d.clock.Now(),
		}); err != nil {
			logger.Error("failed to journal broadcasted transaction",
				zap.Stringer("tx_hash", pending.Hash),
				zap.Error(err),
			)
		}
	}
	receipt, err := pending.Wait(ctx)
	if jerr := d.recordOutcome(pending.Hash, receipt, err); jerr != nil {
		logger.Error("failed to journal transaction outcome",
			zap.Stringer("tx_hash", pending.Hash),
			zap.Error(jerr),
		)
	}
	if err != nil {
		return nil, core.WrapStage(StageWait, err)
	}

	nonce, err := d.network.NonceAt(ctx, account.Address)
	if err != nil {
		return nil, core.WrapStage(StageVerify, err)
	}
	logger.Info("account nonce after transaction", zap.Uint64("nonce", nonce))
	if nonce != state.Nonce+1 {
		return nil, core.WrapStage(StageVerify, fmt.Errorf("%w: expected %d, got %d",
			ErrNonceMismatch, state.Nonce+1, nonce))
	}
	return &Result{TxHash: pending.Hash, Receipt: receipt, Nonce: state.Nonce}, nil
}

func (d *Deployer) recordOutcome(hash common.Hash, receipt *chain.Receipt, err error) error {
	if d.journal == nil || receipt == nil {
		return nil
	}
	status := core.Included
	var reason string
	var revert *core.RevertError
	if errors.As(err, &revert) {
		status = core.Rejected
		reason = revert.Reason
	}
	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}
	return deployments.SetStatus(d.journal, hash, status, block, reason)
}

// Run deploys the account, prefunds it if configured, and has the account deploy
// another account owned by next from the same factory with the same salt.
func (d *Deployer) Run(ctx context.Context, next ...common.Address) (*Report, error) {
	ctx = log.WithNewRequestID(ctx)
	logger := log.FromContext(ctx, d.logger)
	account, err := d.DeployAccount(ctx)
	if err != nil {
		return nil, err
	}
	data, err := artifact.PackDeployAccount(d.abi, d.salt, next...)
	if err != nil {
		return nil, core.WrapStage(StageEncode, err)
	}
	factory := d.factory
	result, err := d.Execute(ctx, account, Call{To: &factory, Data: data})
	if err != nil {
		return nil, err
	}
	nextAddress, err := multisig.Address(d.factory, account.BytecodeHash, d.salt, next...)
	if err != nil {
		return nil, core.WrapStage(StageDerive, err)
	}
	if d.journal != nil {
		hash := result.TxHash
		if err := deployments.Add(d.journal, &deployments.Account{
			Address:      nextAddress,
			Factory:      d.factory,
			Salt:         d.salt,
			BytecodeHash: account.BytecodeHash,
			Owners:       next,
			DeployTx:     &hash,
			Created:      d.clock.Now(),
		}); err != nil {
			logger.Error("failed to journal deployed account",
				zap.Stringer("address", nextAddress),
				zap.Error(err),
			)
		}
	}
	logger.Info("account deployed by multisig",
		zap.Stringer("address", nextAddress),
		zap.Stringer("tx_hash", result.TxHash),
	)
	return &Report{Account: account, Result: result, Next: nextAddress}, nil
}
