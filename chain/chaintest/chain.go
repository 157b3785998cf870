// Package chaintest provides an in-memory node that validates and executes account
// abstraction transactions the way the bootloader does.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/aa/sdk/multisig"
	templates "github.com/aamultisig/go-aamultisig/aa/templates/multisig"
	"github.com/aamultisig/go-aamultisig/artifact"
	"github.com/aamultisig/go-aamultisig/chain"
	"github.com/aamultisig/go-aamultisig/signing"
)

var (
	ErrChainID           = errors.New("invalid chain id")
	ErrNonceTooLow       = errors.New("nonce too low")
	ErrNonceTooHigh      = errors.New("nonce too high")
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
	ErrGasPerPubdata     = errors.New("gas per pubdata limit is too low")
	ErrValidation        = errors.New("account validation error")
	ErrKnownTransaction  = errors.New("known transaction")
)

type account struct {
	nonce   uint64
	balance *big.Int
	// owners are set for deployed multisig accounts.
	owners []common.Address
}

// Opt configures Chain.
type Opt func(*Chain)

// WithChainID sets the chain id.
func WithChainID(id int64) Opt {
	return func(c *Chain) {
		c.chainID = big.NewInt(id)
	}
}

// WithGasPrice sets the suggested gas price.
func WithGasPrice(price *big.Int) Opt {
	return func(c *Chain) {
		c.gasPrice = price
	}
}

// WithGasEstimate sets the gas returned by EstimateGas and used by every transaction.
func WithGasEstimate(gas uint64) Opt {
	return func(c *Chain) {
		c.gasEstimate = gas
	}
}

// WithFactory deploys account factory at the address.
func WithFactory(addr common.Address, bytecodeHash common.Hash) Opt {
	return func(c *Chain) {
		c.factory = addr
		c.bytecodeHash = bytecodeHash
	}
}

// WithInclusionDelay sets the number of receipt requests that return
// ethereum.NotFound before the transaction is reported.
func WithInclusionDelay(polls int) Opt {
	return func(c *Chain) {
		c.delay = polls
	}
}

// Chain is an in-memory node.
//
// Fees are not charged. Reverted transactions still consume the nonce.
type Chain struct {
	chainID      *big.Int
	gasPrice     *big.Int
	gasEstimate  uint64
	factory      common.Address
	factoryABI   abi.ABI
	bytecodeHash common.Hash
	delay        int

	mu       sync.Mutex
	block    uint64
	accounts map[common.Address]*account
	receipts map[common.Hash]*chain.Receipt
	pending  map[common.Hash]int
	sendErr  []error
	sent     int
}

var _ chain.Network = (*Chain)(nil)

// New creates the chain.
func New(opts ...Opt) *Chain {
	c := &Chain{
		chainID:      big.NewInt(270),
		gasPrice:     big.NewInt(250_000_000),
		gasEstimate:  2_000_000,
		factory:      common.HexToAddress("0x50BFb217F72A4e00a65040d64120002C7798A393"),
		factoryABI:   artifact.FactoryABI(),
		bytecodeHash: common.HexToHash("0x010000038fa567f5dcf319fa3434da6abbc1d595f426372666447f09cc5a87dc"),
		accounts:     map[common.Address]*account{},
		receipts:     map[common.Hash]*chain.Receipt{},
		pending:      map[common.Hash]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Factory returns the address of the account factory.
func (c *Chain) Factory() common.Address {
	return c.factory
}

// BytecodeHash returns the bytecode hash of accounts deployed by the factory.
func (c *Chain) BytecodeHash() common.Hash {
	return c.bytecodeHash
}

// Fund adds amount to the balance of the address.
func (c *Chain) Fund(addr common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	acc := c.account(addr)
	acc.balance.Add(acc.balance, amount)
}

// Owners returns owners of the deployed account.
func (c *Chain) Owners(addr common.Address) ([]common.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	acc, ok := c.accounts[addr]
	if !ok || acc.owners == nil {
		return nil, false
	}
	return append([]common.Address(nil), acc.owners...), true
}

// Sent returns the number of accepted transactions.
func (c *Chain) Sent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent
}

// FailSend makes the next SendRawTransaction calls fail with errs, one per call.
func (c *Chain) FailSend(errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = append(c.sendErr, errs...)
}

func (c *Chain) account(addr common.Address) *account {
	acc, ok := c.accounts[addr]
	if !ok {
		acc = &account{balance: new(big.Int)}
		c.accounts[addr] = acc
	}
	return acc
}

func (c *Chain) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.chainID), ctx.Err()
}

func (c *Chain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.gasPrice), ctx.Err()
}

func (c *Chain) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, reason := c.execute(msg.From, msg.To, msg.Value, msg.Data, true); reason != "" {
		return 0, fmt.Errorf("%w: %s", core.ErrExecutionReverted, reason)
	}
	return c.gasEstimate, nil
}

func (c *Chain) NonceAt(ctx context.Context, addr common.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if acc, ok := c.accounts[addr]; ok {
		return acc.nonce, nil
	}
	return 0, nil
}

func (c *Chain) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if acc, ok := c.accounts[addr]; ok {
		return new(big.Int).Set(acc.balance), nil
	}
	return new(big.Int), nil
}

func (c *Chain) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg.To == nil || *msg.To != c.factory {
		return nil, nil
	}
	method, err := c.factoryABI.MethodById(msg.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrExecutionReverted, err)
	}
	if method.RawName != artifact.MethodAABytecodeHash {
		return nil, fmt.Errorf("%w: %s is not a view method", core.ErrExecutionReverted, method.Sig)
	}
	return c.bytecodeHash.Bytes(), nil
}

func (c *Chain) RevertReason(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, reason := c.execute(msg.From, msg.To, msg.Value, msg.Data, true)
	return reason, nil
}

// SendRawTransaction validates the transaction and executes it.
func (c *Chain) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sendErr) > 0 {
		err := c.sendErr[0]
		c.sendErr = c.sendErr[1:]
		return common.Hash{}, err
	}

	env, err := core.Decode(raw)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := c.validate(env)
	if err != nil {
		return common.Hash{}, err
	}

	sender := c.account(env.From)
	sender.nonce++
	c.block++
	c.sent++
	contract, reason := c.execute(env.From, env.To, env.Value, env.Data, false)
	receipt := &chain.Receipt{
		TxHash:          hash,
		Status:          chain.ReceiptStatusSuccessful,
		BlockNumber:     new(big.Int).SetUint64(c.block),
		GasUsed:         c.gasEstimate,
		From:            env.From,
		To:              env.To,
		ContractAddress: contract,
	}
	if reason != "" {
		receipt.Status = chain.ReceiptStatusFailed
	}
	c.receipts[hash] = receipt
	c.pending[hash] = c.delay
	return hash, nil
}

func (c *Chain) validate(env *core.Envelope) (common.Hash, error) {
	if env.ChainID.Cmp(c.chainID) != 0 {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrChainID, env.ChainID)
	}
	if env.Meta.GasPerPubdata == nil || env.Meta.GasPerPubdata.Cmp(big.NewInt(core.DefaultGasPerPubdataLimit)) < 0 {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrGasPerPubdata, env.Meta.GasPerPubdata)
	}
	hash, err := core.TxHash(env)
	if err != nil {
		return common.Hash{}, err
	}
	if _, exists := c.receipts[hash]; exists {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrKnownTransaction, hash.Hex())
	}
	sender := c.account(env.From)
	switch {
	case env.Nonce < sender.nonce:
		return common.Hash{}, fmt.Errorf("%w: %d, expected %d", ErrNonceTooLow, env.Nonce, sender.nonce)
	case env.Nonce > sender.nonce:
		return common.Hash{}, fmt.Errorf("%w: %d, expected %d", ErrNonceTooHigh, env.Nonce, sender.nonce)
	}
	if env.Value != nil && sender.balance.Cmp(env.Value) < 0 {
		return common.Hash{}, fmt.Errorf("%w: balance %s, value %s", ErrInsufficientFunds, sender.balance, env.Value)
	}

	digest, err := core.ComputeDigest(env)
	if err != nil {
		return common.Hash{}, err
	}
	if sender.owners != nil {
		if err := templates.Verify(digest, env.Meta.CustomSignature, sender.owners...); err != nil {
			return common.Hash{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return hash, nil
	}
	if env.Signature == nil {
		return common.Hash{}, fmt.Errorf("%w: %s is not an account and the transaction is not signed", ErrValidation, env.From.Hex())
	}
	signer, err := signing.Recover(digest, env.Signature)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if signer != env.From {
		return common.Hash{}, fmt.Errorf("%w: signed by %s, sender %s", ErrValidation, signer.Hex(), env.From.Hex())
	}
	return hash, nil
}

// execute applies the call and returns revert reason if it failed.
// State is not changed if dry is true or the call reverted.
func (c *Chain) execute(from common.Address, to *common.Address, value *big.Int, data []byte, dry bool) (*common.Address, string) {
	if to == nil {
		return nil, "contract creation is not supported"
	}
	if value == nil {
		value = new(big.Int)
	}
	var contract *common.Address
	if *to == c.factory && len(data) >= 4 {
		method, err := c.factoryABI.MethodById(data[:4])
		if err != nil {
			return nil, "unknown method"
		}
		if method.RawName == artifact.MethodDeployAccount {
			salt, owners, err := artifact.UnpackDeployAccount(c.factoryABI, data)
			if err != nil {
				return nil, err.Error()
			}
			addr, err := multisig.Address(c.factory, c.bytecodeHash, salt, owners...)
			if err != nil {
				return nil, err.Error()
			}
			if acc, ok := c.accounts[addr]; ok && acc.owners != nil {
				return nil, "Deployment failed: code hash is non-zero"
			}
			contract = &addr
		}
	}

	balance := new(big.Int)
	if acc, ok := c.accounts[from]; ok {
		balance = acc.balance
	}
	if balance.Cmp(value) < 0 {
		return nil, "insufficient balance"
	}
	if dry {
		return contract, ""
	}
	if contract != nil {
		_, owners, _ := artifact.UnpackDeployAccount(c.factoryABI, data)
		c.account(*contract).owners = owners
	}
	if value.Sign() > 0 {
		sender := c.account(from)
		sender.balance.Sub(sender.balance, value)
		recipient := c.account(*to)
		recipient.balance.Add(recipient.balance, value)
	}
	return contract, ""
}

func (c *Chain) TransactionReceipt(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	receipt, ok := c.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	if c.pending[hash] > 0 {
		c.pending[hash]--
		return nil, ethereum.NotFound
	}
	rst := *receipt
	return &rst, nil
}

// DeployAccountCall returns the call data that deploys an account from the factory.
func (c *Chain) DeployAccountCall(salt common.Hash, owners ...common.Address) []byte {
	data, err := artifact.PackDeployAccount(c.factoryABI, salt, owners...)
	if err != nil {
		panic(err)
	}
	return data
}
