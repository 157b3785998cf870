package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

// Network is a node of the chain.
//
// Every read is a point-in-time snapshot. Values such as nonce and gas price are
// valid only for a short window before submission.
type Network interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	NonceAt(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	// SendRawTransaction broadcasts serialized transaction. It is never retried.
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	// TransactionReceipt returns ethereum.NotFound while transaction is pending.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error)
	// RevertReason replays the call at the block and returns decoded revert reason.
	RevertReason(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (string, error)
}
