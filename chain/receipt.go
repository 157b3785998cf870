package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// ReceiptStatusFailed is the status of a transaction that was included but reverted.
	ReceiptStatusFailed = uint64(0)
	// ReceiptStatusSuccessful is the status of a successfully executed transaction.
	ReceiptStatusSuccessful = uint64(1)
)

// Receipt is a subset of the transaction receipt.
type Receipt struct {
	TxHash          common.Hash
	Status          uint64
	BlockNumber     *big.Int
	GasUsed         uint64
	From            common.Address
	To              *common.Address
	ContractAddress *common.Address
}

// Succeeded returns true if transaction was executed without revert.
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

type rpcReceipt struct {
	TxHash          common.Hash     `json:"transactionHash"`
	Status          hexutil.Uint64  `json:"status"`
	BlockNumber     *hexutil.Big    `json:"blockNumber"`
	GasUsed         hexutil.Uint64  `json:"gasUsed"`
	From            common.Address  `json:"from"`
	To              *common.Address `json:"to"`
	ContractAddress *common.Address `json:"contractAddress"`
}

func (r *rpcReceipt) receipt() *Receipt {
	rst := &Receipt{
		TxHash:          r.TxHash,
		Status:          uint64(r.Status),
		GasUsed:         uint64(r.GasUsed),
		From:            r.From,
		To:              r.To,
		ContractAddress: r.ContractAddress,
	}
	if r.BlockNumber != nil {
		rst.BlockNumber = r.BlockNumber.ToInt()
	}
	return rst
}
