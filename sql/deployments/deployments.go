// Package deployments is a local journal of deployed accounts and the transactions
// sent from them.
package deployments

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/aamultisig/go-aamultisig/aa/core"
	"github.com/aamultisig/go-aamultisig/sql"
)

// Account is a deployed multisig account.
type Account struct {
	Address      common.Address
	Factory      common.Address
	Salt         common.Hash
	BytecodeHash common.Hash
	Owners       []common.Address
	// DeployTx is nil if the account was recorded before the deployment was confirmed.
	DeployTx *common.Hash
	Created  time.Time
}

// Tx is a transaction originated from an account.
type Tx struct {
	Hash    common.Hash
	Account common.Address
	Nonce   uint64
	Status  core.Stage
	// Block is zero until the transaction is included.
	Block   uint64
	Reason  string
	Created time.Time
}

func encodeOwners(owners []common.Address) []byte {
	buf := make([]byte, 0, len(owners)*common.AddressLength)
	for _, owner := range owners {
		buf = append(buf, owner.Bytes()...)
	}
	return buf
}

func decodeOwners(stmt *sql.Statement, col int) []common.Address {
	buf := make([]byte, stmt.ColumnLen(col))
	stmt.ColumnBytes(col, buf)
	owners := make([]common.Address, 0, len(buf)/common.AddressLength)
	for i := 0; i+common.AddressLength <= len(buf); i += common.AddressLength {
		owners = append(owners, common.BytesToAddress(buf[i:i+common.AddressLength]))
	}
	return owners
}

// Add account to the journal.
func Add(db sql.Executor, account *Account) error {
	if _, err := db.Exec(`insert into accounts
		(address, factory, salt, bytecode_hash, owners, deploy_tx, created)
		values (?1, ?2, ?3, ?4, ?5, ?6, ?7);`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
			stmt.BindBytes(2, account.Factory.Bytes())
			stmt.BindBytes(3, account.Salt.Bytes())
			stmt.BindBytes(4, account.BytecodeHash.Bytes())
			stmt.BindBytes(5, encodeOwners(account.Owners))
			if account.DeployTx != nil {
				stmt.BindBytes(6, account.DeployTx.Bytes())
			} else {
				stmt.BindNull(6)
			}
			stmt.BindInt64(7, account.Created.UnixNano())
		}, nil); err != nil {
		return fmt.Errorf("insert account %s: %w", account.Address, err)
	}
	return nil
}

const accountFields = "address, factory, salt, bytecode_hash, owners, deploy_tx, created"

func decodeAccount(stmt *sql.Statement) *Account {
	account := &Account{}
	stmt.ColumnBytes(0, account.Address[:])
	stmt.ColumnBytes(1, account.Factory[:])
	stmt.ColumnBytes(2, account.Salt[:])
	stmt.ColumnBytes(3, account.BytecodeHash[:])
	account.Owners = decodeOwners(stmt, 4)
	if !sql.IsNull(stmt, 5) {
		account.DeployTx = &common.Hash{}
		stmt.ColumnBytes(5, account.DeployTx[:])
	}
	account.Created = time.Unix(0, stmt.ColumnInt64(6))
	return account
}

// Get account by address.
func Get(db sql.Executor, address common.Address) (*Account, error) {
	var account *Account
	_, err := db.Exec("select "+accountFields+" from accounts where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			account = decodeAccount(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}
	if account == nil {
		return nil, fmt.Errorf("get account %s: %w", address, sql.ErrNotFound)
	}
	return account, nil
}

// ByFactory returns accounts deployed by the factory in the order they were recorded.
func ByFactory(db sql.Executor, factory common.Address) ([]*Account, error) {
	var accounts []*Account
	_, err := db.Exec("select "+accountFields+" from accounts where factory = ?1 order by created;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, factory.Bytes())
		}, func(stmt *sql.Statement) bool {
			accounts = append(accounts, decodeAccount(stmt))
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("accounts by factory %s: %w", factory, err)
	}
	return accounts, nil
}

// SetDeployTx records the hash of the transaction that deployed the account.
func SetDeployTx(db sql.Executor, address common.Address, hash common.Hash) error {
	rows, err := db.Exec("update accounts set deploy_tx = ?2 where address = ?1 returning 1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
			stmt.BindBytes(2, hash.Bytes())
		}, nil)
	if err != nil {
		return fmt.Errorf("set deploy tx %s: %w", address, err)
	}
	if rows == 0 {
		return fmt.Errorf("set deploy tx %s: %w", address, sql.ErrNotFound)
	}
	return nil
}

// AddTx records a submitted transaction.
func AddTx(db sql.Executor, tx *Tx) error {
	if _, err := db.Exec(`insert into account_txs
		(id, account, nonce, status, block, reason, created)
		values (?1, ?2, ?3, ?4, ?5, ?6, ?7);`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, tx.Hash.Bytes())
			stmt.BindBytes(2, tx.Account.Bytes())
			stmt.BindInt64(3, int64(tx.Nonce))
			stmt.BindInt64(4, int64(tx.Status))
			if tx.Block != 0 {
				stmt.BindInt64(5, int64(tx.Block))
			} else {
				stmt.BindNull(5)
			}
			if tx.Reason != "" {
				stmt.BindText(6, tx.Reason)
			} else {
				stmt.BindNull(6)
			}
			stmt.BindInt64(7, tx.Created.UnixNano())
		}, nil); err != nil {
		return fmt.Errorf("insert tx %s: %w", tx.Hash, err)
	}
	return nil
}

// SetStatus updates the outcome of a recorded transaction.
func SetStatus(db sql.Executor, hash common.Hash, status core.Stage, block uint64, reason string) error {
	rows, err := db.Exec(`update account_txs set status = ?2, block = ?3, reason = ?4
		where id = ?1 returning 1;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, hash.Bytes())
			stmt.BindInt64(2, int64(status))
			stmt.BindInt64(3, int64(block))
			if reason != "" {
				stmt.BindText(4, reason)
			} else {
				stmt.BindNull(4)
			}
		}, nil)
	if err != nil {
		return fmt.Errorf("set status %s: %w", hash, err)
	}
	if rows == 0 {
		return fmt.Errorf("set status %s: %w", hash, sql.ErrNotFound)
	}
	return nil
}

// Txs returns transactions of the account ordered by nonce.
func Txs(db sql.Executor, account common.Address) ([]*Tx, error) {
	var txs []*Tx
	_, err := db.Exec(`select id, nonce, status, block, reason, created
		from account_txs where account = ?1 order by nonce, created;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Bytes())
		}, func(stmt *sql.Statement) bool {
			tx := &Tx{Account: account}
			stmt.ColumnBytes(0, tx.Hash[:])
			tx.Nonce = uint64(stmt.ColumnInt64(1))
			tx.Status = core.Stage(stmt.ColumnInt64(2))
			if !sql.IsNull(stmt, 3) {
				tx.Block = uint64(stmt.ColumnInt64(3))
			}
			if !sql.IsNull(stmt, 4) {
				tx.Reason = stmt.ColumnText(4)
			}
			tx.Created = time.Unix(0, stmt.ColumnInt64(5))
			txs = append(txs, tx)
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("txs of %s: %w", account, err)
	}
	return txs, nil
}
