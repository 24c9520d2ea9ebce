package engine

import (
	"fmt"
	"sort"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Row is one client's reported balances
type Row struct {
	Client    shared.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// AccountTable is a read-only view over the final account states
type AccountTable struct {
	accounts map[shared.ClientID]*account.Account
}

func newAccountTable(accounts map[shared.ClientID]*account.Account) *AccountTable {
	return &AccountTable{accounts: accounts}
}

// Len returns the number of known clients
func (t *AccountTable) Len() int {
	return len(t.accounts)
}

// Get returns the row for client, if the client is known
func (t *AccountTable) Get(client shared.ClientID) (Row, bool) {
	acc, ok := t.accounts[client]
	if !ok {
		return Row{}, false
	}
	return rowOf(acc), true
}

// Rows returns one row per account ordered by client id.
// Total saturates at shared.MaxValue instead of overflowing.
func (t *AccountTable) Rows() []Row {
	rows := make([]Row, 0, len(t.accounts))
	for _, acc := range t.accounts {
		rows = append(rows, rowOf(acc))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Client < rows[j].Client })
	return rows
}

// Accounts returns copies of the underlying accounts ordered by client id
func (t *AccountTable) Accounts() []*account.Account {
	accounts := make([]*account.Account, 0, len(t.accounts))
	for _, acc := range t.accounts {
		cp := *acc
		accounts = append(accounts, &cp)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Client < accounts[j].Client })
	return accounts
}

func rowOf(acc *account.Account) Row {
	return Row{
		Client:    acc.Client,
		Available: acc.Available,
		Held:      acc.Held,
		Total:     acc.Total(),
		Locked:    acc.Locked,
	}
}

// MergeTables combines tables built by independent partitions. Partitions own
// disjoint client sets, so a client appearing twice is an error.
func MergeTables(tables ...*AccountTable) (*AccountTable, error) {
	merged := make(map[shared.ClientID]*account.Account)
	for _, table := range tables {
		if table == nil {
			continue
		}
		for client, acc := range table.accounts {
			if _, dup := merged[client]; dup {
				return nil, fmt.Errorf("client %s present in more than one partition", client)
			}
			merged[client] = acc
		}
	}
	return newAccountTable(merged), nil
}
