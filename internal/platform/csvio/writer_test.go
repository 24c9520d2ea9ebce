package csvio

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/engine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAccounts(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, WriteAccounts(&out, nil))
		assert.Equal(t, "client,available,held,total,locked\n", out.String())
	})

	t.Run("FormatsFourDigits", func(t *testing.T) {
		accounts := []*account.Account{
			{Client: 1, Available: decimal.RequireFromString("1.5"), Held: decimal.Zero},
			{Client: 2, Available: decimal.Zero, Held: decimal.Zero, Locked: true},
			{Client: 3, Available: shared.MaxValue, Held: decimal.NewFromInt(1)},
		}
		var out bytes.Buffer
		require.NoError(t, WriteAccounts(&out, accounts))

		assert.Equal(t, "client,available,held,total,locked\n"+
			"1,1.5000,0.0000,1.5000,false\n"+
			"2,0.0000,0.0000,0.0000,true\n"+
			"3,7922816251426433759354395.0335,1.0000,7922816251426433759354395.0335,false\n",
			out.String())
	})

	t.Run("WriteFailure", func(t *testing.T) {
		err := WriteAccounts(failingWriter{}, []*account.Account{account.NewAccount(1)})
		assert.Error(t, err)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEndToEnd(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
deposit,2,2,2.0
deposit,1,3,2.0
withdrawal,1,4,1.5
withdrawal,2,5,3.0
dispute,1,1,
resolve,1,1,
deposit,3,6,1.0
dispute,3,6,
chargeback,3,6,
deposit,3,7,5.0
`
	ledger := engine.NewLedger()
	err := ReadTransactions(context.Background(), strings.NewReader(input),
		func(tx shared.Transaction) error {
			ledger.Apply(tx)
			return nil
		}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteAccounts(&out, ledger.Accounts().Accounts()))

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,1.5000,0.0000,1.5000,false\n"+
		"2,2.0000,0.0000,2.0000,false\n"+
		"3,0.0000,0.0000,0.0000,true\n",
		out.String())
}
