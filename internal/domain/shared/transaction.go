package shared

// Transaction is a closed set: Deposit, Withdrawal, Dispute, Resolve and Chargeback.
// The unexported method keeps other packages from adding variants, so a type
// switch over these five is exhaustive.
type Transaction interface {
	Type() TransactionType
	ClientID() ClientID
	TransactionID() TransactionID
	isTransaction()
}

// Deposit credits the client's available funds
type Deposit struct {
	Client ClientID
	Tx     TransactionID
	Amount Amount
}

// Withdrawal debits the client's available funds
type Withdrawal struct {
	Client ClientID
	Tx     TransactionID
	Amount Amount
}

// Dispute moves a prior deposit's amount from available to held
type Dispute struct {
	Client ClientID
	Tx     TransactionID
}

// Resolve returns a disputed amount from held to available
type Resolve struct {
	Client ClientID
	Tx     TransactionID
}

// Chargeback removes a disputed amount and locks the account
type Chargeback struct {
	Client ClientID
	Tx     TransactionID
}

func (Deposit) Type() TransactionType    { return TransactionTypeDeposit }
func (Withdrawal) Type() TransactionType { return TransactionTypeWithdrawal }
func (Dispute) Type() TransactionType    { return TransactionTypeDispute }
func (Resolve) Type() TransactionType    { return TransactionTypeResolve }
func (Chargeback) Type() TransactionType { return TransactionTypeChargeback }

func (t Deposit) ClientID() ClientID    { return t.Client }
func (t Withdrawal) ClientID() ClientID { return t.Client }
func (t Dispute) ClientID() ClientID    { return t.Client }
func (t Resolve) ClientID() ClientID    { return t.Client }
func (t Chargeback) ClientID() ClientID { return t.Client }

func (t Deposit) TransactionID() TransactionID    { return t.Tx }
func (t Withdrawal) TransactionID() TransactionID { return t.Tx }
func (t Dispute) TransactionID() TransactionID    { return t.Tx }
func (t Resolve) TransactionID() TransactionID    { return t.Tx }
func (t Chargeback) TransactionID() TransactionID { return t.Tx }

func (Deposit) isTransaction()    {}
func (Withdrawal) isTransaction() {}
func (Dispute) isTransaction()    {}
func (Resolve) isTransaction()    {}
func (Chargeback) isTransaction() {}

// AmountOf returns the amount carried by deposits and withdrawals
func AmountOf(tx Transaction) (Amount, bool) {
	switch t := tx.(type) {
	case Deposit:
		return t.Amount, true
	case Withdrawal:
		return t.Amount, true
	default:
		return Amount{}, false
	}
}

// Outcome reports what the ledger did with one transaction
type Outcome struct {
	Transaction Transaction
	Applied     bool
	Reason      IgnoreReason
}

// Applied builds the outcome of an accepted transaction
func Applied(tx Transaction) Outcome {
	return Outcome{Transaction: tx, Applied: true}
}

// Ignored builds the outcome of a transaction that left state unchanged
func Ignored(tx Transaction, reason IgnoreReason) Outcome {
	return Outcome{Transaction: tx, Reason: reason}
}
