package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// ClientID identifies the owner of an account
type ClientID uint16

// TransactionID identifies a deposit or withdrawal; dispute-family rows reference it
type TransactionID uint32

// ParseClientID parses a decimal client identifier in the uint16 range
func ParseClientID(s string) (ClientID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: client %q: %v", ErrInvalidRecord, s, err)
	}
	return ClientID(v), nil
}

// ParseTransactionID parses a decimal transaction identifier in the uint32 range
func ParseTransactionID(s string) (TransactionID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: tx %q: %v", ErrInvalidRecord, s, err)
	}
	return TransactionID(v), nil
}

func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

func (t TransactionID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
