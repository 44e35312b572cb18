package domain

import (
	"github.com/google/uuid"
)

// TokenKey represent the ID of a TokenRecord, composed by the id of the
// ledger transaction that produced it and its output index.
type TokenKey struct {
	TxID  string
	Index uint32
}

// TokenRecord is the data structure representing an unspent, owned quantity
// of a token type with some other information like whether it is
// spent/unspent or locked/unlocked by some in-progress redemption.
// A record is immutable once written to the ledger and is consumed
// atomically as a transaction input.
type TokenRecord struct {
	TxID     string
	Index    uint32
	Amount   uint64
	TypeID   string
	Fungible bool
	Issuer   string
	Owner    string
	Notary   string
	Spent    bool
	Locked   bool
	LockedBy *uuid.UUID
}
