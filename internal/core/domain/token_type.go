package domain

// TokenType identifies a fungible or non-fungible kind of value. Fungible
// records of a type carry an amount, non-fungible types are backed by a
// singleton record.
type TokenType struct {
	TypeID   string
	Name     string
	Fungible bool
}

// EvolvableTokenType is a token type definition that can itself be updated
// over time via its own ledger records, distinct from the value records
// that reference it. Every update must be signed by all of its maintainers.
type EvolvableTokenType struct {
	TypeID      string
	Name        string
	Fungible    bool
	Maintainers []string
	Version     uint32
}
