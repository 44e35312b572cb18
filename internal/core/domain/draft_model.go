package domain

// CommandKind discriminates the commands that can be attached to a draft.
type CommandKind int

const (
	// CommandRedeem consumes token records and returns their value to the
	// issuing authority.
	CommandRedeem CommandKind = iota
	// CommandRegister registers a new evolvable token type on the ledger.
	CommandRegister
)

// Command binds an operation on a token type to the set of keys required to
// sign it.
type Command struct {
	Kind    CommandKind
	TypeID  string
	Signers []string
}

// TransactionDraft is the abstract, not yet signed nor finalized,
// transaction assembled by this daemon. It consumes Inputs, produces
// Outputs and TypeOutputs and carries the commands that justify the state
// transition. All inputs and outputs are bound to a single settlement
// authority.
type TransactionDraft struct {
	Inputs      []TokenRecord
	Outputs     []TokenRecord
	TypeOutputs []EvolvableTokenType
	Commands    []Command
	Notary      string
	Signers     []string
}

// NewTransactionDraft returns a new empty draft.
func NewTransactionDraft() *TransactionDraft {
	return &TransactionDraft{
		Inputs:      make([]TokenRecord, 0),
		Outputs:     make([]TokenRecord, 0),
		TypeOutputs: make([]EvolvableTokenType, 0),
		Commands:    make([]Command, 0),
		Signers:     make([]string, 0),
	}
}
