package domain

import (
	"github.com/tokend-network/tokend-daemon/pkg/mathutil"
)

// SetNotary binds the draft to the given settlement authority. A draft that
// already carries a different authority cannot be rebound, this matters
// when a redemption is merged into a larger, multi-purpose draft.
func (d *TransactionDraft) SetNotary(notary string) error {
	if d.Notary != "" && d.Notary != notary {
		return ErrNotaryConflict
	}
	d.Notary = notary
	return nil
}

// AddInput appends the given record to the consumed inputs of the draft.
func (d *TransactionDraft) AddInput(record TokenRecord) {
	d.Inputs = append(d.Inputs, record)
}

// AddOutput appends the given record to the produced outputs of the draft.
func (d *TransactionDraft) AddOutput(record TokenRecord) {
	d.Outputs = append(d.Outputs, record)
}

// AddTypeOutput appends the given type definition to the produced outputs
// of the draft.
func (d *TransactionDraft) AddTypeOutput(def EvolvableTokenType) {
	d.TypeOutputs = append(d.TypeOutputs, def)
}

// AddCommand attaches the given command to the draft and merges its signing
// keys into the draft's signer set, skipping duplicates.
func (d *TransactionDraft) AddCommand(cmd Command) {
	d.Commands = append(d.Commands, cmd)
	for _, signer := range cmd.Signers {
		if !d.isSigner(signer) {
			d.Signers = append(d.Signers, signer)
		}
	}
}

// InputAmount returns the total amount of the consumed inputs.
func (d *TransactionDraft) InputAmount() uint64 {
	amounts := make([]uint64, 0, len(d.Inputs))
	for _, in := range d.Inputs {
		amounts = append(amounts, in.Amount)
	}
	return mathutil.Sum(amounts)
}

// OutputAmount returns the total amount of the produced outputs.
func (d *TransactionDraft) OutputAmount() uint64 {
	amounts := make([]uint64, 0, len(d.Outputs))
	for _, out := range d.Outputs {
		amounts = append(amounts, out.Amount)
	}
	return mathutil.Sum(amounts)
}

func (d *TransactionDraft) isSigner(key string) bool {
	for _, signer := range d.Signers {
		if signer == key {
			return true
		}
	}
	return false
}
