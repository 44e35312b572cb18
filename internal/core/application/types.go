package application

import (
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// RedemptionKind discriminates the variants of a RedemptionRequest.
type RedemptionKind int

const (
	// RedeemExplicit redeems an explicit list of records plus an optional
	// change record.
	RedeemExplicit RedemptionKind = iota
	// RedeemNonFungible redeems the single record of a non-fungible type.
	RedeemNonFungible
	// RedeemFungibleAmount redeems fungible records covering a target
	// amount, producing at most one change output.
	RedeemFungibleAmount
)

// RedemptionRequest is the tagged union of the redemption entry points, all
// funneling into the same assembly routine.
type RedemptionRequest struct {
	Kind RedemptionKind

	// Explicit variant.
	Records []domain.TokenRecord
	Change  *domain.TokenRecord

	// Non-fungible and fungible variants.
	TypeID string
	Issuer string
	Where  func(domain.TokenRecord) bool

	// Fungible variant.
	Amount uint64
	// ChangeOwner is the logical recipient reference of the change output,
	// resolved to a holder key via the identity resolver.
	ChangeOwner string
}

// NewExplicitRedemption returns the request for redeeming the given records
// with an optional, already built, change record.
func NewExplicitRedemption(
	records []domain.TokenRecord,
	change *domain.TokenRecord,
) RedemptionRequest {
	return RedemptionRequest{
		Kind:    RedeemExplicit,
		Records: records,
		Change:  change,
	}
}

// NewNonFungibleRedemption returns the request for redeeming the singleton
// record of the given non-fungible type held with the given issuer.
func NewNonFungibleRedemption(typeID, issuer string) RedemptionRequest {
	return RedemptionRequest{
		Kind:   RedeemNonFungible,
		TypeID: typeID,
		Issuer: issuer,
	}
}

// NewFungibleRedemption returns the request for redeeming the given amount
// of the given fungible type, sending any surplus back to changeOwner. The
// optional where predicate further restricts the eligible records.
func NewFungibleRedemption(
	typeID, issuer string,
	amount uint64,
	changeOwner string,
	where func(domain.TokenRecord) bool,
) RedemptionRequest {
	return RedemptionRequest{
		Kind:        RedeemFungibleAmount,
		TypeID:      typeID,
		Issuer:      issuer,
		Amount:      amount,
		ChangeOwner: changeOwner,
		Where:       where,
	}
}
