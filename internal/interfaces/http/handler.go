package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/tokend-network/tokend-daemon/internal/core/application"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// TokenService exposes the redeem and registrar use-cases over a plain JSON
// interface.
type TokenService interface {
	RedeemHandler(w http.ResponseWriter, req *http.Request)
	RegisterTypeHandler(w http.ResponseWriter, req *http.Request)
	ListTokensHandler(w http.ResponseWriter, req *http.Request)
	BalanceHandler(w http.ResponseWriter, req *http.Request)
}

type tokenService struct {
	redeemSvc    application.RedeemService
	registrarSvc application.RegistrarService
	tokenRepo    domain.TokenRepository
}

func NewTokenService(
	redeemSvc application.RedeemService,
	registrarSvc application.RegistrarService,
	tokenRepo domain.TokenRepository,
) TokenService {
	return &tokenService{
		redeemSvc:    redeemSvc,
		registrarSvc: registrarSvc,
		tokenRepo:    tokenRepo,
	}
}

type redeemRequest struct {
	TypeID      string `json:"type_id"`
	Issuer      string `json:"issuer"`
	Fungible    bool   `json:"fungible"`
	Amount      uint64 `json:"amount"`
	ChangeOwner string `json:"change_owner"`
}

type registerTypeRequest struct {
	TypeID      string   `json:"type_id"`
	Name        string   `json:"name"`
	Fungible    bool     `json:"fungible"`
	Maintainers []string `json:"maintainers"`
	Notary      string   `json:"notary"`
}

type outcomeResponse struct {
	TxID     string `json:"txid"`
	Accepted bool   `json:"accepted"`
}

func (s *tokenService) RedeemHandler(
	w http.ResponseWriter, req *http.Request,
) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload redeemRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var redemption application.RedemptionRequest
	if payload.Fungible {
		redemption = application.NewFungibleRedemption(
			payload.TypeID, payload.Issuer, payload.Amount, payload.ChangeOwner, nil,
		)
	} else {
		redemption = application.NewNonFungibleRedemption(
			payload.TypeID, payload.Issuer,
		)
	}

	outcome, err := s.redeemSvc.RedeemTokens(req.Context(), redemption)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, outcomeResponse{TxID: outcome.TxID, Accepted: outcome.Accepted})
}

func (s *tokenService) RegisterTypeHandler(
	w http.ResponseWriter, req *http.Request,
) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload registerTypeRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := s.registrarSvc.RegisterAndSubmit(
		req.Context(),
		domain.EvolvableTokenType{
			TypeID:      payload.TypeID,
			Name:        payload.Name,
			Fungible:    payload.Fungible,
			Maintainers: payload.Maintainers,
		},
		payload.Notary,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, outcomeResponse{TxID: outcome.TxID, Accepted: outcome.Accepted})
}

func (s *tokenService) ListTokensHandler(
	w http.ResponseWriter, req *http.Request,
) {
	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tokens, err := s.tokenRepo.GetAllTokens(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, tokens)
}

func (s *tokenService) BalanceHandler(
	w http.ResponseWriter, req *http.Request,
) {
	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	owner := req.URL.Query().Get("owner")
	typeID := req.URL.Query().Get("type_id")
	if owner == "" || typeID == "" {
		http.Error(w, "owner and type_id are required", http.StatusBadRequest)
		return
	}

	balance, err := s.tokenRepo.GetBalance(req.Context(), owner, typeID)
	if err != nil {
		writeError(w, err)
		return
	}
	unlocked, err := s.tokenRepo.GetUnlockedBalance(req.Context(), owner, typeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]uint64{
		"balance":          balance,
		"unlocked_balance": unlocked,
	})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if isRequestError(err) {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func isRequestError(err error) bool {
	for _, known := range []error{
		application.ErrIssuerMismatch,
		application.ErrAuthorityMismatch,
		application.ErrInvalidChangeAmount,
		application.ErrEmptySelection,
		application.ErrInsufficientFunds,
		application.ErrAmbiguousOwnership,
		application.ErrRecordNotFound,
		application.ErrMissingMaintainers,
		application.ErrMissingNotary,
		domain.ErrNotaryConflict,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
