package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portfolio-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Reason carries the
// machine-readable code the site front-end keys its user messaging on.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Reason codes for the resume pipeline. Expired, tampered, and limit-reached
// are deliberately distinct: each drives different user messaging.
const (
	ReasonInvalidEmail  = "invalid_email"
	ReasonMissingToken  = "missing_token"
	ReasonInvalidToken  = "invalid_token"
	ReasonExpired       = "expired"
	ReasonLimitReached  = "download_limit_reached"
	ReasonAssetMissing  = "asset_unavailable"
	ReasonInternalError = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

func writeReason(w http.ResponseWriter, status int, msg, reason string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, Reason: reason})
}

// httpError maps domain sentinels onto HTTP statuses and reason codes.
// Anything unrecognised collapses to a generic 500 so infrastructure detail
// never leaks to clients.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeReason(w, http.StatusBadRequest, "invalid email address", ReasonInvalidEmail)
	case errors.Is(err, domain.ErrTokenExpired):
		writeReason(w, http.StatusUnauthorized, "this link has expired, request a new one", ReasonExpired)
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
		writeReason(w, http.StatusUnauthorized, "this link is not valid, request a new one", ReasonInvalidToken)
	case errors.Is(err, domain.ErrQuotaExhausted):
		writeReason(w, http.StatusForbidden, "download limit reached, request a new link", ReasonLimitReached)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAssetUnavailable):
		writeReason(w, http.StatusInternalServerError, "the file is temporarily unavailable", ReasonAssetMissing)
	default:
		writeReason(w, http.StatusInternalServerError, "something went wrong", ReasonInternalError)
	}
}
