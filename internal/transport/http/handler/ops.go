package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/portfolio-api/internal/domain"
)

// AssetChecker verifies the protected asset is readable without fetching it.
type AssetChecker interface {
	Exists(ctx context.Context, key string) error
}

// OpsMailer sends a test email through the real dispatch path.
type OpsMailer interface {
	Send(ctx context.Context, to, downloadURL string, expiresAt time.Time) (*domain.DispatchResult, error)
}

// OpsHandler exposes operational checks so email and asset configuration can
// be verified in isolation, without exercising the full pipeline.
type OpsHandler struct {
	mailer   OpsMailer
	assets   AssetChecker
	assetKey string
}

func NewOpsHandler(mailer OpsMailer, assets AssetChecker, assetKey string) *OpsHandler {
	return &OpsHandler{mailer: mailer, assets: assets, assetKey: assetKey}
}

// EmailTest is POST /ops/email-test. It sends a real email through the
// configured provider and reports the provider message id.
func (h *OpsHandler) EmailTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		writeError(w, http.StatusBadRequest, "body must contain a 'to' address")
		return
	}
	res, err := h.mailer.Send(r.Context(), req.To, "https://example.invalid/ops-email-test", time.Now().Add(time.Hour))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AssetCheck is GET /ops/asset-check. It confirms the resume object is
// readable in storage.
func (h *OpsHandler) AssetCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.assets.Exists(r.Context(), h.assetKey); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "asset readable"})
}
