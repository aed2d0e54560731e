package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/portfolio-api/internal/application/resume"
)

// Response headers on a successful download. X-Resume-Token carries the
// renewed credential so a client-side flow can download again without going
// back through email.
const (
	headerResumeToken   = "X-Resume-Token"
	headerDownloadCount = "X-Download-Count"
	headerMaxDownloads  = "X-Max-Downloads"
)

// ResumeHandler handles the gated resume delivery endpoints.
type ResumeHandler struct {
	svc resume.Service
}

func NewResumeHandler(svc resume.Service) *ResumeHandler { return &ResumeHandler{svc: svc} }

// Request is POST /resume/request. On success the body acknowledges the
// dispatch without ever echoing the credential.
func (h *ResumeHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReason(w, http.StatusBadRequest, "invalid request body", ReasonInvalidEmail)
		return
	}
	if err := h.svc.RequestLink(r.Context(), req.Email); err != nil {
		slog.Error("resume request failed", "step", "request_link", "err", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "download link sent, check your inbox"})
}

// Download is GET /resume/download?token=…. It streams the PDF and declares
// the renewed credential and the authoritative count via response headers.
func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		writeReason(w, http.StatusBadRequest, "missing token", ReasonMissingToken)
		return
	}

	res, err := h.svc.Redeem(r.Context(), raw)
	if err != nil {
		slog.Error("resume download failed", "step", "redeem", "err", err)
		httpError(w, err)
		return
	}
	defer res.Body.Close()

	w.Header().Set(headerResumeToken, res.RenewedToken)
	w.Header().Set(headerDownloadCount, strconv.Itoa(res.Count))
	w.Header().Set(headerMaxDownloads, strconv.Itoa(res.MaxDownloads))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	if res.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(res.ContentLength, 10))
	}
	_, _ = io.Copy(w, res.Body)
}
