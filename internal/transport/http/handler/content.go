package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portfolio-api/internal/application/content"
)

// ContentHandler serves typed site content fetched from the headless CMS.
type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler { return &ContentHandler{svc: svc} }

func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		slog.Error("list posts failed", "err", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.GetPost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *ContentHandler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := h.svc.ListCaseStudies(r.Context())
	if err != nil {
		slog.Error("list case studies failed", "err", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, studies)
}

func (h *ContentHandler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	study, err := h.svc.GetCaseStudy(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, study)
}

func (h *ContentHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		slog.Error("list products failed", "err", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.GetPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
