package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zchasse63/vercelpickle/internal/comparison"
)

type ComparisonHandler struct {
	svc *comparison.Service
}

func NewComparisonHandler(svc *comparison.Service) *ComparisonHandler {
	return &ComparisonHandler{svc: svc}
}

func (h *ComparisonHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Matrix(r.Context(), chi.URLParam(r, "buyerId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type addComparisonRequest struct {
	ProductID string `json:"productId"`
}

func (h *ComparisonHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	if err := h.svc.Add(r.Context(), chi.URLParam(r, "buyerId"), req.ProductID); err != nil {
		if errors.Is(err, comparison.ErrComparisonFull) {
			writeError(w, http.StatusConflict, "you can compare up to 4 products")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *ComparisonHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.svc.Remove(chi.URLParam(r, "buyerId"), chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
