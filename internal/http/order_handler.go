package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zchasse63/vercelpickle/internal/order"
)

type OrderHandler struct {
	repo order.Repository
}

func NewOrderHandler(repo order.Repository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	buyerID := r.URL.Query().Get("buyerId")
	if buyerID == "" {
		writeError(w, http.StatusBadRequest, "buyerId is required")
		return
	}

	orders, err := h.repo.ListByBuyer(r.Context(), buyerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
