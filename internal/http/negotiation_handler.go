package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
	"github.com/Zchasse63/vercelpickle/internal/negotiation"
)

type NegotiationHandler struct {
	products catalog.Repository
	svc      *negotiation.Service
}

func NewNegotiationHandler(products catalog.Repository, svc *negotiation.Service) *NegotiationHandler {
	return &NegotiationHandler{products: products, svc: svc}
}

type startNegotiationRequest struct {
	ProductID string `json:"productId"`
	BuyerID   string `json:"buyerId"`
}

func (h *NegotiationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startNegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.BuyerID == "" {
		writeError(w, http.StatusBadRequest, "productId and buyerId are required")
		return
	}

	p, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess := h.svc.Start(negotiation.StartParams{
		ProductID:   p.ID,
		ProductName: p.Name,
		BuyerID:     req.BuyerID,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		ListPrice:   p.Price,
		Unit:        p.Unit,
	})

	writeJSON(w, http.StatusCreated, sess)
}

func (h *NegotiationHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Get(chi.URLParam(r, "negotiationId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *NegotiationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	m, err := h.svc.SendMessage(chi.URLParam(r, "negotiationId"), req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type sendOfferRequest struct {
	Price        float64    `json:"price"`
	Quantity     int        `json:"quantity"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
}

func (h *NegotiationHandler) SendOffer(w http.ResponseWriter, r *http.Request) {
	var req sendOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Price <= 0 || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "price and quantity must be positive")
		return
	}

	m, err := h.svc.SendOffer(chi.URLParam(r, "negotiationId"), negotiation.Offer{
		Price:        req.Price,
		Quantity:     req.Quantity,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *NegotiationHandler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.AcceptOffer(chi.URLParam(r, "negotiationId"), chi.URLParam(r, "offerId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *NegotiationHandler) RejectOffer(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.RejectOffer(chi.URLParam(r, "negotiationId"), chi.URLParam(r, "offerId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
