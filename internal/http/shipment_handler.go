package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Zchasse63/vercelpickle/internal/shipment"
)

type ShipmentHandler struct {
	svc *shipment.Service
}

func NewShipmentHandler(svc *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{svc: svc}
}

func (h *ShipmentHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.CreatePlan(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *ShipmentHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.Get(chi.URLParam(r, "orderId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *ShipmentHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	dest, err := h.svc.AddDestination(chi.URLParam(r, "orderId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dest)
}

func (h *ShipmentHandler) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	err := h.svc.RemoveDestination(chi.URLParam(r, "orderId"), chi.URLParam(r, "destinationId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type updateDestinationRequest struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

func (h *ShipmentHandler) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	var req updateDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.svc.UpdateDestination(chi.URLParam(r, "orderId"), chi.URLParam(r, "destinationId"),
		req.Location, req.Date, req.TimeSlot)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type allocateRequest struct {
	Quantity int `json:"quantity"`
}

type allocateResponse struct {
	ItemID        string `json:"itemId"`
	DestinationID string `json:"destinationId"`
	Requested     int    `json:"requested"`
	Applied       int    `json:"applied"`
	Clamped       bool   `json:"clamped"`
	Max           int    `json:"max"`
}

// Allocate sets an item quantity at a destination. A request that would break
// the order-quantity invariant is clamped to the largest quantity that fits,
// and the response says so.
func (h *ShipmentHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	orderID := chi.URLParam(r, "orderId")
	destID := chi.URLParam(r, "destinationId")
	itemID := chi.URLParam(r, "itemId")

	resp := allocateResponse{ItemID: itemID, DestinationID: destID, Requested: req.Quantity}

	res, err := h.svc.Allocate(orderID, destID, itemID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp.Applied = req.Quantity
	resp.Max = res.Max
	if !res.OK {
		resp.Clamped = true
		resp.Applied = res.Max
		if _, err := h.svc.Allocate(orderID, destID, itemID, res.Max); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ShipmentHandler) RemainingQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	remaining, err := h.svc.RemainingQuantity(chi.URLParam(r, "orderId"), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"itemId": itemID, "remaining": remaining})
}

func (h *ShipmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.Complete(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
