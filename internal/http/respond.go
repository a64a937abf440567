package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
	"github.com/Zchasse63/vercelpickle/internal/comparison"
	"github.com/Zchasse63/vercelpickle/internal/negotiation"
	"github.com/Zchasse63/vercelpickle/internal/order"
	"github.com/Zchasse63/vercelpickle/internal/shipment"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain sentinels onto HTTP statuses; anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, negotiation.ErrNotFound),
		errors.Is(err, shipment.ErrPlanNotFound),
		errors.Is(err, shipment.ErrDestinationNotFound),
		errors.Is(err, shipment.ErrUnknownItem):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, negotiation.ErrSessionCompleted),
		errors.Is(err, negotiation.ErrReplyPending),
		errors.Is(err, negotiation.ErrOfferNotPending),
		errors.Is(err, shipment.ErrLastDestination),
		errors.Is(err, shipment.ErrPlanIncomplete),
		errors.Is(err, comparison.ErrComparisonFull),
		errors.Is(err, comparison.ErrAlreadySelected):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
