package events

const (
	ShipmentPlannedName    = "ShipmentPlanned"
	ShipmentPlannedVersion = 1
	ShipmentPlannedSchema  = "marketplace.shipment.planned.v1"
)

type PlannedItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type PlannedDestination struct {
	DestinationID string        `json:"destinationId"`
	Location      string        `json:"location"`
	Date          string        `json:"date"`
	TimeSlot      string        `json:"timeSlot"`
	Items         []PlannedItem `json:"items"`
}

// ShipmentPlanned is emitted when a buyer confirms how an order's items are
// split across destinations.
type ShipmentPlanned struct {
	OrderID      string               `json:"orderId"`
	Destinations []PlannedDestination `json:"destinations"`
}
