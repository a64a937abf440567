package order

type Status string

const (
	StatusNegotiated      Status = "negotiated"
	StatusShipmentPlanned Status = "shipment_planned"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)
