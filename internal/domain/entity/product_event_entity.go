package entity

import "time"

// Product event types written to the event log.
const (
	EventTypeCreated     = "Created"
	EventTypeTransferred = "Transferred"
	EventTypeSold        = "Sold"
)

// ProductEvent is one immutable entry of a product's provenance trail.
// ProductID is not checked against the product registry.
type ProductEvent struct {
	ProductID   string    `json:"product_id"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	FromUser    Principal `json:"from_user"`
	ToUser      Principal `json:"to_user"`
	Timestamp   time.Time `json:"timestamp"`
}
