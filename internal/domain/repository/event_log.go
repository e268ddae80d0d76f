package repository

import "github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"

// EventLog is the append-only provenance trail. Append never fails and
// readers always get a copy in insertion order.
type EventLog interface {
	Append(ev entity.ProductEvent)
	ListFor(productID string) []entity.ProductEvent
	All() []entity.ProductEvent
	Replace(events []entity.ProductEvent)
}
