package entity

import "time"

// ProductStatus is tracked on every product but only ever set at creation.
// Quantity reaching zero does not move a product to OutOfStock.
type ProductStatus string

const (
	ProductAvailable    ProductStatus = "Available"
	ProductOutOfStock   ProductStatus = "OutOfStock"
	ProductDiscontinued ProductStatus = "Discontinued"
)

// Product is the current custody state of one product lot.
// Manufacturer never changes after creation; CurrentOwner changes only on transfer.
type Product struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Manufacturer Principal     `json:"manufacturer"`
	CurrentOwner Principal     `json:"current_owner"`
	Price        float64       `json:"price"`
	Quantity     uint32        `json:"quantity"`
	Status       ProductStatus `json:"status"`
	Category     string        `json:"category"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
