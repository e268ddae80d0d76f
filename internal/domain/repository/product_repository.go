package repository

import "github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"

// ProductRepository is the product registry. Only the ownership service writes to it.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	List() []entity.Product
	ListByOwner(owner entity.Principal) []entity.Product
	Replace(products []entity.Product)
}
