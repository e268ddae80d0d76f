package memory

import (
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

type ProductRepository struct {
	mu sync.RWMutex
	m  map[string]entity.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{m: make(map[string]entity.Product)}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[p.ID]; ok {
		return repository.ErrDuplicate
	}
	r.m[p.ID] = *p
	return nil
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// Update swaps the whole record in one step.
func (r *ProductRepository) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m[p.ID] = *p
	return nil
}

func (r *ProductRepository) List() []entity.Product {
	return r.filter(func(entity.Product) bool { return true })
}

func (r *ProductRepository) ListByOwner(owner entity.Principal) []entity.Product {
	return r.filter(func(p entity.Product) bool { return p.CurrentOwner == owner })
}

func (r *ProductRepository) Replace(products []entity.Product) {
	m := make(map[string]entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	r.mu.Lock()
	r.m = m
	r.mu.Unlock()
}

func (r *ProductRepository) filter(keep func(entity.Product) bool) []entity.Product {
	r.mu.RLock()
	out := make([]entity.Product, 0, len(r.m))
	for _, p := range r.m {
		if keep(p) {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()
	sortProducts(out)
	return out
}

// sortProducts orders by creation time, then id, so listings are stable.
func sortProducts(ps []entity.Product) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
