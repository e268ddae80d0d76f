package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    uint32
	Category    string
}

// CreateProduct registers a new product lot owned by the calling manufacturer.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	p, ev, err := s.createProduct(ctx, in)
	s.record("create_product", err)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, ev, *p)
	return p, nil
}

func (s *Service) createProduct(ctx context.Context, in CreateProductInput) (*entity.Product, entity.ProductEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.callerUser(ctx)
	if !ok {
		return nil, entity.ProductEvent{}, ErrNotLoggedIn
	}
	if !caller.IsActive || caller.Role != entity.RoleManufacturer {
		return nil, entity.ProductEvent{}, ErrUnauthorized
	}

	now := s.Now()
	p := &entity.Product{
		ID:           s.NewID(),
		Name:         in.Name,
		Description:  in.Description,
		Manufacturer: caller.Principal,
		CurrentOwner: caller.Principal,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Status:       entity.ProductAvailable,
		Category:     in.Category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Products.Create(p); err != nil {
		return nil, entity.ProductEvent{}, fmt.Errorf("create product %s: %w", p.ID, err)
	}

	ev := entity.ProductEvent{
		ProductID:   p.ID,
		EventType:   entity.EventTypeCreated,
		Description: fmt.Sprintf("Product %q created by %s", p.Name, caller.Name),
		FromUser:    caller.Principal,
		ToUser:      caller.Principal,
		Timestamp:   now,
	}
	s.Events.Append(ev)
	return p, ev, nil
}

// TransferProduct hands custody of a product to the next party in the chain.
// Ownership may only move Manufacturer -> Distributor -> Retailer.
func (s *Service) TransferProduct(ctx context.Context, productID string, to entity.Principal, description string) (*entity.Product, error) {
	p, ev, err := s.transferProduct(ctx, productID, to, description)
	s.record("transfer_product", err)
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, ev, *p)
	return p, nil
}

func (s *Service) transferProduct(ctx context.Context, productID string, to entity.Principal, description string) (*entity.Product, entity.ProductEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.callerUser(ctx)
	if !ok {
		return nil, entity.ProductEvent{}, ErrNotLoggedIn
	}
	p, err := s.Products.GetByID(productID)
	if err != nil {
		return nil, entity.ProductEvent{}, ErrProductNotFound
	}
	if p.CurrentOwner != caller.Principal {
		return nil, entity.ProductEvent{}, ErrNotOwner
	}
	next, ok := caller.Role.NextCustodian()
	if !ok {
		return nil, entity.ProductEvent{}, newError(KindRoleViolation, "%s cannot transfer products", caller.Role)
	}
	recipient, err := s.Users.GetByPrincipal(to)
	if err != nil || recipient.Role != next {
		return nil, entity.ProductEvent{}, newError(KindRoleViolation, "%s can only transfer to a registered %s", caller.Role, next)
	}

	now := s.Now()
	p.CurrentOwner = recipient.Principal
	p.UpdatedAt = now
	if err := s.Products.Update(p); err != nil {
		return nil, entity.ProductEvent{}, fmt.Errorf("update product %s: %w", p.ID, err)
	}

	ev := entity.ProductEvent{
		ProductID:   p.ID,
		EventType:   entity.EventTypeTransferred,
		Description: description,
		FromUser:    caller.Principal,
		ToUser:      recipient.Principal,
		Timestamp:   now,
	}
	s.Events.Append(ev)
	return p, ev, nil
}

// SellProduct records a retail sale to a customer. The retailer keeps
// ownership of the lot; only its quantity goes down. price is accepted for
// the record of the call but no ledger is kept.
func (s *Service) SellProduct(ctx context.Context, productID string, customer entity.Principal, price float64, quantity uint32, description string) (*entity.Product, error) {
	p, ev, err := s.sellProduct(ctx, productID, customer, quantity, description)
	s.record("sell_product", err)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("product_id", productID).WithField("price", price).WithField("quantity", quantity).Debug("sale price not ledgered")
	}
	s.afterCommit(ctx, ev, *p)
	return p, nil
}

func (s *Service) sellProduct(ctx context.Context, productID string, customer entity.Principal, quantity uint32, description string) (*entity.Product, entity.ProductEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.callerUser(ctx)
	if !ok || caller.Role != entity.RoleRetailer {
		return nil, entity.ProductEvent{}, newError(KindRoleViolation, "only retailers can sell products")
	}
	p, err := s.Products.GetByID(productID)
	if err != nil {
		return nil, entity.ProductEvent{}, ErrProductNotFound
	}
	if p.CurrentOwner != caller.Principal {
		return nil, entity.ProductEvent{}, ErrNotOwner
	}
	if quantity > p.Quantity {
		return nil, entity.ProductEvent{}, newError(KindInsufficientStock, "insufficient stock: requested %d, available %d", quantity, p.Quantity)
	}

	now := s.Now()
	p.Quantity -= quantity
	p.UpdatedAt = now
	if err := s.Products.Update(p); err != nil {
		return nil, entity.ProductEvent{}, fmt.Errorf("update product %s: %w", p.ID, err)
	}

	ev := entity.ProductEvent{
		ProductID:   p.ID,
		EventType:   entity.EventTypeSold,
		Description: description,
		FromUser:    caller.Principal,
		ToUser:      customer,
		Timestamp:   now,
	}
	s.Events.Append(ev)
	return p, ev, nil
}

func (s *Service) GetProduct(id string) (*entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.Products.GetByID(id)
	if err != nil {
		return nil, false
	}
	return p, true
}

func (s *Service) GetAllProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Products.List()
}

// GetProductEvents returns the provenance trail of a product, oldest first.
func (s *Service) GetProductEvents(productID string) []entity.ProductEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Events.ListFor(productID)
}

// ListOwnedProducts returns the products currently held by owner.
func (s *Service) ListOwnedProducts(owner entity.Principal) []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Products.ListByOwner(owner)
}

// SearchProducts asks the indexer when one is configured and otherwise scans
// the registry. Results always reflect the registry, not the index.
func (s *Service) SearchProducts(ctx context.Context, q string, size int) ([]entity.Product, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Product{}, nil
	}

	if s.Indexer != nil {
		ids, err := s.Indexer.SearchProducts(ctx, q, size)
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		out := make([]entity.Product, 0, len(ids))
		for _, id := range ids {
			if p, err := s.Products.GetByID(id); err == nil {
				out = append(out, *p)
			}
		}
		return out, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(q)
	out := make([]entity.Product, 0)
	for _, p := range s.Products.List() {
		if len(out) == size {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}
