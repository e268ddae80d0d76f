package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/memory"
)

func TestCreateProduct(t *testing.T) {
	t.Run("manufacturer creates and owns the product", func(t *testing.T) {
		svc := newTestService(t)
		mustRegister(t, svc, "A", entity.RoleManufacturer)

		p := mustCreate(t, svc, "A", 10)

		assert.Equal(t, "prod-001", p.ID)
		assert.Equal(t, entity.Principal("A"), p.Manufacturer)
		assert.Equal(t, entity.Principal("A"), p.CurrentOwner)
		assert.Equal(t, entity.ProductAvailable, p.Status)
		assert.Equal(t, uint32(10), p.Quantity)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)

		events := svc.GetProductEvents(p.ID)
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventTypeCreated, events[0].EventType)
		assert.Equal(t, entity.Principal("A"), events[0].FromUser)
		assert.Equal(t, entity.Principal("A"), events[0].ToUser)
	})

	t.Run("unregistered caller is not logged in", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.CreateProduct(as("stranger"), CreateProductInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotLoggedIn)

		_, err = svc.CreateProduct(context.Background(), CreateProductInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("other roles are unauthorized", func(t *testing.T) {
		svc := newTestService(t)
		for _, role := range []entity.UserRole{entity.RoleDistributor, entity.RoleRetailer, entity.RoleCustomer} {
			p := entity.Principal("u-" + role)
			mustRegister(t, svc, p, role)
			_, err := svc.CreateProduct(as(p), CreateProductInput{Name: "x"})
			assert.ErrorIs(t, err, ErrUnauthorized, role)
		}
		assert.Empty(t, svc.GetAllProducts())
	})

	t.Run("inactive manufacturer is unauthorized", func(t *testing.T) {
		svc := newTestService(t)
		mustRegister(t, svc, "A", entity.RoleManufacturer)
		u, _ := svc.Users.GetByPrincipal("A")
		u.IsActive = false
		require.NoError(t, svc.Users.Update(u))

		_, err := svc.CreateProduct(as("A"), CreateProductInput{Name: "x"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("ids are unique across rapid calls", func(t *testing.T) {
		svc := NewService(memory.NewUserRepository(), memory.NewProductRepository(), memory.NewEventLog(), nil, nil)
		mustRegister(t, svc, "A", entity.RoleManufacturer)
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			p := mustCreate(t, svc, "A", 1)
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
		assert.Len(t, svc.GetAllProducts(), 50)
	})
}

func TestTransferScenario(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "A", entity.RoleManufacturer)
	p := mustCreate(t, svc, "A", 10)
	mustRegister(t, svc, "B", entity.RoleDistributor)

	moved, err := svc.TransferProduct(as("A"), p.ID, "B", "to warehouse")
	require.NoError(t, err)
	assert.Equal(t, entity.Principal("B"), moved.CurrentOwner)
	assert.Equal(t, entity.Principal("A"), moved.Manufacturer)
	assert.True(t, moved.UpdatedAt.After(moved.CreatedAt))

	events := svc.GetProductEvents(p.ID)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventTypeTransferred, events[1].EventType)
	assert.Equal(t, entity.Principal("A"), events[1].FromUser)
	assert.Equal(t, entity.Principal("B"), events[1].ToUser)
	assert.Equal(t, "to warehouse", events[1].Description)

	_, err = svc.TransferProduct(as("B"), p.ID, "A", "send back")
	assert.ErrorIs(t, err, ErrRoleViolation)

	got, ok := svc.GetProduct(p.ID)
	require.True(t, ok)
	assert.Equal(t, entity.Principal("B"), got.CurrentOwner)
	assert.Len(t, svc.GetProductEvents(p.ID), 2)
}

func TestTransferPreconditions(t *testing.T) {
	setup := func(t *testing.T) (*Service, *entity.Product) {
		svc := newTestService(t)
		mustRegister(t, svc, "M", entity.RoleManufacturer)
		mustRegister(t, svc, "M2", entity.RoleManufacturer)
		mustRegister(t, svc, "D", entity.RoleDistributor)
		mustRegister(t, svc, "R", entity.RoleRetailer)
		mustRegister(t, svc, "C", entity.RoleCustomer)
		return svc, mustCreate(t, svc, "M", 5)
	}

	tests := []struct {
		name   string
		caller entity.Principal
		prep   func(t *testing.T, svc *Service, id string)
		id     string
		to     entity.Principal
		want   error
	}{
		{name: "unregistered caller", caller: "ghost", to: "D", want: ErrNotLoggedIn},
		{name: "unknown product", caller: "M", id: "missing", to: "D", want: ErrProductNotFound},
		{name: "not the owner", caller: "M2", to: "D", want: ErrNotOwner},
		{name: "manufacturer to retailer", caller: "M", to: "R", want: ErrRoleViolation},
		{name: "manufacturer to unregistered", caller: "M", to: "nobody", want: ErrRoleViolation},
		{name: "manufacturer to manufacturer", caller: "M", to: "M2", want: ErrRoleViolation},
		{
			name: "distributor to customer", caller: "D", to: "C", want: ErrRoleViolation,
			prep: func(t *testing.T, svc *Service, id string) {
				_, err := svc.TransferProduct(as("M"), id, "D", "")
				require.NoError(t, err)
			},
		},
		{
			name: "retailer cannot transfer at all", caller: "R", to: "D", want: ErrRoleViolation,
			prep: func(t *testing.T, svc *Service, id string) {
				_, err := svc.TransferProduct(as("M"), id, "D", "")
				require.NoError(t, err)
				_, err = svc.TransferProduct(as("D"), id, "R", "")
				require.NoError(t, err)
			},
		},
		{name: "unknown product checked before ownership", caller: "M2", id: "missing", to: "D", want: ErrProductNotFound},
		{name: "not logged in checked first", caller: "ghost", id: "missing", to: "D", want: ErrNotLoggedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, p := setup(t)
			if tt.prep != nil {
				tt.prep(t, svc, p.ID)
			}
			before, _ := svc.GetProduct(p.ID)
			eventsBefore := len(svc.GetProductEvents(p.ID))
			id := tt.id
			if id == "" {
				id = p.ID
			}

			_, err := svc.TransferProduct(as(tt.caller), id, tt.to, "attempt")

			assert.ErrorIs(t, err, tt.want)
			after, _ := svc.GetProduct(p.ID)
			assert.Equal(t, before, after)
			assert.Len(t, svc.GetProductEvents(p.ID), eventsBefore)
		})
	}
}

func TestOwnershipFollowsLastTransfer(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "M", entity.RoleManufacturer)
	mustRegister(t, svc, "D", entity.RoleDistributor)
	mustRegister(t, svc, "R", entity.RoleRetailer)
	p := mustCreate(t, svc, "M", 3)

	_, err := svc.TransferProduct(as("M"), p.ID, "D", "leg 1")
	require.NoError(t, err)
	_, err = svc.TransferProduct(as("D"), p.ID, "M", "rejected")
	require.Error(t, err)
	_, err = svc.TransferProduct(as("D"), p.ID, "R", "leg 2")
	require.NoError(t, err)

	got, _ := svc.GetProduct(p.ID)
	var lastTransfer entity.ProductEvent
	transfers := 0
	for _, ev := range svc.GetProductEvents(p.ID) {
		if ev.EventType == entity.EventTypeTransferred {
			lastTransfer = ev
			transfers++
		}
	}
	assert.Equal(t, 2, transfers)
	assert.Equal(t, lastTransfer.ToUser, got.CurrentOwner)
	assert.Equal(t, entity.Principal("R"), got.CurrentOwner)
	assert.Equal(t, entity.Principal("M"), got.Manufacturer)
}

func TestSellProduct(t *testing.T) {
	setup := func(t *testing.T) (*Service, *entity.Product) {
		svc := newTestService(t)
		mustRegister(t, svc, "M", entity.RoleManufacturer)
		mustRegister(t, svc, "D", entity.RoleDistributor)
		mustRegister(t, svc, "R", entity.RoleRetailer)
		mustRegister(t, svc, "R2", entity.RoleRetailer)
		p := mustCreate(t, svc, "M", 10)
		_, err := svc.TransferProduct(as("M"), p.ID, "D", "")
		require.NoError(t, err)
		_, err = svc.TransferProduct(as("D"), p.ID, "R", "")
		require.NoError(t, err)
		return svc, p
	}

	t.Run("retailer sells part of the lot and keeps ownership", func(t *testing.T) {
		svc, p := setup(t)

		sold, err := svc.SellProduct(as("R"), p.ID, "cust-1", 12.5, 4, "counter sale")

		require.NoError(t, err)
		assert.Equal(t, uint32(6), sold.Quantity)
		assert.Equal(t, entity.Principal("R"), sold.CurrentOwner)
		assert.Equal(t, 9.5, sold.Price)
		assert.Equal(t, entity.ProductAvailable, sold.Status)

		events := svc.GetProductEvents(p.ID)
		require.Len(t, events, 4)
		last := events[3]
		assert.Equal(t, entity.EventTypeSold, last.EventType)
		assert.Equal(t, entity.Principal("R"), last.FromUser)
		assert.Equal(t, entity.Principal("cust-1"), last.ToUser)
	})

	t.Run("selling everything leaves status untouched", func(t *testing.T) {
		svc, p := setup(t)
		sold, err := svc.SellProduct(as("R"), p.ID, "cust-1", 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, uint32(0), sold.Quantity)
		assert.Equal(t, entity.ProductAvailable, sold.Status)
	})

	t.Run("over-selling leaves the product unchanged", func(t *testing.T) {
		svc, p := setup(t)
		before, _ := svc.GetProduct(p.ID)

		_, err := svc.SellProduct(as("R"), p.ID, "cust-1", 1, 11, "")

		assert.ErrorIs(t, err, ErrInsufficientStock)
		after, _ := svc.GetProduct(p.ID)
		assert.Equal(t, before, after)
		assert.Len(t, svc.GetProductEvents(p.ID), 3)
	})

	t.Run("retailer that is not the owner", func(t *testing.T) {
		svc, p := setup(t)
		_, err := svc.SellProduct(as("R2"), p.ID, "cust-1", 1, 1, "")
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("non retailers cannot sell", func(t *testing.T) {
		svc, p := setup(t)
		for _, caller := range []entity.Principal{"M", "D", "ghost"} {
			_, err := svc.SellProduct(as(caller), p.ID, "cust-1", 1, 1, "")
			assert.ErrorIs(t, err, ErrRoleViolation, caller)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.SellProduct(as("R"), "missing", "cust-1", 1, 1, "")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestEventsAreIsolatedAndOrdered(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "M", entity.RoleManufacturer)
	mustRegister(t, svc, "D", entity.RoleDistributor)
	p1 := mustCreate(t, svc, "M", 1)
	p2 := mustCreate(t, svc, "M", 1)
	_, err := svc.TransferProduct(as("M"), p2.ID, "D", "p2 first")
	require.NoError(t, err)
	_, err = svc.TransferProduct(as("M"), p1.ID, "D", "p1 second")
	require.NoError(t, err)

	e1 := svc.GetProductEvents(p1.ID)
	require.Len(t, e1, 2)
	assert.Equal(t, "p1 second", e1[1].Description)
	for _, ev := range e1 {
		assert.Equal(t, p1.ID, ev.ProductID)
	}
	assert.True(t, e1[0].Timestamp.Before(e1[1].Timestamp))

	assert.Empty(t, svc.GetProductEvents("nope"))
}

func TestReadAccessors(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "M", entity.RoleManufacturer)
	mustRegister(t, svc, "D", entity.RoleDistributor)
	a := mustCreate(t, svc, "M", 1)
	b := mustCreate(t, svc, "M", 1)
	_, err := svc.TransferProduct(as("M"), b.ID, "D", "")
	require.NoError(t, err)

	all := svc.GetAllProducts()
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)

	mine := svc.ListOwnedProducts("D")
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	_, ok := svc.GetProduct("missing")
	assert.False(t, ok)
}

func TestSideEffects(t *testing.T) {
	t.Run("publishes and indexes committed transitions only", func(t *testing.T) {
		svc := newTestService(t)
		pub := new(MockPublisher)
		idx := new(MockIndexer)
		svc.Publisher = pub
		svc.Indexer = idx
		pub.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)
		idx.On("IndexProduct", mock.Anything, mock.Anything).Return(nil)

		mustRegister(t, svc, "M", entity.RoleManufacturer)
		p := mustCreate(t, svc, "M", 1)
		_, err := svc.TransferProduct(as("M"), p.ID, "nobody", "")
		require.Error(t, err)

		pub.AssertNumberOfCalls(t, "PublishEvent", 1)
		idx.AssertNumberOfCalls(t, "IndexProduct", 1)
		ev := pub.Calls[0].Arguments.Get(1).(entity.ProductEvent)
		assert.Equal(t, entity.EventTypeCreated, ev.EventType)
	})

	t.Run("publisher failure does not fail the call", func(t *testing.T) {
		svc := newTestService(t)
		pub := new(MockPublisher)
		svc.Publisher = pub
		pub.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		mustRegister(t, svc, "M", entity.RoleManufacturer)
		p := mustCreate(t, svc, "M", 1)

		assert.Len(t, svc.GetProductEvents(p.ID), 1)
		pub.AssertExpectations(t)
	})
}

func TestSearchProducts(t *testing.T) {
	t.Run("registry scan without an indexer", func(t *testing.T) {
		svc := newTestService(t)
		mustRegister(t, svc, "M", entity.RoleManufacturer)
		_, err := svc.CreateProduct(as("M"), CreateProductInput{Name: "Blue Widget", Category: "tools"})
		require.NoError(t, err)
		_, err = svc.CreateProduct(as("M"), CreateProductInput{Name: "Red Gadget", Category: "toys"})
		require.NoError(t, err)

		got, err := svc.SearchProducts(context.Background(), "widget", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Blue Widget", got[0].Name)

		got, err = svc.SearchProducts(context.Background(), "TO", 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = svc.SearchProducts(context.Background(), "  ", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("indexer hits are resolved against the registry", func(t *testing.T) {
		svc := newTestService(t)
		idx := new(MockIndexer)
		idx.On("IndexProduct", mock.Anything, mock.Anything).Return(nil)
		svc.Indexer = idx
		mustRegister(t, svc, "M", entity.RoleManufacturer)
		p := mustCreate(t, svc, "M", 1)
		idx.On("SearchProducts", mock.Anything, "widget", 10).Return([]string{"stale-id", p.ID}, nil)

		got, err := svc.SearchProducts(context.Background(), "widget", 10)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, p.ID, got[0].ID)
	})

	t.Run("indexer errors are returned", func(t *testing.T) {
		svc := newTestService(t)
		idx := new(MockIndexer)
		svc.Indexer = idx
		idx.On("SearchProducts", mock.Anything, "x", 10).Return(nil, errors.New("es down"))

		_, err := svc.SearchProducts(context.Background(), "x", 10)
		assert.Error(t, err)
	})
}
