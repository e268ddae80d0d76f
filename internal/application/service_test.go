package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/infrastructure/memory"
)

// newTestService wires in-memory storage, a ticking clock and sequential ids.
func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.NewUserRepository(), memory.NewProductRepository(), memory.NewEventLog(), nil, nil)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	seq := 0
	svc.NewID = func() string {
		seq++
		return fmt.Sprintf("prod-%03d", seq)
	}
	return svc
}

func as(p entity.Principal) context.Context {
	return WithCaller(context.Background(), p)
}

func mustRegister(t *testing.T, svc *Service, p entity.Principal, role entity.UserRole) {
	t.Helper()
	_, err := svc.RegisterUser(as(p), RegisterUserInput{Name: string(p), Role: role})
	require.NoError(t, err)
}

func mustCreate(t *testing.T, svc *Service, owner entity.Principal, qty uint32) *entity.Product {
	t.Helper()
	p, err := svc.CreateProduct(as(owner), CreateProductInput{Name: "Widget", Description: "A widget", Price: 9.5, Quantity: qty, Category: "tools"})
	require.NoError(t, err)
	return p
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, ev entity.ProductEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexProduct(ctx context.Context, p entity.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockIndexer) SearchProducts(ctx context.Context, q string, size int) ([]string, error) {
	args := m.Called(ctx, q, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
