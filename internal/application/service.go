package application

import (
	"context"
	"expvar"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

// opsCounter is served on /debug/vars.
var opsCounter = expvar.NewMap("supplychain_ops")

// EventPublisher fans appended events out to other systems.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev entity.ProductEvent) error
}

// ProductIndexer keeps a searchable copy of product state.
// SearchProducts returns matching product ids, best match first.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p entity.Product) error
	SearchProducts(ctx context.Context, q string, size int) ([]string, error)
}

// Service owns the user directory, product registry and event log and is the
// only writer of all three. Every operation holds mu for its whole duration,
// so each call is atomic with respect to every other call.
type Service struct {
	mu sync.RWMutex

	Users    repo.UserRepository
	Products repo.ProductRepository
	Events   repo.EventLog
	Identity IdentityProvider

	// optional collaborators, nil disables them
	Publisher EventPublisher
	Indexer   ProductIndexer
	Logger    *logrus.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(users repo.UserRepository, products repo.ProductRepository, events repo.EventLog, identity IdentityProvider, logger *logrus.Logger) *Service {
	if identity == nil {
		identity = ContextIdentity{}
	}
	return &Service{
		Users:    users,
		Products: products,
		Events:   events,
		Identity: identity,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    uuid.NewString,
	}
}

func (s *Service) caller(ctx context.Context) (entity.Principal, bool) {
	return s.Identity.Caller(ctx)
}

// callerUser resolves the caller to its directory record. Callers must hold mu.
func (s *Service) callerUser(ctx context.Context) (*entity.User, bool) {
	p, ok := s.caller(ctx)
	if !ok {
		return nil, false
	}
	u, err := s.Users.GetByPrincipal(p)
	if err != nil {
		return nil, false
	}
	return u, true
}

// record counts the outcome and logs refusals at debug.
func (s *Service) record(op string, err error) {
	if err == nil {
		opsCounter.Add(op+".ok", 1)
		return
	}
	kind := KindOf(err)
	opsCounter.Add(op+".err."+kind.String(), 1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"op": op, "error_kind": kind.String()}).Debug(err.Error())
	}
}

// afterCommit runs the side effects of a committed transition outside the lock.
// Failures are logged only; the event log stays the source of truth.
func (s *Service) afterCommit(ctx context.Context, ev entity.ProductEvent, p entity.Product) {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"product_id": ev.ProductID,
			"event_type": ev.EventType,
			"from":       ev.FromUser,
			"to":         ev.ToUser,
		}).Info("custody event recorded")
	}
	if s.Publisher != nil {
		if err := s.Publisher.PublishEvent(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", ev.ProductID).Warn("publish custody event failed")
		}
	}
	if s.Indexer != nil {
		if err := s.Indexer.IndexProduct(ctx, p); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("index product failed")
		}
	}
}
