package memory

import (
	"sync"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/repository"
)

// EventLog keeps every event in one slice in append order.
type EventLog struct {
	mu     sync.RWMutex
	events []entity.ProductEvent
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Append(ev entity.ProductEvent) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *EventLog) ListFor(productID string) []entity.ProductEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.ProductEvent, 0)
	for _, ev := range l.events {
		if ev.ProductID == productID {
			out = append(out, ev)
		}
	}
	return out
}

func (l *EventLog) All() []entity.ProductEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.ProductEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *EventLog) Replace(events []entity.ProductEvent) {
	cp := make([]entity.ProductEvent, len(events))
	copy(cp, events)
	l.mu.Lock()
	l.events = cp
	l.mu.Unlock()
}

var _ repository.EventLog = (*EventLog)(nil)
