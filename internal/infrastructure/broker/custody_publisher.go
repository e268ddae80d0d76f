package broker

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
)

// CustodyMessage is the JSON body put on the custody events queue. Party
// details are resolved at publish time so consumers need no directory access.
type CustodyMessage struct {
	Event       entity.ProductEvent `json:"event"`
	ProductName string              `json:"product_name,omitempty"`
	From        *Party              `json:"from,omitempty"`
	To          *Party              `json:"to,omitempty"`
	PublishedAt time.Time           `json:"published_at"`
}

type Party struct {
	Principal entity.Principal `json:"principal"`
	Name      string           `json:"name"`
	Role      entity.UserRole  `json:"role"`
	Email     string           `json:"email,omitempty"`
}

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Directory resolves principals and product ids for message enrichment.
type Directory interface {
	GetUser(p entity.Principal) (*entity.User, bool)
	GetProduct(id string) (*entity.Product, bool)
}

// CustodyPublisher turns custody events into queue messages.
type CustodyPublisher struct {
	pub JSONPublisher
	dir Directory
	now func() time.Time
}

func NewCustodyPublisher(pub JSONPublisher, dir Directory) *CustodyPublisher {
	return &CustodyPublisher{pub: pub, dir: dir, now: func() time.Time { return time.Now().UTC() }}
}

func (p *CustodyPublisher) PublishEvent(ctx context.Context, ev entity.ProductEvent) error {
	msg := CustodyMessage{Event: ev, PublishedAt: p.now()}
	if p.dir != nil {
		if prod, ok := p.dir.GetProduct(ev.ProductID); ok {
			msg.ProductName = prod.Name
		}
		msg.From = p.party(ev.FromUser)
		msg.To = p.party(ev.ToUser)
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.pub.PublishJSON(c, msg)
}

func (p *CustodyPublisher) party(principal entity.Principal) *Party {
	u, ok := p.dir.GetUser(principal)
	if !ok {
		return &Party{Principal: principal}
	}
	return &Party{Principal: u.Principal, Name: u.Name, Role: u.Role, Email: u.Email}
}
