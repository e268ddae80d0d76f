package templates

import (
	"time"

	"github.com/oksasatya/go-ddd-supply-chain/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithDescription(desc string) Option { return func(d *EmailData) { d.Description = desc } }

func WithProduct(id, name string) Option {
	return func(d *EmailData) {
		d.ProductID = id
		d.ProductName = name
	}
}

func WithParties(from, to string) Option {
	return func(d *EmailData) {
		d.From = from
		d.To = to
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewCustodyEventData(cfg *config.Config, eventType, name, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, eventType, name, recipient, opts...))
}
