package broker

import (
	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-supply-chain/pkg/mailer/templates"
)

// NotificationFor builds the email sent to the receiving party of a custody
// event. It reports false when that party has no email on file.
func NotificationFor(cfg *config.Config, msg CustodyMessage) (mailer.EmailJob, bool) {
	if msg.To == nil || msg.To.Email == "" {
		return mailer.EmailJob{}, false
	}
	from := string(msg.Event.FromUser)
	if msg.From != nil && msg.From.Name != "" {
		from = msg.From.Name
	}
	to := string(msg.Event.ToUser)
	if msg.To.Name != "" {
		to = msg.To.Name
	}
	data := mailtpl.NewCustodyEventData(cfg, msg.Event.EventType, msg.To.Name, msg.To.Email,
		mailtpl.WithProduct(msg.Event.ProductID, msg.ProductName),
		mailtpl.WithParties(from, to),
		mailtpl.WithDescription(msg.Event.Description),
		mailtpl.WithTime(msg.Event.Timestamp),
	)
	return mailer.EmailJob{To: msg.To.Email, Template: mailtpl.CustodyEvent, Data: data}, true
}
