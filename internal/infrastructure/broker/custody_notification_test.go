package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-supply-chain/config"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
)

func TestNotificationFor(t *testing.T) {
	cfg := &config.Config{AppName: "supply-chain", CompanyName: "Acme"}
	msg := CustodyMessage{
		Event: entity.ProductEvent{
			ProductID: "p-1", EventType: entity.EventTypeTransferred,
			FromUser: "M", ToUser: "D", Description: "pallet 7",
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		ProductName: "Widget",
		From:        &Party{Principal: "M", Name: "Maker"},
		To:          &Party{Principal: "D", Name: "Dist", Email: "d@example.test"},
	}

	job, ok := NotificationFor(cfg, msg)
	require.True(t, ok)
	assert.Equal(t, "d@example.test", job.To)

	subject, text, _, err := job.Render()
	require.NoError(t, err)
	assert.Equal(t, "Widget is now in your custody", subject)
	assert.Contains(t, text, "transferred from Maker to Dist")
}

func TestNotificationForWithoutEmail(t *testing.T) {
	_, ok := NotificationFor(&config.Config{}, CustodyMessage{To: &Party{Principal: "walk-in"}})
	assert.False(t, ok)
	_, ok = NotificationFor(&config.Config{}, CustodyMessage{})
	assert.False(t, ok)
}
