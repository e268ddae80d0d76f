package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-supply-chain/internal/interface/http"
	"github.com/oksasatya/go-ddd-supply-chain/internal/interface/middleware"
)

// DevModule exposes POST /dev/token. Only registered when dev tokens are enabled.
type DevModule struct {
	Handler *handlers.DevHandler
	Redis   *redis.Client
}

func NewDevModule(h *handlers.DevHandler, rdb *redis.Client) *DevModule {
	return &DevModule{Handler: h, Redis: rdb}
}

func (m *DevModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	rg.POST("/dev/token", rl, m.Handler.IssueToken)
}
