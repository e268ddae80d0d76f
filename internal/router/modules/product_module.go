package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-supply-chain/internal/interface/http"
	"github.com/oksasatya/go-ddd-supply-chain/internal/interface/middleware"
)

// ProductModule wires the product registry and custody routes.
type ProductModule struct {
	Handler *handlers.ProductHandler
	Limiter gin.HandlerFunc
}

func NewProductModule(h *handlers.ProductHandler, limiter gin.HandlerFunc) *ProductModule {
	return &ProductModule{Handler: h, Limiter: limiter}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	rg.GET("/products", m.Handler.List)
	rg.GET("/products/search", m.Handler.Search)
	rg.GET("/products/:id", m.Handler.Get)
	rg.GET("/products/:id/events", m.Handler.Events)

	auth := rg.Group("/products", middleware.RequireCaller())
	{
		auth.GET("/mine", m.Handler.Mine)
		auth.POST("", m.Limiter, m.Handler.Create)
		auth.POST("/:id/transfer", m.Limiter, m.Handler.Transfer)
		auth.POST("/:id/sell", m.Limiter, m.Handler.Sell)
	}
}
