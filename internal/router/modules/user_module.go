package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-supply-chain/internal/interface/http"
	"github.com/oksasatya/go-ddd-supply-chain/internal/interface/middleware"
)

// UserModule wires the user directory routes.
// Public: GET /users/:principal
// Caller required: POST /users, GET /users/me, PUT /users/me/role
type UserModule struct {
	Handler *handlers.UserHandler
	Limiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, limiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/:principal", m.Handler.GetUser)

	auth := rg.Group("/users", middleware.RequireCaller())
	{
		auth.GET("/me", m.Handler.GetMe)
		auth.POST("", m.Limiter, m.Handler.Register)
		auth.PUT("/me/role", m.Limiter, m.Handler.UpdateMyRole)
	}
}
