package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/response"
)

const CtxPrincipalKey = "principal"

// Identity resolves the caller from a Bearer token or the access_token
// cookie. Requests without a token pass through anonymously so the
// application layer can decide; a token that fails to verify is rejected.
func Identity(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if ck, err := c.Cookie(helpers.AccessCookie); err == nil {
				token = ck
			}
		}
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", &response.ErrorBody{Code: "INVALID_TOKEN"})
			return
		}
		p := entity.Principal(claims.Principal)
		c.Set(CtxPrincipalKey, claims.Principal)
		c.Request = c.Request.WithContext(application.WithCaller(c.Request.Context(), p))
		c.Next()
	}
}

// RequireCaller rejects anonymous requests.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := application.CallerFromContext(c.Request.Context()); !ok {
			response.Abort(c, http.StatusUnauthorized, "missing access token", &response.ErrorBody{Code: "NOT_LOGGED_IN"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
