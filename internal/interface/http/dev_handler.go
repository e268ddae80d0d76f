package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/pkg/helpers"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/response"
)

// DevHandler mints access tokens for arbitrary principals. It must only be
// routed when DEV_TOKENS_ENABLED is set.
type DevHandler struct {
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewDevHandler(jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *DevHandler {
	return &DevHandler{JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type devTokenRequest struct {
	Principal string `json:"principal" binding:"required,principal"`
}

type devTokenResponse struct {
	Principal   string `json:"principal"`
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

func (h *DevHandler) IssueToken(c *gin.Context) {
	var req devTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	tok, exp, err := h.JWT.GenerateAccessToken(req.Principal)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, tok, exp)
	if h.Logger != nil {
		h.Logger.WithField("principal", req.Principal).Warn("dev token issued")
	}
	response.JSON(c, http.StatusOK, devTokenResponse{
		Principal:   req.Principal,
		AccessToken: tok,
		ExpiresAt:   exp.UTC().Format(time.RFC3339),
	}, "dev token issued", nil)
}
