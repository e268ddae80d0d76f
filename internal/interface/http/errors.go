package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/response"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/validation"
)

var kindStatus = map[application.ErrorKind]int{
	application.KindInvalidInput:      http.StatusBadRequest,
	application.KindAlreadyRegistered: http.StatusConflict,
	application.KindNotFound:          http.StatusNotFound,
	application.KindNotLoggedIn:       http.StatusUnauthorized,
	application.KindUnauthorized:      http.StatusForbidden,
	application.KindRoleViolation:     http.StatusForbidden,
	application.KindNotOwner:          http.StatusForbidden,
	application.KindInsufficientStock: http.StatusConflict,
}

// StatusFor maps an application error kind to its HTTP status.
func StatusFor(kind application.ErrorKind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// writeError renders err as an error envelope. Errors outside the closed
// kind set are logged and hidden behind a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := application.KindOf(err)
	if kind == application.KindUnknown {
		if logger != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unexpected error")
		}
		response.Abort(c, http.StatusInternalServerError, "internal error", &response.ErrorBody{Code: kind.String()})
		return
	}
	response.Abort(c, StatusFor(kind), err.Error(), &response.ErrorBody{Code: kind.String()})
}

func writeBindError(c *gin.Context, err error) {
	response.Abort(c, http.StatusBadRequest, "invalid payload", &response.ErrorBody{
		Code:    application.KindInvalidInput.String(),
		Details: validation.ToDetails(err),
	})
}

func writeNotFound(c *gin.Context, what string) {
	response.Abort(c, http.StatusNotFound, what+" not found", &response.ErrorBody{Code: application.KindNotFound.String()})
}
