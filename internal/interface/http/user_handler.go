package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerUserRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Role    string `json:"role" binding:"required,role"`
	Email   string `json:"email" binding:"omitempty,email"`
	Company string `json:"company" binding:"omitempty,max=200"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// Register adds the caller to the user directory.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.RegisterUser(c.Request.Context(), application.RegisterUserInput{
		Name:    req.Name,
		Role:    entity.UserRole(req.Role),
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, u, "user registered", nil)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	u, ok := h.Svc.GetCurrentUser(c.Request.Context())
	if !ok {
		writeNotFound(c, "user")
		return
	}
	response.JSON(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, ok := h.Svc.GetUser(entity.Principal(c.Param("principal")))
	if !ok {
		writeNotFound(c, "user")
		return
	}
	response.JSON(c, http.StatusOK, u, "user", nil)
}

// UpdateMyRole overwrites the caller's role.
func (h *UserHandler) UpdateMyRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.UpdateUserRole(c.Request.Context(), entity.UserRole(req.Role))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u, "role updated", nil)
}
