package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-supply-chain/internal/application"
	"github.com/oksasatya/go-ddd-supply-chain/internal/domain/entity"
	"github.com/oksasatya/go-ddd-supply-chain/pkg/response"
)

type ProductHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.Service, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    uint32  `json:"quantity"`
	Category    string  `json:"category" binding:"max=100"`
}

type transferRequest struct {
	To          string `json:"to" binding:"required,principal"`
	Description string `json:"description" binding:"max=500"`
}

type sellRequest struct {
	Customer    string  `json:"customer" binding:"required,principal"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    uint32  `json:"quantity"`
	Description string  `json:"description" binding:"max=500"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), application.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Svc.TransferProduct(c.Request.Context(), c.Param("id"), entity.Principal(req.To), req.Description)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p, "product transferred", nil)
}

func (h *ProductHandler) Sell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := h.Svc.SellProduct(c.Request.Context(), c.Param("id"), entity.Principal(req.Customer), req.Price, req.Quantity, req.Description)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p, "product sold", nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, ok := h.Svc.GetProduct(c.Param("id"))
	if !ok {
		writeNotFound(c, "product")
		return
	}
	response.JSON(c, http.StatusOK, p, "product", nil)
}

func (h *ProductHandler) List(c *gin.Context) {
	products := h.Svc.GetAllProducts()
	response.JSON(c, http.StatusOK, products, "products", response.ListMeta{Count: len(products)})
}

// Mine lists the products the caller currently holds.
func (h *ProductHandler) Mine(c *gin.Context) {
	p, _ := application.CallerFromContext(c.Request.Context())
	products := h.Svc.ListOwnedProducts(p)
	response.JSON(c, http.StatusOK, products, "owned products", response.ListMeta{Count: len(products)})
}

// Events returns the provenance trail, oldest first. Unknown ids yield an
// empty trail.
func (h *ProductHandler) Events(c *gin.Context) {
	events := h.Svc.GetProductEvents(c.Param("id"))
	response.JSON(c, http.StatusOK, events, "product events", response.ListMeta{Count: len(events)})
}

func (h *ProductHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	products, err := h.Svc.SearchProducts(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("product search failed")
		}
		response.Abort(c, http.StatusBadGateway, "search unavailable", &response.ErrorBody{Code: "SEARCH_UNAVAILABLE"})
		return
	}
	response.JSON(c, http.StatusOK, products, "search results", response.ListMeta{Count: len(products)})
}
