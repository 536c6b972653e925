package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"checkout-service/internal/domain"
	"checkout-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *services.SettlementService
}

func NewHandler(s *services.SettlementService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/payments/intent", h.CreateIntent)
	r.POST("/payments/confirm", h.ConfirmPayment)
	r.GET("/payments/stock", h.CheckStock)
	r.POST("/orders", h.SaveOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
}

// userID reads the already-authorized user from the request. Authentication
// itself happens upstream; this service never derives permissions.
func userID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateIntent(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateIntent(c.Request.Context(), uid, toCartItems(req.Items), toCents(req.Amount))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
	})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.settle(c, services.SettleRequest{
		UserID:        uid,
		Items:         toCartItems(req.Items),
		TotalAmount:   toCents(req.TotalAmount),
		PaymentMethod: domain.PaymentMethodCard,
		PaymentStatus: domain.PaymentPaid,
		TransactionID: req.PaymentIntentID,
	})
}

func (h *Handler) SaveOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.settle(c, services.SettleRequest{
		UserID:        uid,
		Items:         toCartItems(req.Items),
		TotalAmount:   toCents(req.TotalAmount),
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		TransactionID: req.TransactionID,
		MobileNumber:  req.MobileNumber,
	})
}

func (h *Handler) settle(c *gin.Context, req services.SettleRequest) {
	result, err := h.service.Settle(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettleResponse{
		Success:       true,
		OrderID:       result.OrderID,
		TransactionID: result.TransactionID,
	})
}

func (h *Handler) CheckStock(c *gin.Context) {
	var dtos []CartItemDTO
	if err := json.Unmarshal([]byte(c.Query("items")), &dtos); err != nil || len(dtos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items required"})
		return
	}

	err := h.service.CheckAvailability(c.Request.Context(), toCartItems(dtos))
	var stockErr *domain.StockError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"available": true, "message": "All items are in stock"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusOK, gin.H{"available": false, "message": stockErr.Error()})
	default:
		writeError(c, err)
	}
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrderById(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// writeError maps the settlement error taxonomy onto HTTP status classes:
// client-correctable failures are 4xx, processing failures 5xx.
func writeError(c *gin.Context, err error) {
	var stockErr *domain.StockError
	var payErr *domain.PaymentNotCompletedError
	switch {
	case errors.As(err, &stockErr),
		errors.As(err, &payErr),
		errors.Is(err, domain.ErrOrderVerificationFailed),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrMissingPaymentIntent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProcessorUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
