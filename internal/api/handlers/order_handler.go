// internal/api/handlers/order_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
	"github.com/koncoweb/petnexus-sub000/internal/service"
)

type OrderHandler struct {
	restockService *service.RestockService
}

func NewOrderHandler(restockService *service.RestockService) *OrderHandler {
	return &OrderHandler{restockService: restockService}
}

type createOrderRequest struct {
	StoreID    string                         `json:"store_id" binding:"required"`
	SupplierID string                         `json:"supplier_id" binding:"required"`
	Items      []domain.RestockRecommendation `json:"items"`
}

// CreateOrder materializes the submitted recommendations into a pending
// restock order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	order, err := h.restockService.CreateOrder(c.Request.Context(), req.StoreID, req.SupplierID, req.Items)
	if err != nil {
		var empty *domain.EmptySelectionError
		if errors.As(err, &empty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": empty.Error()})
			return
		}
		log.Error().Err(err).Str("store_id", req.StoreID).Msg("failed to create restock order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order with its line items.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.restockService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("order_id", c.Param("id")).Msg("failed to fetch order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders returns a store's orders, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	storeID := c.Query("store_id")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
		return
	}

	orders, err := h.restockService.ListOrders(c.Request.Context(), storeID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		log.Error().Err(err).Str("store_id", storeID).Msg("failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus transitions an order through its lifecycle. Illegal
// transitions and unknown labels are client errors.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	err := h.restockService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		var invalid *domain.InvalidInputError
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error()})
		default:
			log.Error().Err(err).Str("order_id", c.Param("id")).Msg("failed to update order status")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
