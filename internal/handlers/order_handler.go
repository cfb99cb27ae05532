package handlers

import (
	"net/http"

	"food_ordering/internal/logger"
	"food_ordering/internal/middleware"
	"food_ordering/internal/models"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	log          *logger.Logger
}

func NewOrderHandler(orderService services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	order, err := h.orderService.PlaceOrder(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}
