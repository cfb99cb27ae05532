package handlers

import (
	"net/http"

	"food_ordering/internal/logger"
	"food_ordering/internal/middleware"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
	log         *logger.Logger
}

func NewCartHandler(cartService services.CartService, log *logger.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, log: log}
}

type addCartItemRequest struct {
	Menu     uint `json:"menu" binding:"required"`
	Quantity *int `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "User cart retrieved successfully", newCartView(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart cleared successfully")
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addCartItemRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), middleware.CurrentUserID(c), req.Menu, req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Item added to cart successfully", item)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateCartItemRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	item, err := h.cartService.UpdateItemQuantity(c.Request.Context(), middleware.CurrentUserID(c), id, req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if item == nil {
		respond(c, http.StatusOK, "Item removed from cart", nil)
		return
	}
	respond(c, http.StatusOK, "Item quantity updated successfully", item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cartService.RemoveItem(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "Item removed from cart successfully")
}
