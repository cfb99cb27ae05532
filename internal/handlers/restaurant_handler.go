package handlers

import (
	"net/http"

	"food_ordering/internal/logger"
	"food_ordering/internal/middleware"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RestaurantHandler struct {
	restaurantService services.RestaurantService
	menuService       services.MenuService
	log               *logger.Logger
}

func NewRestaurantHandler(restaurantService services.RestaurantService, menuService services.MenuService, log *logger.Logger) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService, menuService: menuService, log: log}
}

type createRestaurantRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"max=255"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
}

type createMenuRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	IsAvailable *bool            `json:"is_available"`
}

type updateMenuRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurantService.ListOwned(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if len(restaurants) == 0 {
		respond(c, http.StatusOK, "No restaurants found for this user", []interface{}{})
		return
	}
	respond(c, http.StatusOK, "All your restaurants", restaurants)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req createRestaurantRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), middleware.CurrentUserID(c), services.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Restaurant successfully created", restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRestaurantRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), middleware.CurrentUserID(c), id, services.RestaurantUpdate{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Restaurant successfully updated", restaurant)
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantHandler) CreateMenuItem(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createMenuRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), middleware.CurrentUserID(c), restaurantID, services.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusCreated, "Menu successfully created", item)
}

func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateMenuRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), middleware.CurrentUserID(c), id, services.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Menu successfully updated", item)
}

func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.menuService.DeleteMenuItem(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublicMenu needs no authentication.
func (h *RestaurantHandler) PublicMenu(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.menuService.ListPublicMenu(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Menu items retrieved successfully", items)
}
