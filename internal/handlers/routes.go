package handlers

import (
	"food_ordering/internal/logger"
	"food_ordering/internal/middleware"
	"food_ordering/internal/models"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User       *UserHandler
	Restaurant *RestaurantHandler
	Cart       *CartHandler
	Order      *OrderHandler
	Health     *HealthHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, auth middleware.Authenticator, log *logger.Logger) {
	router.GET("/health", h.Health.Health)

	// Public endpoints
	router.POST("/register/customer/", h.User.RegisterCustomer)
	router.POST("/register/owner/", h.User.RegisterOwner)
	router.POST("/auth/login/", h.User.Login)
	router.GET("/restaurants/:id/menu-items/", h.Restaurant.PublicMenu)

	authed := router.Group("/", middleware.Auth(auth, log))
	{
		authed.POST("/auth/logout/", h.User.Logout)
		authed.GET("/users/me/", h.User.Me)
		authed.PATCH("/update_role/:id/", middleware.RequireAdmin(), h.User.UpdateRole)

		authed.GET("/restaurants/", h.Restaurant.ListRestaurants)
		authed.POST("/restaurants/", h.Restaurant.CreateRestaurant)
		authed.PATCH("/restaurants/:id/", h.Restaurant.UpdateRestaurant)
		authed.DELETE("/restaurants/:id/", h.Restaurant.DeleteRestaurant)
		authed.POST("/restaurants/:id/menu/", h.Restaurant.CreateMenuItem)
		authed.PATCH("/menu/:id/", h.Restaurant.UpdateMenuItem)
		authed.DELETE("/menu/:id/", h.Restaurant.DeleteMenuItem)
	}

	customer := authed.Group("/", middleware.RequireRoles(models.RoleCustomer))
	{
		customer.GET("/cart/", h.Cart.GetCart)
		customer.DELETE("/cart/", h.Cart.ClearCart)
		customer.POST("/cart/items/", h.Cart.AddItem)
		customer.PATCH("/cart/items/:id/", h.Cart.UpdateItem)
		customer.DELETE("/cart/items/:id/", h.Cart.RemoveItem)

		customer.POST("/orders/", h.Order.PlaceOrder)
		customer.GET("/orders/", h.Order.ListOrders)
		customer.GET("/orders/:id/", h.Order.GetOrder)
	}
}
