package handlers

import (
	"net/http"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/middleware"
	"food_ordering/internal/models"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	authService services.AuthService
	log         *logger.Logger
	now         func() time.Time
}

func NewUserHandler(userService services.UserService, authService services.AuthService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, log: log, now: time.Now}
}

type profileRequest struct {
	OtherName   string `json:"other_name" binding:"required,max=255"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required,max=10"`
}

type registerRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	FirstName   string          `json:"first_name" binding:"required,max=150"`
	LastName    string          `json:"last_name" binding:"required,max=150"`
	UserProfile *profileRequest `json:"user_profile"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer owner none"`
}

func (h *UserHandler) RegisterCustomer(c *gin.Context) {
	h.register(c, models.RoleCustomer, "Customer account created successfully")
}

func (h *UserHandler) RegisterOwner(c *gin.Context) {
	h.register(c, models.RoleOwner, "Owner account created successfully")
}

func (h *UserHandler) register(c *gin.Context, role models.UserRole, message string) {
	var req registerRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	input := services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.UserProfile != nil {
		input.Profile = &services.ProfileInput{
			OtherName:   req.UserProfile.OtherName,
			DateOfBirth: req.UserProfile.DateOfBirth,
			PhoneNumber: req.UserProfile.PhoneNumber,
		}
	}

	user, err := h.userService.Register(c.Request.Context(), input, role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	view := newUserView(user, h.now())
	c.JSON(http.StatusCreated, gin.H{
		"message":      message,
		"status":       true,
		"user":         view,
		"user_profile": view.Profile,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"access":     result.Token,
		"token_type": "Bearer",
		"expires_at": result.ExpiresAt,
		"user":       newUserView(result.User, h.now()),
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logged out successfully")
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "Current user retrieved successfully", newUserView(user, h.now()))
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoleRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), middleware.CurrentUserID(c), userID, models.UserRole(req.Role))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respond(c, http.StatusOK, "User role updated successfully", newUserView(user, h.now()))
}
