package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/middleware"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

// UserHandler exposes registration, user lookup, password change and the
// subscription operations.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  auth,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	required := middleware.AuthMiddleware(h.auth)

	users := router.Group("/users")
	users.Use(middleware.OptionalAuthMiddleware(h.auth))
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/me", required, h.Me)
		users.POST("/set_password", required, h.SetPassword)
		users.GET("/subscriptions", required, h.Subscriptions)
		users.GET("/:id", required, h.Get)
		users.POST("/:id/subscribe", required, h.Subscribe)
		users.DELETE("/:id/subscribe", required, h.Unsubscribe)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	caller := middleware.Caller(c)
	params := paginationParams(c)

	users, total, err := h.users.List(params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]service.UserView, 0, len(users))
	for i := range users {
		views = append(views, service.BuildUserView(h.users.DB(), caller, &users[i]))
	}

	c.JSON(http.StatusOK, paginatedResponse(c, params, total, views))
}

type registerPayload struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	user, err := h.auth.Register(service.RegisterInput{
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Password:  payload.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.BuildUserView(h.users.DB(), nil, user))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	caller := middleware.Caller(c)
	c.JSON(http.StatusOK, service.BuildUserView(h.users.DB(), caller, user))
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	user, err := h.users.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.BuildUserView(h.users.DB(), &userID, user))
}

type setPasswordPayload struct {
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var payload setPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	if err := h.auth.SetPassword(userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	params := paginationParams(c)

	authors, total, err := h.users.Subscriptions(userID, params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	recipesLimit := recipesLimitParam(c)
	views := make([]service.FollowView, 0, len(authors))
	for i := range authors {
		views = append(views, service.BuildFollowView(h.users.DB(), &userID, &authors[i], recipesLimit))
	}

	c.JSON(http.StatusOK, paginatedResponse(c, params, total, views))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.users.Subscribe(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.BuildFollowView(h.users.DB(), &userID, author, recipesLimitParam(c)))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Unsubscribe(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func recipesLimitParam(c *gin.Context) *int {
	if v, err := strconv.Atoi(c.Query("recipes_limit")); err == nil && v >= 0 {
		return &v
	}
	return nil
}
