package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/middleware"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

// RecipeHandler exposes recipe CRUD, the favorite and shopping cart
// toggles and the shopping list download.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
	auth    *service.AuthService

	// writeLimiter throttles recipe writes; nil disables limiting.
	writeLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, auth *service.AuthService, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		images:       images,
		auth:         auth,
		writeLimiter: writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	required := middleware.AuthMiddleware(h.auth)

	write := []gin.HandlerFunc{required}
	if h.writeLimiter != nil {
		write = append(write, h.writeLimiter.Middleware())
	}

	recipes := router.Group("/recipes")
	recipes.Use(middleware.OptionalAuthMiddleware(h.auth))
	{
		recipes.GET("", h.List)
		recipes.POST("", append(write, h.Create)...)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
		recipes.GET("/:id", h.Get)
		recipes.PATCH("/:id", append(write, h.Update)...)
		recipes.DELETE("/:id", required, h.Delete)
		recipes.POST("/:id/favorite", required, h.Favorite)
		recipes.DELETE("/:id/favorite", required, h.Unfavorite)
		recipes.POST("/:id/shopping_cart", required, h.CartAdd)
		recipes.DELETE("/:id/shopping_cart", required, h.CartRemove)
	}
}

type recipePayload struct {
	Ingredients []service.RecipeIngredientInput `json:"ingredients"`
	Tags        []uint                          `json:"tags"`
	Name        string                          `json:"name" binding:"required"`
	Image       string                          `json:"image"`
	Text        string                          `json:"text" binding:"required"`
	CookingTime int                             `json:"cooking_time"`
}

func (h *RecipeHandler) List(c *gin.Context) {
	caller := middleware.Caller(c)
	params := paginationParams(c)

	filters := service.RecipeFilters{
		TagSlugs:  c.QueryArray("tags"),
		Favorited: c.Query("is_favorited"),
		InCart:    c.Query("is_in_shopping_cart"),
	}
	if author := c.Query("author"); author != "" {
		if id, err := strconv.ParseUint(author, 10, 64); err == nil {
			authorID := uint(id)
			filters.AuthorID = &authorID
		}
	}

	recipes, total, err := h.recipes.List(caller, filters, params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]service.RecipeDetailView, 0, len(recipes))
	for i := range recipes {
		views = append(views, service.BuildRecipeDetailView(h.recipes.DB(), caller, &recipes[i]))
	}

	c.JSON(http.StatusOK, paginatedResponse(c, params, total, views))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	caller := middleware.Caller(c)
	c.JSON(http.StatusOK, service.BuildRecipeDetailView(h.recipes.DB(), caller, recipe))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	input, ok := h.bindRecipe(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(userID, *input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.BuildRecipeDetailView(h.recipes.DB(), &userID, recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, ok := h.bindRecipe(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Update(userID, id, *input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.BuildRecipeDetailView(h.recipes.DB(), &userID, recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindRecipe parses the write payload and resolves the submitted image
// into a stored location.
func (h *RecipeHandler) bindRecipe(c *gin.Context) (*service.RecipeInput, bool) {
	var payload recipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return nil, false
	}

	image, err := h.images.Resolve(c.Request.Context(), payload.Image)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	return &service.RecipeInput{
		Ingredients: payload.Ingredients,
		TagIDs:      payload.Tags,
		Name:        payload.Name,
		Image:       image,
		Text:        payload.Text,
		CookingTime: payload.CookingTime,
	}, true
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addToCollection(c, h.recipes.Favorite)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeFromCollection(c, h.recipes.Unfavorite)
}

func (h *RecipeHandler) CartAdd(c *gin.Context) {
	h.addToCollection(c, h.recipes.CartAdd)
}

func (h *RecipeHandler) CartRemove(c *gin.Context) {
	h.removeFromCollection(c, h.recipes.CartRemove)
}

func (h *RecipeHandler) addToCollection(c *gin.Context, add func(uint, uint) (*models.Recipe, error)) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := add(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.BuildRecipeSummaryView(recipe))
}

func (h *RecipeHandler) removeFromCollection(c *gin.Context, remove func(uint, uint) error) {
	userID, _ := middleware.CurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := remove(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart aggregates the caller's entire cart into one
// plain-text ingredient report.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	items, err := h.recipes.ShoppingList(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.RenderShoppingList(items)))
}
