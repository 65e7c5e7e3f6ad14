package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

// ReferenceHandler serves the read-only tag and ingredient listings.
type ReferenceHandler struct {
	db *gorm.DB
}

func NewReferenceHandler(db *gorm.DB) *ReferenceHandler {
	return &ReferenceHandler{db: db}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

func (h *ReferenceHandler) ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Order("id").Find(&tags).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *ReferenceHandler) GetTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var tag models.Tag
	if err := h.db.First(&tag, id).Error; err != nil {
		respondError(c, service.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// ListIngredients supports autocomplete via a case-insensitive
// starts-with match on the name parameter.
func (h *ReferenceHandler) ListIngredients(c *gin.Context) {
	query := h.db.Order("id")
	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(name)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *ReferenceHandler) GetIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var ingredient models.Ingredient
	if err := h.db.First(&ingredient, id).Error; err != nil {
		respondError(c, service.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
