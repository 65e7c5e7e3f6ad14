package service

import (
	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

// RecipeFilters translates the recipe list query parameters into store
// predicates scoped to the requesting identity.
type RecipeFilters struct {
	// TagSlugs matches recipes carrying ANY of the given tags.
	TagSlugs []string
	// AuthorID is an exact match on the recipe author.
	AuthorID *uint
	// Favorited and InCart carry the raw query values. Only the literal
	// "1" restricts the set, and only for an authenticated caller; any
	// other value is a no-op.
	Favorited string
	InCart    string
}

// Apply narrows query according to the filters and the caller identity
// (nil for anonymous callers).
func (f RecipeFilters) Apply(query *gorm.DB, caller *uint) *gorm.DB {
	if len(f.TagSlugs) > 0 {
		tagged := query.Session(&gorm.Session{NewDB: true}).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}

	if caller != nil {
		if f.Favorited == "1" {
			fav := query.Session(&gorm.Session{NewDB: true}).
				Model(&models.Favorite{}).
				Select("favorites.recipe_id").
				Where("favorites.user_id = ?", *caller)
			query = query.Where("recipes.id IN (?)", fav)
		}
		if f.InCart == "1" {
			cart := query.Session(&gorm.Session{NewDB: true}).
				Model(&models.ShoppingCart{}).
				Select("shopping_carts.recipe_id").
				Where("shopping_carts.user_id = ?", *caller)
			query = query.Where("recipes.id IN (?)", cart)
		}
	}

	return query
}
