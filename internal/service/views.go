package service

import (
	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

// The view builders below are the single, compile-time enumerated mapping
// from stored entities to user-facing representations. Caller identity is
// always an explicit parameter (nil means anonymous); every derived flag
// defaults to false for anonymous callers.

// UserView is the user representation with the caller-relative
// subscription flag.
type UserView struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientView flattens an (ingredient, amount) pair.
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeSummaryView is the short recipe form used in list contexts.
type RecipeSummaryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeDetailView is the full recipe form with expanded relations and
// caller-relative flags.
type RecipeDetailView struct {
	ID               uint                   `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// FollowView nests the followed author's recipes into their user view.
type FollowView struct {
	UserView
	Recipes      []RecipeSummaryView `json:"recipes"`
	RecipesCount int64               `json:"recipes_count"`
}

// BuildUserView renders user relative to caller.
func BuildUserView(db *gorm.DB, caller *uint, user *models.User) UserView {
	view := UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if caller != nil && *caller != user.ID {
		var count int64
		db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", *caller, user.ID).
			Count(&count)
		view.IsSubscribed = count > 0
	}
	return view
}

// BuildRecipeSummaryView renders the short recipe form.
func BuildRecipeSummaryView(recipe *models.Recipe) RecipeSummaryView {
	return RecipeSummaryView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// BuildRecipeDetailView renders the full recipe form. The recipe must
// have Author, Tags and IngredientList (with Ingredient) preloaded.
func BuildRecipeDetailView(db *gorm.DB, caller *uint, recipe *models.Recipe) RecipeDetailView {
	ingredients := make([]RecipeIngredientView, 0, len(recipe.IngredientList))
	for _, item := range recipe.IngredientList {
		ingredients = append(ingredients, RecipeIngredientView{
			ID:              item.Ingredient.ID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	view := RecipeDetailView{
		ID:          recipe.ID,
		Tags:        tags,
		Author:      BuildUserView(db, caller, &recipe.Author),
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}

	if caller != nil {
		var count int64
		db.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", *caller, recipe.ID).
			Count(&count)
		view.IsFavorited = count > 0

		count = 0
		db.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", *caller, recipe.ID).
			Count(&count)
		view.IsInShoppingCart = count > 0
	}

	return view
}

// BuildFollowView renders author with their recipes nested. recipesLimit
// caps the nested list when non-nil; the count always reflects the total.
func BuildFollowView(db *gorm.DB, caller *uint, author *models.User, recipesLimit *int) FollowView {
	query := db.Where("author_id = ?", author.ID).Order("id")
	if recipesLimit != nil {
		query = query.Limit(*recipesLimit)
	}

	var recipes []models.Recipe
	query.Find(&recipes)

	summaries := make([]RecipeSummaryView, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, BuildRecipeSummaryView(&recipes[i]))
	}

	var total int64
	db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&total)

	return FollowView{
		UserView:     BuildUserView(db, caller, author),
		Recipes:      summaries,
		RecipesCount: total,
	}
}
