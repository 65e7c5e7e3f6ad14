package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

// RecipeIngredientInput is one submitted (ingredient id, amount) pair.
type RecipeIngredientInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput is the write payload for recipe create and update. Image
// must already be resolved to a stored location.
type RecipeInput struct {
	Ingredients []RecipeIngredientInput
	TagIDs      []uint
	Name        string
	Image       string
	Text        string
	CookingTime int
}

// RecipeService handles recipe CRUD, favorite/cart toggles and the
// shopping list aggregation.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) DB() *gorm.DB {
	return s.db
}

// List returns a page of recipes matching the filters, newest first,
// plus the unpaginated total.
func (s *RecipeService) List(caller *uint, filters RecipeFilters, offset, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := filters.Apply(s.db.Model(&models.Recipe{}), caller).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := filters.Apply(s.db.Model(&models.Recipe{}), caller).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientList.Ingredient").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// Get retrieves a recipe with all relations expanded.
func (s *RecipeService) Get(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("IngredientList.Ingredient").
		First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create persists a recipe with its ingredient amounts and tags in one
// transaction; any invalid reference fails the whole operation.
func (s *RecipeService) Create(authorID uint, in RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(in); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return s.materializeRelations(tx, &recipe, in)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID)
}

// Update replaces the recipe's fields and associations from the payload.
// The clear-then-recreate of ingredient and tag links runs inside one
// transaction so a mid-sequence failure leaves no partial state.
func (s *RecipeService) Update(callerID, id uint, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, ErrPermissionDenied
	}

	if err := validateRecipeInput(in); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         in.Name,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}
		if in.Image != "" {
			updates["image"] = in.Image
		}
		if err := tx.Model(recipe).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		return s.materializeRelations(tx, recipe, in)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes a recipe; only its author may do so.
func (s *RecipeService) Delete(callerID, id uint) error {
	recipe, err := s.Get(id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != callerID {
		return ErrPermissionDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// materializeRelations creates the ingredient amount rows and replaces
// the tag set. Runs inside the caller's transaction.
func (s *RecipeService) materializeRelations(tx *gorm.DB, recipe *models.Recipe, in RecipeInput) error {
	ingredientIDs := make([]uint, 0, len(in.Ingredients))
	for _, item := range in.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	var found int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&found).Error; err != nil {
		return err
	}
	if found != int64(len(ingredientIDs)) {
		return ErrNotFound
	}

	for _, item := range in.Ingredients {
		link := models.IngredientInRecipe{
			RecipeID:     recipe.ID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", in.TagIDs).Find(&tags).Error; err != nil {
		return err
	}
	if len(tags) != len(in.TagIDs) {
		return ErrNotFound
	}

	return tx.Model(recipe).Association("Tags").Replace(tags)
}

func validateRecipeInput(in RecipeInput) error {
	if in.CookingTime < 1 {
		return NewValidationError("cooking time must be at least 1")
	}

	seen := make(map[uint]bool, len(in.Ingredients))
	for _, item := range in.Ingredients {
		if item.Amount < 1 {
			return NewValidationError("ingredient amount must be at least 1")
		}
		if seen[item.ID] {
			return NewValidationError("ingredients must be unique")
		}
		seen[item.ID] = true
	}

	return nil
}

// Favorite marks the recipe as a favorite of the caller. Adding twice is
// a validation error.
func (s *RecipeService) Favorite(callerID, recipeID uint) (*models.Recipe, error) {
	return s.addRelation(callerID, recipeID, "favorites", func(r *models.Recipe) (string, interface{}) {
		return fmt.Sprintf("recipe %q is already in favorites", r.Name),
			&models.Favorite{UserID: callerID, RecipeID: recipeID}
	})
}

// Unfavorite removes the caller's favorite; removing a missing one is a
// validation error.
func (s *RecipeService) Unfavorite(callerID, recipeID uint) error {
	return s.removeRelation(callerID, recipeID, &models.Favorite{}, "recipe is not in favorites")
}

// CartAdd puts the recipe into the caller's shopping cart.
func (s *RecipeService) CartAdd(callerID, recipeID uint) (*models.Recipe, error) {
	return s.addRelation(callerID, recipeID, "shopping_carts", func(r *models.Recipe) (string, interface{}) {
		return fmt.Sprintf("recipe %q is already in the shopping cart", r.Name),
			&models.ShoppingCart{UserID: callerID, RecipeID: recipeID}
	})
}

// CartRemove takes the recipe out of the caller's shopping cart.
func (s *RecipeService) CartRemove(callerID, recipeID uint) error {
	return s.removeRelation(callerID, recipeID, &models.ShoppingCart{}, "recipe is not in the shopping cart")
}

func (s *RecipeService) addRelation(callerID, recipeID uint, table string, build func(*models.Recipe) (string, interface{})) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	duplicateMsg, row := build(&recipe)

	var count int64
	if err := s.db.Table(table).
		Where("user_id = ? AND recipe_id = ?", callerID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewValidationError(duplicateMsg)
	}

	if err := s.db.Create(row).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) removeRelation(callerID, recipeID uint, row interface{}, missingMsg string) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", callerID, recipeID).Delete(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewValidationError(missingMsg)
	}
	return nil
}

// ShoppingItem is one aggregated line of the downloadable list.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// ShoppingList rolls up every (ingredient, unit) pair across the
// caller's cart recipes and sums the amounts per group.
func (s *RecipeService) ShoppingList(callerID uint) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := s.db.Model(&models.IngredientInRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_in_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_in_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_in_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", callerID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderShoppingList formats the aggregated cart as a plain-text
// document, one line per distinct (name, unit) pair.
func RenderShoppingList(items []ShoppingItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s  - %d(%s)\n", item.Name, item.Total, item.MeasurementUnit)
	}
	return b.String()
}
