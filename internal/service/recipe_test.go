package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

func TestRenderShoppingList(t *testing.T) {
	items := []ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", Total: 300},
		{Name: "milk", MeasurementUnit: "ml", Total: 500},
	}

	got := RenderShoppingList(items)
	assert.Equal(t, "flour  - 300(g)\nmilk  - 500(ml)\n", got)
}

func TestRenderShoppingListEmpty(t *testing.T) {
	assert.Equal(t, "", RenderShoppingList(nil))
}

func TestShoppingListAggregation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "password123")
	recipes := NewRecipeService(db)

	flour := models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	milk := models.Ingredient{Name: "milk", MeasurementUnit: "ml"}
	require.NoError(t, db.Create(&flour).Error)
	require.NoError(t, db.Create(&milk).Error)
	tag := models.Tag{Name: "Dinner", Color: "#E26C2D", Slug: "dinner"}
	require.NoError(t, db.Create(&tag).Error)

	input := func(pairs []RecipeIngredientInput) RecipeInput {
		return RecipeInput{
			Ingredients: pairs,
			TagIDs:      []uint{tag.ID},
			Name:        "dish",
			Image:       "/media/dish.jpg",
			Text:        "cook it",
			CookingTime: 10,
		}
	}

	first, err := recipes.Create(user.ID, input([]RecipeIngredientInput{
		{ID: flour.ID, Amount: 200},
		{ID: milk.ID, Amount: 100},
	}))
	require.NoError(t, err)
	second, err := recipes.Create(user.ID, input([]RecipeIngredientInput{
		{ID: flour.ID, Amount: 100},
	}))
	require.NoError(t, err)

	_, err = recipes.CartAdd(user.ID, first.ID)
	require.NoError(t, err)
	_, err = recipes.CartAdd(user.ID, second.ID)
	require.NoError(t, err)

	items, err := recipes.ShoppingList(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ShoppingItem{Name: "flour", MeasurementUnit: "g", Total: 300}, items[0])
	assert.Equal(t, ShoppingItem{Name: "milk", MeasurementUnit: "ml", Total: 100}, items[1])

	t.Run("another user's cart is empty", func(t *testing.T) {
		other := createUser(t, db, "password123")
		items, err := recipes.ShoppingList(other.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestValidateRecipeInput(t *testing.T) {
	cases := []struct {
		name  string
		input RecipeInput
		msg   string
	}{
		{
			name:  "zero cooking time",
			input: RecipeInput{CookingTime: 0},
			msg:   "cooking time",
		},
		{
			name: "zero amount",
			input: RecipeInput{
				CookingTime: 5,
				Ingredients: []RecipeIngredientInput{{ID: 1, Amount: 0}},
			},
			msg: "amount",
		},
		{
			name: "duplicate ingredients",
			input: RecipeInput{
				CookingTime: 5,
				Ingredients: []RecipeIngredientInput{{ID: 1, Amount: 2}, {ID: 1, Amount: 3}},
			},
			msg: "unique",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRecipeInput(tc.input)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestCreateRecipeUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "password123")
	recipes := NewRecipeService(db)

	flour := models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&flour).Error)

	t.Run("unknown ingredient", func(t *testing.T) {
		_, err := recipes.Create(user.ID, RecipeInput{
			Ingredients: []RecipeIngredientInput{{ID: 9999, Amount: 10}},
			Name:        "dish",
			Text:        "cook it",
			CookingTime: 10,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := recipes.Create(user.ID, RecipeInput{
			Ingredients: []RecipeIngredientInput{{ID: flour.ID, Amount: 10}},
			TagIDs:      []uint{9999},
			Name:        "dish",
			Text:        "cook it",
			CookingTime: 10,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	// A failed create must not leave partial rows behind.
	var recipeCount, linkCount int64
	db.Model(&models.Recipe{}).Count(&recipeCount)
	db.Model(&models.IngredientInRecipe{}).Count(&linkCount)
	assert.Zero(t, recipeCount)
	assert.Zero(t, linkCount)
}

func TestDeleteRecipeCleansRelations(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "password123")
	fan := createUser(t, db, "password123")
	recipes := NewRecipeService(db)

	flour := models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&flour).Error)
	tag := models.Tag{Name: "Dinner", Color: "#E26C2D", Slug: "dinner"}
	require.NoError(t, db.Create(&tag).Error)

	recipe, err := recipes.Create(author.ID, RecipeInput{
		Ingredients: []RecipeIngredientInput{{ID: flour.ID, Amount: 100}},
		TagIDs:      []uint{tag.ID},
		Name:        "dish",
		Image:       "/media/dish.jpg",
		Text:        "cook it",
		CookingTime: 10,
	})
	require.NoError(t, err)

	_, err = recipes.Favorite(fan.ID, recipe.ID)
	require.NoError(t, err)
	_, err = recipes.CartAdd(fan.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(author.ID, recipe.ID))

	var favorites, carts, links int64
	db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&favorites)
	db.Model(&models.ShoppingCart{}).Where("recipe_id = ?", recipe.ID).Count(&carts)
	db.Model(&models.IngredientInRecipe{}).Where("recipe_id = ?", recipe.ID).Count(&links)
	assert.Zero(t, favorites)
	assert.Zero(t, carts)
	assert.Zero(t, links)
}
