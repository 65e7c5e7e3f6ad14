package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

func TestListTags(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	breakfast := CreateTestTag(t, testDB.DB, "Breakfast", "breakfast")
	CreateTestTag(t, testDB.DB, "Dinner", "dinner")

	w := PerformRequest(router, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []models.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Slug)

	t.Run("get by id", func(t *testing.T) {
		w := PerformRequest(router, http.MethodGet, fmt.Sprintf("/api/tags/%d", breakfast.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tag models.Tag
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))
		assert.Equal(t, "Breakfast", tag.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := PerformRequest(router, http.MethodGet, "/api/tags/999", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListIngredients(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestIngredient(t, testDB.DB, "Sugar", "g")
	CreateTestIngredient(t, testDB.DB, "sunflower oil", "ml")
	CreateTestIngredient(t, testDB.DB, "flour", "g")

	t.Run("no filter returns everything", func(t *testing.T) {
		w := PerformRequest(router, http.MethodGet, "/api/ingredients", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var ingredients []models.Ingredient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
		assert.Len(t, ingredients, 3)
	})

	t.Run("prefix search is case insensitive", func(t *testing.T) {
		w := PerformRequest(router, http.MethodGet, "/api/ingredients?name=su", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var ingredients []models.Ingredient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
		require.Len(t, ingredients, 2)
		assert.Equal(t, "Sugar", ingredients[0].Name)
		assert.Equal(t, "sunflower oil", ingredients[1].Name)
	})

	t.Run("prefix does not match the middle", func(t *testing.T) {
		w := PerformRequest(router, http.MethodGet, "/api/ingredients?name=gar", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var ingredients []models.Ingredient
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))
		assert.Empty(t, ingredients)
	})
}
