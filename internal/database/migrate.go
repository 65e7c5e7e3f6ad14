package database

import (
	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

// AutoMigrate creates or updates the schema for every entity, including
// the composite unique indexes on the join tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientInRecipe{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Follow{},
	)
}
