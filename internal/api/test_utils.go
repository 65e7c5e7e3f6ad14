package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/database"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

// TestDB holds the in-memory database and services shared by API tests.
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB creates an isolated in-memory database with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
	}
}

// SetupTestRouter builds a router with every handler registered, backed
// by an isolated in-memory database.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	recipeService := service.NewRecipeService(testDB.DB)
	userService := service.NewUserService(testDB.DB)
	imageService := service.NewImageService(service.NewLocalStore(t.TempDir()))

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api")
	NewAuthHandler(testDB.AuthService).RegisterRoutes(v1)
	NewUserHandler(userService, testDB.AuthService).RegisterRoutes(v1)
	NewReferenceHandler(testDB.DB).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, imageService, testDB.AuthService, nil).RegisterRoutes(v1)

	return router, testDB
}

// CreateTestUserAndToken creates a user with a known password and
// returns their id with a valid token.
func CreateTestUserAndToken(t *testing.T, testDB *TestDB) (uint, string) {
	t.Helper()

	suffix := uuid.New().String()[:8]
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username:     "testuser_" + suffix,
		Email:        fmt.Sprintf("testuser+%s@example.com", suffix),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hashed),
	}
	if err := testDB.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := testDB.AuthService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user.ID, token
}

// CreateTestIngredient inserts one reference ingredient.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient: %v", err)
	}
	return ingredient
}

// CreateTestTag inserts one reference tag.
func CreateTestTag(t *testing.T, db *gorm.DB, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Color: "#E26C2D", Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	return tag
}

// PerformRequest makes an HTTP request against the router, attaching the
// token when non-empty.
func PerformRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// recipePayloadFor builds a minimal valid recipe payload over the given
// references.
func recipePayloadFor(ingredients []models.Ingredient, amounts []int, tags []models.Tag) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(ingredients))
	for i, ing := range ingredients {
		items = append(items, map[string]interface{}{"id": ing.ID, "amount": amounts[i]})
	}
	tagIDs := make([]uint, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	return map[string]interface{}{
		"ingredients":  items,
		"tags":         tagIDs,
		"name":         "Test Recipe",
		"image":        "http://example.com/image.jpg",
		"text":         "Test description",
		"cooking_time": 30,
	}
}
