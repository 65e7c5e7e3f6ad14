package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/config"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/api"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/database"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/middleware"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

// Server wires the services and handlers into one HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New assembles the server from its collaborators. redisClient and
// imageStore may be nil; rate limiting is skipped and images fall back
// to the local media directory respectively.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStore service.ImageStore) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db)

	if imageStore == nil {
		imageStore = service.NewLocalStore(cfg.MediaDir)
	}
	imageService := service.NewImageService(imageStore)

	var writeLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/media", cfg.MediaDir)

	v1 := router.Group("/api")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewUserHandler(userService, authService).RegisterRoutes(v1)
	api.NewReferenceHandler(db).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, imageService, authService, writeLimiter).RegisterRoutes(v1)

	return &Server{
		router: router,
		db:     db,
	}
}

// Router exposes the assembled engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	logrus.WithField("addr", addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
