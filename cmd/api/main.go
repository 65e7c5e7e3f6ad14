package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ElenaAntonenko/foodgram-project-react/config"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/database"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/server"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.Infof("configuration loaded: %s", cfg)

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" || cfg.RedisAddr() != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logrus.Warnf("redis unavailable, rate limiting disabled: %v", err)
		}
	}

	var imageStore service.ImageStore
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			logrus.Fatalf("failed to initialize S3: %v", err)
		}
		if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
			logrus.Warnf("failed to apply S3 bucket policy: %v", err)
		}
		imageStore = service.NewS3Store(s3cfg)
	}

	srv := server.New(cfg, db, redisClient, imageStore)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		logrus.Infof("received signal: %v", sig)
	}

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server shutdown error: %v", err)
	}
	logrus.Info("server stopped")
}
