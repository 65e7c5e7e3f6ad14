package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ElenaAntonenko/foodgram-project-react/config"
	"github.com/ElenaAntonenko/foodgram-project-react/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	logrus.Info("migrations applied")
}
