package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the server cannot run without is set.
// Redis and S3 are optional collaborators and are not validated here.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "is required"}.Error())
	}
	if cfg.DBUser == "" {
		errs = append(errs, ValidationError{"DB_USER", "is required"}.Error())
	}
	if cfg.DBPassword == "" && !IsTest() {
		errs = append(errs, ValidationError{"DB_PASSWORD", "is required"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
