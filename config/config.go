package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the application needs at startup.
type Config struct {
	DatabaseURL    string
	DatabaseDriver string

	// R2 is nil when logo storage is not configured; the application
	// then runs without logo uploads.
	R2 *R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Load reads configuration from the given settings file and the
// environment, with the environment taking precedence. An empty path
// falls back to a .env file in the working directory if one exists.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	} else {
		// Optional for local development; absence is not an error.
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		DatabaseDriver: driver,
	}

	r2, err := loadR2()
	if err != nil {
		return nil, err
	}
	cfg.R2 = r2

	return cfg, nil
}

// loadR2 returns nil when none of the R2 keys are set. A partially
// filled block is a configuration mistake and fails loudly.
func loadR2() (*R2Config, error) {
	r2 := &R2Config{
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if r2.AccountID == "" && r2.AccessKeyID == "" && r2.SecretAccessKey == "" && r2.BucketName == "" && r2.PublicBaseURL == "" {
		return nil, nil
	}
	if r2.AccountID == "" || r2.AccessKeyID == "" || r2.SecretAccessKey == "" || r2.BucketName == "" || r2.PublicBaseURL == "" {
		return nil, fmt.Errorf("incomplete R2 configuration: all R2_* variables must be set together")
	}
	return r2, nil
}
