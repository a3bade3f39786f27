package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string
	DatabaseURL string

	JWTSecret          string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	GDriveCredentialsPath string
	GDriveTokenPath       string
	GDriveFolderID        string

	DeepLinkBaseURL string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		RefreshSecret:      getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY_MINUTES", 15*time.Minute),
		RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY_MINUTES", 7*24*time.Hour),

		GDriveCredentialsPath: getEnv("GDRIVE_CREDENTIALS_PATH", ""),
		GDriveTokenPath:       getEnv("GDRIVE_TOKEN_PATH", ""),
		GDriveFolderID:        getEnv("GDRIVE_FOLDER_ID", ""),

		DeepLinkBaseURL: getEnv("DEEP_LINK_BASE_URL", "https://travel-buddy.app/trips"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
