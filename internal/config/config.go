package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application, resolved once at
// startup. Nothing in the codebase is allowed to sniff the environment
// after Load returns.
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port      string
		GinMode   string
		BaseURL   string
		JWTSecret string
	}

	Store struct {
		// Root is the mount point of the sharded image store,
		// e.g. /mnt/image_files.
		Root          string
		MaxUploadSize int64
	}

	Game struct {
		// BallotSize is the number of assets drawn per ballot request.
		BallotSize int
		// VoterCookie is the cookie name carrying the anonymous voter token.
		VoterCookie string
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "photogame")
	config.DB.Password = getEnv("DB_PASSWORD", "photogame_password")
	config.DB.Name = getEnv("DB_NAME", "photogame_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8081")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.BaseURL = getEnv("BASE_URL", "http://localhost:8081")
	config.Server.JWTSecret = getEnv("JWT_SECRET", "iiwebwidget3177e39")

	config.Store.Root = getEnv("IMAGE_STORE_ROOT", "./image_files")
	config.Store.MaxUploadSize = getEnvAsInt64("MAX_UPLOAD_SIZE", 10485760)

	config.Game.BallotSize = getEnvAsInt("BALLOT_SIZE", 2)
	config.Game.VoterCookie = getEnv("VOTER_COOKIE", "ii_voter")

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
