package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	ServerPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBTimeZone string

	JWTSecret string

	// Root of the on-disk document store. The whole tree is removed when a
	// new session begins.
	StoragePath string
)

// LoadEnv reads .env (if present) and resolves the configuration values.
// Must be called before database.Connect.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	ServerPort = getEnv("SERVER_PORT", ":3000")

	DBHost = getEnv("DB_HOST", "localhost")
	DBUser = getEnv("DB_USER", "postgres")
	DBPassword = getEnv("DB_PASSWORD", "postgres")
	DBName = getEnv("DB_NAME", "bachelor_db")
	DBPort = getEnv("DB_PORT", "5432")
	DBSSLMode = getEnv("DB_SSLMODE", "disable")
	DBTimeZone = getEnv("DB_TIMEZONE", "UTC")

	JWTSecret = getEnv("JWT_SECRET_KEY", "default_secret")

	StoragePath = getEnv("STORAGE_PATH", "./storage")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
