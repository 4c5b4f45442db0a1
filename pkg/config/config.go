package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendNeo4j    = "neo4j"
)

type Config struct {
	Port                    string `validate:"required,numeric"`
	Env                     string `validate:"oneof=development production test"`
	LogLevel                string `validate:"omitempty,oneof=debug info warn error"`
	LogFile                 string
	GraphBackend            string `validate:"oneof=postgres neo4j"`
	PostgresConnStr         string `validate:"required_if=GraphBackend postgres"`
	Neo4jURI                string `validate:"required_if=GraphBackend neo4j"`
	Neo4jUsername           string
	Neo4jPassword           string
	Neo4jDatabase           string
	JWTSecret               string `validate:"required"`
	FirebaseCredentialsPath string
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFile:                 getEnv("LOG_FILE", ""),
		GraphBackend:            getEnv("GRAPH_BACKEND", BackendPostgres),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		Neo4jURI:                getEnv("NEO4J_URI", ""),
		Neo4jUsername:           getEnv("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword:           getEnv("NEO4J_PASSWORD", ""),
		Neo4jDatabase:           getEnv("NEO4J_DATABASE", "neo4j"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed on the '%s' rule", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
