package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel        string // Minimum log level (debug, info, warning, error)
	RedisAddr       string // Address of the redis server holding the scoreboard; empty keeps it in memory
	RedisPassword   string // Password for the redis server
	ScoreboardTTL   int    // Seconds a scoreboard key lives after its first entry
	ScoreboardSize  int    // Entries kept per agent kind on the scoreboard
	MongoURI        string // Connection URI for the run archive; empty keeps it in memory
	MongoDB         string // Database name for the run archive
	MaxSessions     int    // Maximum number of live simulation sessions
	SessionMaxTicks int    // Tick budget of a single session
	ChartDir        string // Directory the console driver writes learning curves to
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		ScoreboardTTL:   getEnvAsIntWithDefault("SCOREBOARD_TTL", 24*60*60),
		ScoreboardSize:  getEnvAsIntWithDefault("SCOREBOARD_SIZE", 100),
		MongoURI:        getEnvWithDefault("MONGO_URI", ""),
		MongoDB:         getEnvWithDefault("MONGO_DB", "agents"),
		MaxSessions:     getEnvAsIntWithDefault("MAX_SESSIONS", 64),
		SessionMaxTicks: getEnvAsIntWithDefault("SESSION_MAX_TICKS", 5000),
		ChartDir:        getEnvWithDefault("CHART_DIR", "charts"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer.
// It falls back to defaultValue when the variable is unset and logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
