// Package config loads the function configuration from the environment,
// optionally layered over a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTableName is the CV table used when TABLE_NAME is unset.
const DefaultTableName = "curriculums"

// Config holds all application configuration
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	// AWS configuration
	AWSRegion        string `yaml:"aws_region"`
	TableName        string `yaml:"table_name"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	EventBusName     string `yaml:"event_bus_name"`

	// Behaviour
	AtomicViews           bool `yaml:"atomic_views"`
	CircuitBreakerEnabled bool `yaml:"circuit_breaker_enabled"`

	// Observability
	EnableMetrics    bool   `yaml:"enable_metrics"`
	MetricsNamespace string `yaml:"metrics_namespace"`
	EnableTracing    bool   `yaml:"enable_tracing"`

	// Local server
	ServerAddress string `yaml:"server_address"`
	SeedFile      string `yaml:"seed_file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Environment:      "development",
		LogLevel:         "info",
		AWSRegion:        "us-east-1",
		TableName:        DefaultTableName,
		MetricsNamespace: "CVPortfolio",
		ServerAddress:    ":8080",
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and finally the environment.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.TableName = getEnv("TABLE_NAME", c.TableName)
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)
	c.AtomicViews = getEnvBool("ATOMIC_VIEWS", c.AtomicViews)
	c.CircuitBreakerEnabled = getEnvBool("CIRCUIT_BREAKER_ENABLED", c.CircuitBreakerEnabled)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.SeedFile = getEnv("SEED_FILE", c.SeedFile)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TableName) == "" {
		return fmt.Errorf("TABLE_NAME must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
