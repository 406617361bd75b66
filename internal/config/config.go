package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ukydev/fleet-insights/internal/models"
)

// Config holds the application configuration
type Config struct {
	DatasetPath   string        `yaml:"dataset_path,omitempty"`   // CSV file with the fleet dataset
	DatasetSource string        `yaml:"dataset_source,omitempty"` // "csv" (default) or "mongo"
	HTTPPort      string        `yaml:"http_port,omitempty"`
	Mongo         MongoConfig   `yaml:"mongo,omitempty"`
	MQTT          MQTTConfig    `yaml:"mqtt,omitempty"`
	Users         []models.User `yaml:"users,omitempty"`
}

// MongoConfig holds the MongoDB dataset store settings
type MongoConfig struct {
	URI      string `yaml:"uri,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// MQTTConfig holds settings for the report publisher
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
}

// Load reads the config file, then applies environment overrides. A .env
// file next to the binary is loaded first if present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Missing file is fine: env and defaults cover everything.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATASET_PATH"); v != "" {
		c.DatasetPath = v
	}
	if v := os.Getenv("DATASET_SOURCE"); v != "" {
		c.DatasetSource = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		c.MQTT.Enabled = true
		c.MQTT.Broker = v
	}
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetHTTPPort returns the configured HTTP port with a default of 8080.
func (c *Config) GetHTTPPort() string {
	if c.HTTPPort == "" {
		return "8080"
	}
	return c.HTTPPort
}

// GetDatasetSource returns "mongo" when configured, otherwise "csv".
func (c *Config) GetDatasetSource() string {
	if c.DatasetSource == "mongo" {
		return "mongo"
	}
	return "csv"
}

// GetMongoDatabase returns the configured database name with a default.
func (c *Config) GetMongoDatabase() string {
	if c.Mongo.Database == "" {
		return "fleet_insights"
	}
	return c.Mongo.Database
}

// GetTopicPrefix returns the MQTT topic prefix with a default.
func (c *MQTTConfig) GetTopicPrefix() string {
	if c.TopicPrefix == "" {
		return "fleet_insights"
	}
	return c.TopicPrefix
}

// FindUser returns the configured user with the given username.
func (c *Config) FindUser(username string) (*models.User, bool) {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i], true
		}
	}
	return nil, false
}
