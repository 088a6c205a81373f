package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo corresponds to the 'app' section with basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address string `yaml:"address"` // e.g. ":4000"
	GinMode string `yaml:"ginMode"` // "debug", "release" or "test"
}

// AuthConfig holds JWT issuance settings.
type AuthConfig struct {
	JwtSecret string `yaml:"jwtSecret"`
	TokenTTL  int    `yaml:"tokenTTL"` // token lifetime in seconds
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// MinIOConfig holds the MinIO object storage connection settings.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure"`
	PublicURL string `yaml:"publicURL"` // base URL under which uploaded objects are served
}

// DatabaseConfigs groups the configuration of every backing store.
type DatabaseConfigs struct {
	MongoDB MongoConfig `yaml:"mongodb"`
	MinIO   MinIOConfig `yaml:"minio"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Logger    LoggerConfig    `yaml:"logger"`
	Databases DatabaseConfigs `yaml:"databases"`
}

// LoadConfig loads and parses the YAML configuration file at the given path.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	return &cfg, nil
}
