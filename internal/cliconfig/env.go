package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvURL            = "RESTAPI_URL"
	EnvPort           = "RESTAPI_PORT"
	EnvConnectTimeout = "RESTAPI_CONNECT_TIMEOUT"
	EnvResources      = "RESTAPI_RESOURCES"
	EnvLogLevel       = "RESTAPI_LOG_LEVEL"
	EnvLogFormat      = "RESTAPI_LOG_FORMAT"
	EnvConfig         = "RESTAPI_CONFIG"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// RESTAPI_URL
	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
		cfg.Sources["url"] = SourceEnv
	}

	// RESTAPI_PORT
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
			cfg.Sources["port"] = SourceEnv
			// A local URL follows the port unless something more specific set it.
			if cfg.Sources["url"] == SourceDefault {
				cfg.URL = DefaultURL(port)
			}
		}
	}

	// RESTAPI_CONNECT_TIMEOUT
	if v := os.Getenv(EnvConnectTimeout); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.ConnectTimeout = ms
			cfg.Sources["connectTimeout"] = SourceEnv
		}
	}

	// RESTAPI_RESOURCES
	if v := os.Getenv(EnvResources); v != "" {
		cfg.Resources = splitList(v)
		cfg.Sources["resources"] = SourceEnv
	}

	// RESTAPI_LOG_LEVEL
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	// RESTAPI_LOG_FORMAT
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
}

// GetConfigFileFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func GetConfigFileFromEnv() string {
	return os.Getenv(EnvConfig)
}
