package cliconfig

import (
	"strconv"
	"strings"
)

// CLIConfig represents the complete configuration for the restapi CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Config file (--config, RESTAPI_CONFIG or .restapirc.yaml)
// 4. Default values (lowest priority)
type CLIConfig struct {
	// Client settings
	URL            string `yaml:"url" json:"url"`
	ConnectTimeout int    `yaml:"connectTimeout" json:"connectTimeout"`
	UserAgent      string `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`
	APIVersion     string `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`

	// Server settings
	Port      int      `yaml:"port" json:"port"`
	Resources []string `yaml:"resources,omitempty" json:"resources,omitempty"`
	Seed      string   `yaml:"seed,omitempty" json:"seed,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	ConfigFile string `yaml:"-" json:"-"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Set assigns a named value from a string, recording src as its source.
// Names match the yaml keys of CLIConfig.
func (c *CLIConfig) Set(name, value, src string) error {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	switch name {
	case "url":
		c.URL = value
	case "connectTimeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ConfigError{Path: src, Message: "connectTimeout: " + err.Error()}
		}
		c.ConnectTimeout = n
	case "userAgent":
		c.UserAgent = value
	case "apiVersion":
		c.APIVersion = value
	case "port":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ConfigError{Path: src, Message: "port: " + err.Error()}
		}
		c.Port = n
	case "resources":
		c.Resources = splitList(value)
	case "seed":
		c.Seed = value
	case "logLevel":
		c.LogLevel = value
	case "logFormat":
		c.LogFormat = value
	case "configFile":
		c.ConfigFile = value
	default:
		return &ConfigError{Path: src, Message: "unknown setting " + name}
	}
	c.Sources[name] = src
	return nil
}

// AdapterSettings returns the schema settings consumed by the REST adapter.
func (c *CLIConfig) AdapterSettings() map[string]any {
	settings := map[string]any{"url": c.URL}
	if c.ConnectTimeout > 0 {
		settings["connectTimeout"] = c.ConnectTimeout
	}
	if c.UserAgent != "" {
		settings["userAgent"] = c.UserAgent
	}
	if c.APIVersion != "" {
		settings["version"] = c.APIVersion
	}
	return settings
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
