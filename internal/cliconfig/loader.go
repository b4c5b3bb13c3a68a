package cliconfig

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalConfigFileName is the name of the config file looked up in the
// current directory when no path is given.
const LocalConfigFileName = ".restapirc.yaml"

// FindLocalConfig searches for .restapirc.yaml in the current directory.
// Returns empty string if not found.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path := filepath.Join(cwd, LocalConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML or JSON file. The format is
// chosen by extension; anything other than .json is read as YAML.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				line, col := FindLineColumn(data, syntaxErr.Offset)
				return nil, &ConfigError{Path: path, Line: line, Column: col, Message: syntaxErr.Error()}
			}
			return nil, &ConfigError{Path: path, Message: err.Error()}
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	cfg.ConfigFile = path
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration error with optional location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// FindLineColumn finds the line and column number for a byte offset.
func FindLineColumn(data []byte, offset int64) (line, col int) {
	line = 1
	col = 1
	for i := int64(0); i < offset && int(i) < len(data); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.URL != "" {
		target.URL = source.URL
		target.Sources["url"] = sourceType
	}
	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
		if target.Sources["url"] == SourceDefault {
			target.URL = DefaultURL(source.Port)
		}
	}
	if source.ConnectTimeout != 0 {
		target.ConnectTimeout = source.ConnectTimeout
		target.Sources["connectTimeout"] = sourceType
	}
	if source.UserAgent != "" {
		target.UserAgent = source.UserAgent
		target.Sources["userAgent"] = sourceType
	}
	if source.APIVersion != "" {
		target.APIVersion = source.APIVersion
		target.Sources["apiVersion"] = sourceType
	}
	if len(source.Resources) > 0 {
		target.Resources = append([]string(nil), source.Resources...)
		target.Sources["resources"] = sourceType
	}
	if source.Seed != "" {
		target.Seed = source.Seed
		target.Sources["seed"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.ConfigFile != "" {
		target.ConfigFile = source.ConfigFile
		target.Sources["configFile"] = sourceType
	}
}

// Load builds the configuration from defaults, a config file and the
// environment. configPath names the file explicitly; when empty,
// RESTAPI_CONFIG and then .restapirc.yaml are tried. An explicitly named
// file must exist.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(configPath string) (*CLIConfig, error) {
	cfg := NewDefault()

	if configPath == "" {
		configPath = GetConfigFileFromEnv()
	}
	explicit := configPath != ""
	if !explicit {
		local, err := FindLocalConfig()
		if err != nil {
			return nil, err
		}
		configPath = local
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				fileCfg = nil
			} else {
				return nil, err
			}
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	}

	LoadEnvConfig(cfg)
	return cfg, nil
}
