package cliconfig

import "strconv"

// DefaultPort is the default port of the mock resource server.
const DefaultPort = 3000

// DefaultLogLevel is the default minimum log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// DefaultURL returns the default API URL for a local server on port.
func DefaultURL(port int) string {
	if port == 0 {
		port = DefaultPort
	}
	return "http://127.0.0.1:" + strconv.Itoa(port)
}

// NewDefault returns a config holding only default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		URL:       DefaultURL(DefaultPort),
		Port:      DefaultPort,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, name := range []string{"url", "port", "logLevel", "logFormat"} {
		cfg.Sources[name] = SourceDefault
	}
	return cfg
}
