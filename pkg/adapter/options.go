package adapter

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout/core"
	"github.com/mitchellh/mapstructure"
)

// Default header values sent when the settings leave them unset.
const (
	DefaultAccept    = "application/json"
	DefaultUserAgent = "restapi-adapter"
	DefaultURL       = "http://127.0.0.1"
)

// Options configures the HTTP client. Every field is optional and is read
// from the schema settings under the mapstructure key shown.
type Options struct {
	// URL is the base URL of the remote API.
	URL string `mapstructure:"url"`
	// Accept is sent as the Accept header.
	Accept string `mapstructure:"accept"`
	// ConnectTimeout bounds connection establishment, in milliseconds.
	ConnectTimeout int `mapstructure:"connectTimeout"`
	// UserAgent is sent as the User-Agent header.
	UserAgent string `mapstructure:"userAgent"`
	// Version is sent as the Accept-Version header.
	Version string `mapstructure:"version"`
}

// ParseOptions decodes the known keys out of schema settings. Unknown keys
// are ignored; numeric strings are accepted for ConnectTimeout.
func ParseOptions(settings map[string]any) (Options, error) {
	var opts Options
	if len(settings) == 0 {
		return opts, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(settings); err != nil {
		return opts, fmt.Errorf("invalid adapter settings: %w", err)
	}
	return opts, nil
}

// baseURL returns the configured URL without a trailing slash.
func (o Options) baseURL() string {
	u := strings.TrimRight(o.URL, "/")
	if u == "" {
		return DefaultURL
	}
	return u
}

// headers returns the request headers derived from the options.
func (o Options) headers() core.H {
	h := core.H{
		"Accept":     o.Accept,
		"User-Agent": o.UserAgent,
	}
	if h["Accept"] == "" {
		h["Accept"] = DefaultAccept
	}
	if h["User-Agent"] == "" {
		h["User-Agent"] = DefaultUserAgent
	}
	if o.Version != "" {
		h["Accept-Version"] = o.Version
	}
	return h
}

// httpClient builds the client used for every request.
func (o Options) httpClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if o.ConnectTimeout > 0 {
		dialer := &net.Dialer{
			Timeout:   time.Duration(o.ConnectTimeout) * time.Millisecond,
			KeepAlive: 30 * time.Second,
		}
		transport.DialContext = dialer.DialContext
	}
	return &http.Client{Transport: transport}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.log = l
	}
}

// WithHTTPClient replaces the client built from Options.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		a.client = c
	}
}
