package adapter

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings map[string]any
		want     Options
		wantErr  bool
	}{
		{
			name: "empty",
			want: Options{},
		},
		{
			name: "all keys",
			settings: map[string]any{
				"url":            "http://api.local:8080",
				"accept":         "text/plain",
				"connectTimeout": 250,
				"userAgent":      "ua",
				"version":        "1.2",
			},
			want: Options{URL: "http://api.local:8080", Accept: "text/plain", ConnectTimeout: 250, UserAgent: "ua", Version: "1.2"},
		},
		{
			name:     "weakly typed timeout",
			settings: map[string]any{"connectTimeout": "1000"},
			want:     Options{ConnectTimeout: 1000},
		},
		{
			name:     "float timeout from JSON",
			settings: map[string]any{"connectTimeout": float64(30)},
			want:     Options{ConnectTimeout: 30},
		},
		{
			name:     "unknown keys ignored",
			settings: map[string]any{"url": "http://x", "database": "dogs"},
			want:     Options{URL: "http://x"},
		},
		{
			name:     "bad timeout",
			settings: map[string]any{"connectTimeout": "later"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOptions(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_BaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultURL, Options{}.baseURL())
	assert.Equal(t, "http://api.local", Options{URL: "http://api.local/"}.baseURL())
	assert.Equal(t, "http://api.local/v1", Options{URL: "http://api.local/v1"}.baseURL())
}

func TestOptions_Headers(t *testing.T) {
	t.Parallel()

	h := Options{}.headers()
	assert.Equal(t, DefaultAccept, h["Accept"])
	assert.Equal(t, DefaultUserAgent, h["User-Agent"])
	assert.NotContains(t, h, "Accept-Version")

	h = Options{Version: "3"}.headers()
	assert.Equal(t, "3", h["Accept-Version"])
}

func TestOptions_HTTPClient(t *testing.T) {
	t.Parallel()

	c := Options{ConnectTimeout: 100}.httpClient()
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.DialContext)
	assert.NotSame(t, http.DefaultTransport, tr)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	c := &http.Client{}
	a := New(Options{}, WithHTTPClient(c))
	assert.Same(t, c, a.client)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	e := newHTTPError("GET", "/dogs/1", 404, []byte(`{"code":"ResourceNotFound","message":"dogs 1 not found"}`))
	assert.Equal(t, "ResourceNotFound", e.Code)
	assert.Equal(t, "GET /dogs/1: 404 ResourceNotFound: dogs 1 not found", e.Error())
	assert.True(t, IsNotFound(e))

	e = newHTTPError("PUT", "/dogs/1", 502, []byte("<html>bad gateway</html>"))
	assert.Empty(t, e.Code)
	assert.Equal(t, "PUT /dogs/1: status 502", e.Error())
	assert.False(t, IsNotFound(e))
}
