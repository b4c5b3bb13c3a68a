package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/getmockd/restapi/internal/cliconfig"
	"github.com/getmockd/restapi/pkg/logging"
	"github.com/getmockd/restapi/pkg/mockapi"
)

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(cliconfig.EnvConfig, "")
	t.Setenv(cliconfig.EnvURL, "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newMockAPI(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(mockapi.NewServer(mockapi.ServerConfig{}).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "find", "list", "create", "update", "delete", "exists", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestArgsValidation(t *testing.T) {
	assert.Error(t, findCmd.Args(findCmd, []string{"Dog"}))
	assert.NoError(t, findCmd.Args(findCmd, []string{"Dog", "1"}))
	assert.Error(t, updateCmd.Args(updateCmd, []string{"Dog", "1"}))
	assert.Error(t, listCmd.Args(listCmd, []string{}))
	assert.Error(t, serveCmd.Args(serveCmd, []string{"extra"}))
}

func TestVersion_JSON(t *testing.T) {
	out, err := runCLI(t, "version", "--json")
	require.NoError(t, err)

	for _, key := range []string{"version", "commit", "date", "go", "platform"} {
		assert.True(t, gjson.Get(out, key).Exists(), "missing key %q", key)
	}
}

func TestCurrentBuild_LdflagsWin(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.2.3"

	b := currentBuild()
	assert.Equal(t, "1.2.3", b.Version)
	assert.Contains(t, b.Platform, "/")
}

func TestVersion_Text(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "restapi "))
}

func TestModelCommands(t *testing.T) {
	url := newMockAPI(t)

	out, err := runCLI(t, "create", "Dog", `{"name":"Rex"}`, "--url", url)
	require.NoError(t, err)
	assert.Equal(t, "Created dogs 1\n", out)

	out, err = runCLI(t, "create", "Dog", `{"name":"Ace","age":3}`, "--url", url, "--json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(out, "id").Int())

	out, err = runCLI(t, "find", "Dog", "1", "--url", url)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Rex"}`, out)

	out, err = runCLI(t, "list", "Dog", "--url", url, "--order", "name")
	require.NoError(t, err)
	assert.Equal(t, `["Ace","Rex"]`, gjson.Get(out, "#.name").Raw)

	out, err = runCLI(t, "list", "Dog", "--url", url, "--where", `{"age":3}`)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, gjson.Get(out, "#.id").Raw)

	out, err = runCLI(t, "update", "Dog", "1", `{"name":"Max"}`, "--url", url)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Max"}`, out)

	out, err = runCLI(t, "exists", "Dog", "1", "--url", url)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCLI(t, "delete", "Dog", "1", "--url", url)
	require.NoError(t, err)
	assert.Equal(t, "Deleted dogs 1\n", out)

	out, err = runCLI(t, "exists", "Dog", "1", "--url", url, "--json")
	require.NoError(t, err)
	assert.False(t, gjson.Get(out, "exists").Bool())

	_, err = runCLI(t, "find", "Dog", "1", "--url", url)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestModelCommands_Errors(t *testing.T) {
	url := newMockAPI(t)

	_, err := runCLI(t, "create", "Dog", `[1,2]`, "--url", url)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = runCLI(t, "update", "Dog", "1", `null`, "--url", url)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = runCLI(t, "list", "Dog", "--url", url, "--where", "{bad")
	assert.Error(t, err)

	_, err = runCLI(t, "delete", "Dog", "9", "--url", url)
	assert.Error(t, err)

	_, err = runCLI(t, "list", "Cat", "--url", url)
	assert.Error(t, err, "unknown resource is a 404")
}

func TestCreate_EmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(ts.Close)

	out, err := runCLI(t, "create", "Dog", `{"name":"Rex"}`, "--url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Created dogs\n", out)

	out, err = runCLI(t, "create", "Dog", `{"name":"Rex"}`, "--url", ts.URL, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null}`, out)
}

func TestModelCommands_SchemaFile(t *testing.T) {
	url := newMockAPI(t)
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := "name: app\nsettings:\n  url: " + url + "\nmodels:\n  Dog:\n    properties:\n      name:\n        type: string\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := runCLI(t, "create", "Dog", `{"name":"Rex"}`, "--schema", path)
	require.NoError(t, err)
	assert.Equal(t, "Created dogs 1\n", out)
}

func TestConnect_ExplicitURLBeatsSchemaFile(t *testing.T) {
	url := newMockAPI(t)
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  url: http://127.0.0.1:1\n"), 0o644))

	_, err := runCLI(t, "create", "Dog", `{}`, "--schema", path, "--url", url)
	require.NoError(t, err)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(42), parseID("42"))
	assert.Equal(t, "abc", parseID("abc"))
	assert.Equal(t, "1.5", parseID("1.5"))
}

func TestStartServer(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("cats:\n  - name: Tom\n"), 0o644))

	c := cliconfig.NewDefault()
	c.Port = 0
	c.Resources = []string{"cats"}
	c.Seed = seed

	srv, addr, err := startServer(c, "127.0.0.1", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	resp, err := http.Get("http://" + addr + "/cats/1")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartServer_BadSeed(t *testing.T) {
	c := cliconfig.NewDefault()
	c.Port = 0
	c.Seed = filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := startServer(c, "127.0.0.1", logging.Nop())
	assert.Error(t, err)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	t.Setenv(cliconfig.EnvConfig, "")
	resetFlags(rootCmd)

	var stdout syncBuffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&syncBuffer{})
	rootCmd.SetArgs([]string{"serve", "--port", "0", "--json"})
	defer rootCmd.SetArgs(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool { return strings.Contains(stdout.String(), "url") }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
