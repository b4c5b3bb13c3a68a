package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/restapi/internal/cliconfig"
	"github.com/getmockd/restapi/pkg/mockapi"
)

// TestMain lets scripts exec "restapi" as a subprocess of the test binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"restapi": run,
	}))
}

// TestCLIScripts runs testdata/*.txtar, each against its own in-memory
// resource server reachable through RESTAPI_URL.
func TestCLIScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			srv := mockapi.NewServer(mockapi.ServerConfig{})
			addr, err := srv.Start("127.0.0.1:0")
			if err != nil {
				return err
			}
			env.Defer(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			})
			env.Setenv(cliconfig.EnvURL, "http://"+addr)
			env.Setenv(cliconfig.EnvConfig, "")
			return nil
		},
	})
}
