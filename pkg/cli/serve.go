package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/restapi/internal/cliconfig"
	"github.com/getmockd/restapi/pkg/cli/internal/output"
	"github.com/getmockd/restapi/pkg/mockapi"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

var (
	servePort      int
	serveHost      string
	serveSeed      string
	serveResources string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the in-memory resource server (foreground)",
	Long: `Run an in-memory REST resource server.

Each resource (users, posts and dogs by default) supports:
  GET    /<resource>        list, optional ?query={"where":{...},"order":"..."}
  POST   /<resource>        create, the server assigns the id
  GET    /<resource>/{id}   fetch
  HEAD   /<resource>/{id}   existence check
  PUT    /<resource>/{id}   update attributes
  DELETE /<resource>/{id}   delete

POST /_admin/reset empties every resource, GET /_admin/state shows counts.
State lives in memory and is lost when the server stops.`,
	Example: `  # Start with defaults on port 3000
  restapi serve

  # Custom resources and seed data
  restapi serve --port 8080 --resources cats,birds --seed seed.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", cliconfig.DefaultPort, "HTTP server port")
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Interface to listen on")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "YAML file of records to create at startup, keyed by resource")
	serveCmd.Flags().StringVar(&serveResources, "resources", "", "Comma-separated resource names (default: users,posts,dogs)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for flag, name := range map[string]string{"port": "port", "seed": "seed", "resources": "resources"} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := cfg.Set(name, f.Value.String(), cliconfig.SourceFlag); err != nil {
				return err
			}
		}
	}

	srv, addr, err := startServer(cfg, serveHost, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if jsonOutput {
		_ = output.JSON(cmd.OutOrStdout(), map[string]any{"url": "http://" + addr, "resources": srv.Store().Names()})
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %v on http://%s\n", srv.Store().Names(), addr)
	}

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startServer builds the store described by c, seeds it and starts
// listening on host:c.Port.
func startServer(c *cliconfig.CLIConfig, host string, logger *slog.Logger) (*mockapi.Server, string, error) {
	store := mockapi.NewStore(c.Resources...)
	if c.Seed != "" {
		data, err := mockapi.LoadSeedFile(c.Seed)
		if err != nil {
			return nil, "", err
		}
		if err := store.Seed(data); err != nil {
			return nil, "", err
		}
		logger.Info("seed data loaded", "file", c.Seed)
	}

	srv := mockapi.NewServer(mockapi.ServerConfig{
		Store:  store,
		Logger: logger.With("component", "mockapi"),
	})
	addr, err := srv.Start(net.JoinHostPort(host, strconv.Itoa(c.Port)))
	if err != nil {
		return nil, "", fmt.Errorf("start server: %w", err)
	}
	return srv, addr, nil
}
