package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/restapi/internal/cliconfig"
	"github.com/getmockd/restapi/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	apiURL     string
	jsonOutput bool
	configPath string
	logLevel   string

	// cfg is the resolved configuration of the running command.
	cfg *cliconfig.CLIConfig
	// log is the logger built from cfg.
	log *slog.Logger

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restapi",
	Short: "restapi persists models through a REST resource API",
	Long: `restapi maps models onto REST resources: a model named Dog lives at /dogs,
a record with id 1 at /dogs/1.

Use "restapi serve" to run an in-memory resource server, and the model
commands (find, list, create, update, delete, exists) to talk to any API
that follows the same conventions.

Configuration can be provided via flags, RESTAPI_* environment variables,
or a configuration file (--config, or .restapirc.yaml in the current directory).`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	os.Exit(Run())
}

// Run runs the root command and returns the process exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "REST API base URL (default: http://127.0.0.1:3000)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig resolves defaults, config file and environment, then applies
// the flags the user actually set.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := cliconfig.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for flag, name := range map[string]string{"url": "url", "log-level": "logLevel"} {
		f := flags.Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := c.Set(name, f.Value.String(), cliconfig.SourceFlag); err != nil {
			return err
		}
	}
	if configPath != "" {
		c.Sources["configFile"] = cliconfig.SourceFlag
	}

	cfg = c
	log = logging.New(logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: logging.ParseFormat(c.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	return nil
}
