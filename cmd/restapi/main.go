// restapi CLI - runs the in-memory resource server and drives REST resources
// through the adapter.
package main

import (
	"os"

	"github.com/getmockd/restapi/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	return cli.Run()
}
