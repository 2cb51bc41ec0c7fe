// Command httpd is the CLI bootstrap for the server (§6): it loads a
// config file, selects one of the three concurrency variants, and runs
// until shutdown.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "./httpd.conf"
	defaultMode       = "single"
)

var rootCmd = &cobra.Command{
	Use:   "httpd [config_path] [mode]",
	Short: "HTTP/1.1 origin server with three interchangeable concurrency strategies",
	Long: `httpd serves static files and CGI programs out of a configured document root.

config_path defaults to ./httpd.conf. mode selects the concurrency variant:
  single - one connection serviced at a time (default)
  pool   - fixed-size worker pool (ThreadPoolSize directive)
  select - single-threaded readiness-multiplexed reactor
`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHTTPD,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("httpd: %v", err))
		os.Exit(1)
	}
}
