// Package commands holds the browsectl command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"plugin-browser/cmd/browsectl/internal/config"
	"plugin-browser/cmd/browsectl/internal/output"
	"plugin-browser/driver/browse_api_client"
	"plugin-browser/utils/logger"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	cfg     *config.Config
	cliLog  *slog.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "browsectl",
	Short: "Browse the plugin catalog through a plugin-browser proxy",
	Long: `browsectl drives the plugin browser widget from the terminal.

It pages through the catalog via a running plugin-browser proxy, can keep
only plugins whose screenshots load, walks an item's screenshots, and manages
the proxy's query cache.

Example usage:
  browsectl browse                         # First page of popular plugins
  browsectl browse --sort new,updated      # Two independent widgets
  browsectl browse --search forms --pages 3
  browsectl browse --preview-only          # Only plugins with screenshots
  browsectl previews contact-form-7        # Walk candidate screenshots
  browsectl cache list                     # Inspect the proxy cache`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .browsectl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("server", "", "plugin-browser base URL (default http://localhost:9010)")
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	_ = v.BindPFlag("server.url", cmd.Flags().Lookup("server"))

	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	cliLog = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cliLog.Debug("configuration loaded",
		"server", cfg.Server.URL,
		"per_page", cfg.Browse.PerPage,
		"sort", cfg.Browse.Sort,
	)
	return nil
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor && output.UseColors(cfg.Output.Colors))
}

func newBrowseClient(opts ...browse_api_client.Option) *browse_api_client.Client {
	opts = append([]browse_api_client.Option{
		browse_api_client.WithHTTPClient(&http.Client{Timeout: cfg.Server.Timeout}),
	}, opts...)
	return browse_api_client.NewClient(cfg.Server.URL, cfg.Server.Timeout, opts...)
}
