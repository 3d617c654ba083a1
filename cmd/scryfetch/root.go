package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtgcanvas/scryfetch/pkg/client"
	"github.com/mtgcanvas/scryfetch/pkg/config"
	"github.com/mtgcanvas/scryfetch/pkg/logging"
)

var (
	cfgFile string
	verbose bool

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scryfetch",
	Short: "Fetch Scryfall card data by name list or search query",
	Long: `Scryfetch resolves card names against the Scryfall API in efficient
batches and streams paginated search results, writing one raw card object
per line (JSON Lines). Progress and unresolved names are reported on stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(level),
			Pretty: cfg.Logging.Pretty,
			Output: os.Stderr,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(diffCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds the API client from the loaded configuration. A
// positive timeout overrides the configured per-attempt timeout.
func newClient(timeout time.Duration) (*client.Client, error) {
	ccfg := client.Config{
		BaseURL:     cfg.API.BaseURL,
		UserAgent:   cfg.API.UserAgent,
		Timeout:     cfg.Retry.Timeout(),
		MaxAttempts: cfg.Retry.MaxAttempts,
		BackoffBase: cfg.Retry.BackoffBase,
	}
	if timeout > 0 {
		ccfg.Timeout = timeout
	}
	return client.New(ccfg, logging.NewLogger("client"))
}

// openOutput opens path for writing; "-" selects stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
