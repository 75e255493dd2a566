package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/config"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

var version = "0.4.0"

var (
	cfgPath     string
	logLevel    string
	inputFormat string
	noColor     bool

	cfg    *config.Config
	cfgErr error // why the file at config.Path was replaced by defaults
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "teapa",
	Short: "teapa: explore campaign relationship graphs",
	Long: ui.Brand.Sprint(ui.Web+" teapa") + " explores who is linked to whom in a campaign\n" +
		ui.Subtle.Sprint("Validate, filter, lay out and inspect nodes/links graphs"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = loadConfig()
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if noColor || !cfg.UI.Color {
			ui.SetColor(false)
		}
		logger = logging.New(cfg.Log, os.Stderr)
	},
}

func init() {
	rootCmd.SetVersionTemplate("teapa {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $XDG_CONFIG_HOME/teapa/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&inputFormat, "format", "", "Input format: json or yaml (default: from file extension)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		validateCmd(),
		inspectCmd(),
		filterCmd(),
		layoutCmd(),
		detailCmd(),
		exploreCmd(),
		configCmd(),
	)
}

func loadConfig() *config.Config {
	if cfgPath == "" {
		c, err := config.LoadChecked()
		if err != nil {
			ui.Warn.Fprintf(os.Stderr, "teapa: %v; using defaults\n", err)
		}
		cfgErr = err
		return c
	}
	c, err := config.LoadFile(cfgPath)
	if err != nil {
		ui.Bad.Printf("teapa: %v\n", err)
		os.Exit(1)
	}
	if err := c.Validate(); err != nil {
		ui.Bad.Printf("teapa: %s: %v\n", cfgPath, err)
		os.Exit(1)
	}
	return c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
