package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/prosody/internal/config"
	"github.com/pthm/prosody/internal/logging"
	"github.com/pthm/prosody/internal/ui"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string

	// Set up once per run by PersistentPreRunE
	cfg    *config.Config
	logger *slog.Logger
	u      *ui.UI
)

// RootCmd is the prosody command tree
var RootCmd = &cobra.Command{
	Use:   "prosody",
	Short: "Classify the meter and rhyme scheme of a poem",
	Long: `prosody reads a poem, annotates it phonetically, and reports the
meter of every line and the rhyme scheme of the whole poem.

Poems can be plain text, markdown, or pre-annotated JSON/YAML documents.
Raw text is annotated by a prosodic service or by Claude.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", ui.FormatTerminal, "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./prosody.yaml or $PROSODY_CONFIG)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := ui.ValidateFormat(format); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger = logging.NewLogger(cfg.Log)
	u = ui.New(os.Stdout, os.Stderr, format)
	return nil
}

// GetUI returns the UI for the current run
func GetUI() *ui.UI {
	if u == nil {
		u = ui.New(os.Stdout, os.Stderr, format)
	}
	return u
}

// mustConfig returns the loaded configuration
func mustConfig() (*config.Config, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}
