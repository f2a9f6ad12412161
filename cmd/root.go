package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/genctl/internal/app"
	"github.com/firefly-engineering/genctl/internal/config"
	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "genctl",
	Short: "Build and activate system generations from a flake",
	Long: `genctl builds a system configuration from a Nix flake and makes it the
active generation.

For each run it:
  - Picks <attr>.<hostname> from the flake, falling back to <attr>.default
  - Builds it with nix build
  - Points the system profile at the result with nix-env --set
  - Registers a GC root so the active generation is never collected`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)

		cfg, err := config.Load(app.Default.FS, configPath)
		if err != nil {
			return errors.ConfigError("failed to load configuration", err)
		}
		app.Default.Config = cfg
		logging.Debug("loaded configuration", "profile", cfg.ProfilePath(), "gcroot", cfg.GCRootPath, "attr", cfg.FlakeAttr)
		return nil
	},
}

// Execute runs the root command and reports a failure to the user.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default "+config.DefaultConfigPath+")")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
