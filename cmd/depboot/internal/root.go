package internal

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ift-infra/depboot/internal/config"
)

var (
	flagConfig  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "depboot"})
)

var rootCmd = &cobra.Command{
	Use:   "depboot",
	Short: "depboot builds and installs the pyHealpix native transform library",
	Long: `depboot fetches the pyHealpix spherical-harmonics transform library,
regenerates its build scripts, and configures, builds, and installs it
for both the default and an alternate Python interpreter.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is $XDG_CONFIG_HOME/depboot/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

// loadConfig resolves the layered configuration for a command.
func loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{ConfigFile: flagConfig})
}
