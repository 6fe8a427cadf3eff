package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ift-infra/depboot/internal/bootstrap"
	"github.com/ift-infra/depboot/internal/config"
)

var (
	installPrefix       string
	installRepo         string
	installRef          string
	installJobs         int
	installPython       string
	installPythonConfig string
	installSplitPrefix  bool
	installKeepWork     bool
	installTimeout      time.Duration
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Fetch, build, and install pyHealpix for both interpreter variants",
	Long: `Install clones the pyHealpix repository into a transient work tree,
runs autoreconf, then configures, builds (make -jN), and installs the
library twice: once against the build's default Python and once against
an explicitly selected interpreter/python-config pair. The work tree is
removed on every exit path.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installPrefix, "prefix", "", "install prefix (default: the build system's own default)")
	installCmd.Flags().StringVar(&installRepo, "repo", "", "source repository URL")
	installCmd.Flags().StringVar(&installRef, "ref", "", "branch, tag, or commit to build")
	installCmd.Flags().IntVarP(&installJobs, "jobs", "j", 0, "parallel make jobs")
	installCmd.Flags().StringVar(&installPython, "python", "", "alternate Python interpreter for the second pass")
	installCmd.Flags().StringVar(&installPythonConfig, "python-config", "", "paired config tool (default: <python>-config)")
	installCmd.Flags().BoolVar(&installSplitPrefix, "split-prefix", false, "install each variant under <prefix>/<variant>")
	installCmd.Flags().BoolVar(&installKeepWork, "keep-work", false, "keep the transient source tree for inspection")
	installCmd.Flags().DurationVar(&installTimeout, "timeout", 0, "abort the whole run after this duration (0 = none)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyInstallFlags(cmd, cfg)

	ctx := cmd.Context()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := bootstrap.FromConfig(cfg)
	opts.Logger = logger

	b := bootstrap.New(opts)
	if err := b.Run(ctx); err != nil {
		var pe *bootstrap.PhaseError
		if errors.As(err, &pe) && pe.Retryable() {
			return fmt.Errorf("%w (network failure; re-running may succeed)", err)
		}
		return err
	}
	return nil
}

// applyInstallFlags overlays explicitly-set flags onto the loaded config.
func applyInstallFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Prefix = installPrefix
	}
	if flags.Changed("repo") {
		cfg.Repo = installRepo
	}
	if flags.Changed("ref") {
		cfg.Ref = installRef
	}
	if flags.Changed("jobs") {
		cfg.Jobs = installJobs
	}
	if flags.Changed("python") {
		cfg.Python = installPython
	}
	if flags.Changed("python-config") {
		cfg.PythonConfig = installPythonConfig
	}
	if flags.Changed("split-prefix") {
		cfg.SplitPrefix = installSplitPrefix
	}
	if flags.Changed("keep-work") {
		cfg.KeepWork = installKeepWork
	}
	if flags.Changed("timeout") {
		cfg.Timeout = installTimeout
	}
}
