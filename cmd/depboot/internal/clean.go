package internal

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove leftover work trees",
	Long: `Clean removes any source trees left under the depboot work directory,
e.g. after a run with --keep-work or an interrupted build.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cfg.WorkRoot)
	if os.IsNotExist(err) {
		logger.Info("nothing to clean", "dir", cfg.WorkRoot)
		return nil
	}
	if err != nil {
		return err
	}

	removed := 0
	for _, e := range entries {
		path := filepath.Join(cfg.WorkRoot, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return err
		}
		logger.Debug("removed", "path", path)
		removed++
	}
	logger.Info("cleaned work trees", "count", removed, "dir", cfg.WorkRoot)
	return nil
}
