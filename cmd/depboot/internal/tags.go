package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/ift-infra/depboot/internal/vcs"
	"github.com/ift-infra/depboot/x/gnu"
)

var tagsLatest bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the remote repository's release tags, version-sorted",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsLatest, "latest", false, "print only the greatest version")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tags, err := vcs.NewGitVCS().Tags(cmd.Context(), cfg.Repo)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return fmt.Errorf("no tags in %s", cfg.Repo)
	}

	out := cmd.OutOrStdout()
	if tagsLatest {
		fmt.Fprintln(out, latestVersion(tags))
		return nil
	}
	sortVersions(tags)
	for _, tag := range tags {
		fmt.Fprintln(out, tag)
	}
	return nil
}

// latestVersion picks the greatest tag, by semver precedence when every
// tag is semver and by GNU version order otherwise.
func latestVersion(tags []string) string {
	for _, t := range tags {
		if !semver.IsValid(canonical(t)) {
			return gnu.Latest(tags)
		}
	}
	latest := tags[0]
	for _, t := range tags[1:] {
		if semver.Compare(canonical(t), canonical(latest)) > 0 {
			latest = t
		}
	}
	return latest
}

// sortVersions orders tags ascending. Semver tags sort by semver
// precedence; anything else falls back to GNU-style version compare.
func sortVersions(tags []string) {
	for _, t := range tags {
		if !semver.IsValid(canonical(t)) {
			gnu.Sort(tags)
			return
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return semver.Compare(canonical(tags[i]), canonical(tags[j])) < 0
	})
}

// canonical maps a bare "3.1" style tag onto the "v3.1" form semver expects.
func canonical(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}
