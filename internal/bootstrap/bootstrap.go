// Package bootstrap fetches, builds, and installs the pyHealpix native
// transform library: one shallow checkout, an autoreconf pass, then a
// configure/make/make-install cycle per interpreter variant. The
// checkout is transient and removed on every exit path.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"

	"github.com/ift-infra/depboot/internal/bootstrap/filelock"
	"github.com/ift-infra/depboot/internal/config"
	"github.com/ift-infra/depboot/internal/env"
	"github.com/ift-infra/depboot/internal/interp"
	"github.com/ift-infra/depboot/internal/vcs"
)

// DefaultConfigureFlags enable the parallel/native-acceleration build.
var DefaultConfigureFlags = []string{"--enable-openmp"}

// Options configures a bootstrap run.
type Options struct {
	Repo           string
	Ref            string
	Prefix         string // empty installs to the build system's default
	SplitPrefix    bool   // one subdirectory per variant under Prefix
	Jobs           int
	Variants       []interp.Variant
	ConfigureFlags []string
	WorkRoot       string
	LockDir        string
	KeepWork       bool
	RetryAttempts  uint // acquisition retries; 0 means no retry
	Stdout         io.Writer
	Stderr         io.Writer
	Logger         *log.Logger
}

// FromConfig maps a loaded config onto run options.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Repo:          cfg.Repo,
		Ref:           cfg.Ref,
		Prefix:        cfg.Prefix,
		SplitPrefix:   cfg.SplitPrefix,
		Jobs:          cfg.Jobs,
		Variants:      interp.Variants(cfg.Python, cfg.PythonConfig),
		WorkRoot:      cfg.WorkRoot,
		KeepWork:      cfg.KeepWork,
		RetryAttempts: 3,
	}
}

// Bootstrapper runs the bootstrap operation.
type Bootstrapper struct {
	opts         Options
	vcs          vcs.VCS
	newToolchain ToolchainFactory
	logger       *log.Logger
}

// Option customizes a Bootstrapper.
type Option func(*Bootstrapper)

// WithVCS substitutes the version control client.
func WithVCS(v vcs.VCS) Option {
	return func(b *Bootstrapper) { b.vcs = v }
}

// WithToolchainFactory substitutes the build toolchain.
func WithToolchainFactory(f ToolchainFactory) Option {
	return func(b *Bootstrapper) { b.newToolchain = f }
}

// New returns a Bootstrapper for opts. Zero-valued options fall back to
// sensible defaults; Variants defaults to the standard two-pass set.
func New(opts Options, o ...Option) *Bootstrapper {
	if opts.Jobs < 1 {
		opts.Jobs = config.DefaultJobs
	}
	if len(opts.Variants) == 0 {
		opts.Variants = interp.Variants("", "")
	}
	if opts.ConfigureFlags == nil {
		opts.ConfigureFlags = DefaultConfigureFlags
	}
	if opts.WorkRoot == "" {
		opts.WorkRoot = env.WorkRoot()
	}
	if opts.LockDir == "" {
		opts.LockDir = filepath.Join(env.CacheDir(), "locks")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "depboot"})
	}

	b := &Bootstrapper{
		opts:         opts,
		vcs:          vcs.NewGitVCS(),
		newToolchain: NewAutotoolsChain,
		logger:       opts.Logger,
	}
	for _, opt := range o {
		opt(b)
	}
	return b
}

// Run executes the full operation. On failure the returned error is a
// *PhaseError naming the step that failed. The transient source tree is
// removed on all exit paths unless KeepWork is set.
func (b *Bootstrapper) Run(ctx context.Context) error {
	o := &b.opts

	unlock, err := filelock.MutexAt(b.lockPath()).Lock()
	if err != nil {
		return fmt.Errorf("lock install prefix: %w", err)
	}
	defer unlock()

	if err := os.MkdirAll(o.WorkRoot, 0o755); err != nil {
		return fmt.Errorf("create work root: %w", err)
	}
	srcDir, err := os.MkdirTemp(o.WorkRoot, repoName(o.Repo)+"-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		if o.KeepWork {
			b.logger.Info("keeping work tree", "dir", srcDir)
			return
		}
		if err := os.RemoveAll(srcDir); err != nil {
			b.logger.Warn("remove work tree", "dir", srcDir, "err", err)
		}
	}()

	b.logger.Info("acquiring source", "repo", o.Repo, "ref", o.Ref)
	if err := b.acquire(ctx, srcDir); err != nil {
		return &PhaseError{Phase: PhaseAcquire, Err: err}
	}

	tc := b.newToolchain(srcDir, o.Jobs, o.Stdout, o.Stderr)

	b.logger.Info("regenerating build scripts")
	if err := tc.Autoreconf(ctx); err != nil {
		return &PhaseError{Phase: PhaseReconfigure, Err: err}
	}

	for _, v := range o.Variants {
		if err := b.buildVariant(ctx, tc, v); err != nil {
			return err
		}
	}

	b.logger.Info("bootstrap complete", "variants", len(o.Variants))
	return nil
}

func (b *Bootstrapper) acquire(ctx context.Context, srcDir string) error {
	o := &b.opts
	attempts := o.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			ref := o.Ref
			if ref == "" || ref == vcs.DefaultRef {
				hash, err := b.vcs.Latest(ctx, o.Repo)
				if err != nil {
					return err
				}
				b.logger.Info("pinned remote head", "commit", hash)
				ref = hash
			}
			return b.vcs.Sync(ctx, o.Repo, ref, srcDir)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			b.logger.Warn("acquire failed, retrying", "attempt", n+1, "err", err)
		}),
	)
}

func (b *Bootstrapper) buildVariant(ctx context.Context, tc Toolchain, v interp.Variant) error {
	o := &b.opts

	if err := v.Check(); err != nil {
		return &PhaseError{Phase: PhaseConfigure, Variant: v.Name, Err: err}
	}

	installDir := o.Prefix
	if o.SplitPrefix && o.Prefix != "" {
		installDir = filepath.Join(o.Prefix, v.Name)
	}

	b.logger.Info("configuring", "variant", v.Name, "prefix", installDir)
	if err := tc.Configure(ctx, installDir, v.Env(), o.ConfigureFlags...); err != nil {
		return &PhaseError{Phase: PhaseConfigure, Variant: v.Name, Err: err}
	}

	b.logger.Info("building", "variant", v.Name, "jobs", o.Jobs)
	if err := tc.Build(ctx); err != nil {
		return &PhaseError{Phase: PhaseBuild, Variant: v.Name, Err: err}
	}

	b.logger.Info("installing", "variant", v.Name)
	if err := tc.Install(ctx); err != nil {
		return &PhaseError{Phase: PhaseInstall, Variant: v.Name, Err: err}
	}
	return nil
}

// lockPath maps the install prefix to a lock file under LockDir. Runs
// against the same prefix share a lock; the system-default prefix gets
// its own.
func (b *Bootstrapper) lockPath() string {
	name := "system"
	if b.opts.Prefix != "" {
		name = sanitize(b.opts.Prefix)
	}
	return filepath.Join(b.opts.LockDir, name+".lock")
}

func sanitize(path string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	return strings.Trim(r.Replace(path), "-")
}

// repoName extracts a short name from the repository URL for the work
// directory prefix.
func repoName(repo string) string {
	name := strings.TrimSuffix(filepath.Base(repo), ".git")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "src"
	}
	return name
}
