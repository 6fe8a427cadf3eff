package bootstrap

import (
	"context"
	"errors"
	"io"

	"github.com/ift-infra/depboot/x/autotools"
)

// Toolchain captures the build-system steps a bootstrap run drives.
// Configure fixes the variant (install dir and env overrides) that the
// following Build and Install act on.
type Toolchain interface {
	Autoreconf(ctx context.Context) error
	Configure(ctx context.Context, installDir string, env map[string]string, flags ...string) error
	Build(ctx context.Context) error
	Install(ctx context.Context) error
}

// ToolchainFactory builds a Toolchain for a checked-out source tree.
type ToolchainFactory func(sourceDir string, jobs int, stdout, stderr io.Writer) Toolchain

// autotoolsChain adapts x/autotools to the Toolchain interface.
// pyHealpix builds in-tree, so no separate build directory is used.
type autotoolsChain struct {
	sourceDir string
	jobs      int
	stdout    io.Writer
	stderr    io.Writer
	cur       *autotools.AutoTools
}

// NewAutotoolsChain is the default ToolchainFactory.
func NewAutotoolsChain(sourceDir string, jobs int, stdout, stderr io.Writer) Toolchain {
	return &autotoolsChain{
		sourceDir: sourceDir,
		jobs:      jobs,
		stdout:    stdout,
		stderr:    stderr,
	}
}

func (c *autotoolsChain) new(installDir string) *autotools.AutoTools {
	a := autotools.New(c.sourceDir, "", installDir)
	a.Jobs(c.jobs)
	if c.stdout != nil {
		a.SetStdout(c.stdout)
	}
	if c.stderr != nil {
		a.SetStderr(c.stderr)
	}
	return a
}

func (c *autotoolsChain) Autoreconf(ctx context.Context) error {
	return c.new("").Autoreconf(ctx)
}

func (c *autotoolsChain) Configure(ctx context.Context, installDir string, env map[string]string, flags ...string) error {
	a := c.new(installDir)
	for k, v := range env {
		a.Env(k, v)
	}
	c.cur = a
	return a.Configure(ctx, flags...)
}

func (c *autotoolsChain) Build(ctx context.Context) error {
	if c.cur == nil {
		return errors.New("autotools: Build before Configure")
	}
	return c.cur.Build(ctx)
}

func (c *autotoolsChain) Install(ctx context.Context) error {
	if c.cur == nil {
		return errors.New("autotools: Install before Configure")
	}
	return c.cur.Install(ctx)
}
