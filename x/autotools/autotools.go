// Package autotools wraps the classic autoreconf/configure/make/make-install workflow.
package autotools

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// AutoTools drives Autotools-style builds.
type AutoTools struct {
	sourceDir  string
	buildDir   string
	installDir string
	jobs       int
	env        map[string]string
	stdout     io.Writer
	stderr     io.Writer
}

// New returns a ready-to-use AutoTools. When buildDir is empty, commands
// run inside sourceDir (in-tree build).
func New(sourceDir, buildDir, installDir string) *AutoTools {
	return &AutoTools{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		env:        make(map[string]string),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// Source overrides the source directory.
func (a *AutoTools) Source(dir string) { a.sourceDir = dir }

// InstallDir overrides the install prefix.
func (a *AutoTools) InstallDir(dir string) { a.installDir = dir }

// Jobs bounds make's worker pool to n parallel jobs. Zero or negative
// leaves make single-threaded.
func (a *AutoTools) Jobs(n int) { a.jobs = n }

// Env sets key=value for every command spawned by this AutoTools.
// The override is scoped to the spawned commands and never leaks into
// the calling process.
func (a *AutoTools) Env(key, value string) {
	a.env[key] = value
}

// SetStdout redirects the spawned commands' standard output.
func (a *AutoTools) SetStdout(w io.Writer) { a.stdout = w }

// SetStderr redirects the spawned commands' standard error.
func (a *AutoTools) SetStderr(w io.Writer) { a.stderr = w }

// Autoreconf regenerates the configure script and build metadata inside
// the source tree. Extra arguments are appended after "-i".
func (a *AutoTools) Autoreconf(ctx context.Context, args ...string) error {
	return a.run(ctx, a.sourceDir, "autoreconf", append([]string{"-i"}, args...))
}

// Configure runs <sourceDir>/configure inside buildDir.
// --prefix is prepended automatically when installDir is set.
// Extra flags are appended after --prefix.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	dir := a.workDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	exe := filepath.Join(a.sourceDir, "configure")
	if dir == a.sourceDir {
		exe = "./configure"
	}
	flags := make([]string, 0, 1+len(args))
	if a.installDir != "" {
		flags = append(flags, "--prefix="+a.installDir)
	}
	return a.run(ctx, dir, exe, append(flags, args...))
}

// Build runs "make" with -j<jobs> and optional extra arguments.
func (a *AutoTools) Build(ctx context.Context, args ...string) error {
	if a.jobs > 0 {
		args = append([]string{fmt.Sprintf("-j%d", a.jobs)}, args...)
	}
	return a.run(ctx, a.workDir(), "make", args)
}

// Install runs "make install" with optional extra arguments appended.
func (a *AutoTools) Install(ctx context.Context, args ...string) error {
	return a.run(ctx, a.workDir(), "make", append([]string{"install"}, args...))
}

// OutputDir returns installDir if set, otherwise buildDir.
func (a *AutoTools) OutputDir() string {
	if a.installDir != "" {
		return a.installDir
	}
	return a.buildDir
}

func (a *AutoTools) workDir() string {
	if a.buildDir == "" {
		return a.sourceDir
	}
	return a.buildDir
}

func (a *AutoTools) run(ctx context.Context, dir, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr
	if len(a.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), a.env)
	}
	return cmd.Run()
}

// mergeEnv returns base with every key in overrides replaced or appended.
func mergeEnv(base []string, overrides map[string]string) []string {
	idx := make(map[string]int, len(base))
	for i, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for k, v := range overrides {
		if i, ok := idx[k]; ok {
			base[i] = k + "=" + v
		} else {
			base = append(base, k+"="+v)
		}
	}
	return base
}
