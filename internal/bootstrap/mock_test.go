package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// mockVCS implements vcs.VCS for unit testing.
type mockVCS struct {
	syncFunc    func(ctx context.Context, remote, ref, dir string) error
	tagsFunc    func(ctx context.Context, remote string) ([]string, error)
	latestFunc  func(ctx context.Context, remote string) (string, error)
	syncCalls   int
	syncRefs    []string
	latestCalls int
}

func (m *mockVCS) Sync(ctx context.Context, remote, ref, dir string) error {
	m.syncCalls++
	m.syncRefs = append(m.syncRefs, ref)
	if m.syncFunc != nil {
		return m.syncFunc(ctx, remote, ref, dir)
	}
	// Simulate a checkout so the work dir is non-empty.
	return os.WriteFile(filepath.Join(dir, "configure.ac"), []byte("AC_INIT\n"), 0o644)
}

func (m *mockVCS) Tags(ctx context.Context, remote string) ([]string, error) {
	if m.tagsFunc != nil {
		return m.tagsFunc(ctx, remote)
	}
	return nil, nil
}

func (m *mockVCS) Latest(ctx context.Context, remote string) (string, error) {
	m.latestCalls++
	if m.latestFunc != nil {
		return m.latestFunc(ctx, remote)
	}
	return "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", nil
}

// toolCall records one toolchain invocation.
type toolCall struct {
	op         string // "autoreconf", "configure", "build", "install"
	installDir string
	env        map[string]string
	flags      []string
}

// mockToolchain records calls and fails on demand.
type mockToolchain struct {
	calls *[]toolCall
	fail  map[string]error // op -> error; "configure:1" fails the Nth configure only
	seen  map[string]int
}

func newMockToolchain(calls *[]toolCall, fail map[string]error) ToolchainFactory {
	return func(sourceDir string, jobs int, stdout, stderr io.Writer) Toolchain {
		return &mockToolchain{calls: calls, fail: fail, seen: make(map[string]int)}
	}
}

func (m *mockToolchain) step(call toolCall) error {
	n := m.seen[call.op]
	m.seen[call.op] = n + 1
	*m.calls = append(*m.calls, call)
	if err, ok := m.fail[call.op]; ok {
		return err
	}
	if err, ok := m.fail[call.op+":"+itoa(n)]; ok {
		return err
	}
	return nil
}

func (m *mockToolchain) Autoreconf(ctx context.Context) error {
	return m.step(toolCall{op: "autoreconf"})
}

func (m *mockToolchain) Configure(ctx context.Context, installDir string, env map[string]string, flags ...string) error {
	return m.step(toolCall{op: "configure", installDir: installDir, env: env, flags: flags})
}

func (m *mockToolchain) Build(ctx context.Context) error {
	return m.step(toolCall{op: "build"})
}

func (m *mockToolchain) Install(ctx context.Context) error {
	return m.step(toolCall{op: "install"})
}

func itoa(n int) string {
	return string(rune('0' + n))
}
