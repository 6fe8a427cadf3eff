package bootstrap

import (
	"context"
	"io"
	"testing"
)

func TestAutotoolsChainRequiresConfigure(t *testing.T) {
	tc := NewAutotoolsChain(t.TempDir(), 4, io.Discard, io.Discard)
	ctx := context.Background()

	if err := tc.Build(ctx); err == nil {
		t.Error("Build before Configure must error, not panic")
	}
	if err := tc.Install(ctx); err == nil {
		t.Error("Install before Configure must error, not panic")
	}
}
