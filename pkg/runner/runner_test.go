package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/image2radiomics/i2r/pkg/config"
	"github.com/image2radiomics/i2r/pkg/modules"
)

// newShellRunner builds a ToolRunner that dispatches through /bin/sh, so the
// worker can be a plain shell script.
func newShellRunner(t *testing.T, output io.Writer, script, content string) *ToolRunner {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, script), []byte(content), 0o700); err != nil {
		t.Fatalf("Failed to write worker script: %v", err)
	}
	return New(config.ToolsConfig{Python: "/bin/sh", ScriptDir: dir}, output)
}

func TestRunCapturesOutput(t *testing.T) {
	r := newShellRunner(t, nil, "echo.sh", "#!/bin/sh\necho worker $1 $2\n")

	out, err := r.Run(context.Background(), modules.Invocation{
		Tool: "echo.sh",
		Args: []string{"-i", "/data/in"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(string(out), "worker -i /data/in") {
		t.Errorf("Expected the worker arguments in the output, got %q", string(out))
	}
}

func TestRunStreamsToOutput(t *testing.T) {
	var stream bytes.Buffer
	r := newShellRunner(t, &stream, "echo.sh", "#!/bin/sh\necho streamed\n")

	if _, err := r.Run(context.Background(), modules.Invocation{Tool: "echo.sh"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(stream.String(), "streamed") {
		t.Errorf("Expected the live stream to receive the output, got %q", stream.String())
	}
}

func TestRunReportsFailure(t *testing.T) {
	r := newShellRunner(t, nil, "fail.sh", "#!/bin/sh\necho broken\nexit 3\n")

	out, err := r.Run(context.Background(), modules.Invocation{Tool: "fail.sh"})
	if err == nil {
		t.Fatalf("Expected error for a failing worker")
	}
	// Output captured before the failure is still returned.
	if !strings.Contains(string(out), "broken") {
		t.Errorf("Expected captured output alongside the error, got %q", string(out))
	}
}
