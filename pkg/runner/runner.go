// Package runner executes the external worker tools a pipeline block
// resolves to.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/image2radiomics/i2r/pkg/config"
	"github.com/image2radiomics/i2r/pkg/modules"
)

// ToolRunner dispatches worker scripts through the configured python
// interpreter, capturing combined output for the caller while streaming it
// to Output.
type ToolRunner struct {
	Python    string
	ScriptDir string
	Output    io.Writer // nil discards the live stream
}

// New builds a ToolRunner from the tools section of the app config.
func New(cfg config.ToolsConfig, output io.Writer) *ToolRunner {
	return &ToolRunner{Python: cfg.Python, ScriptDir: cfg.ScriptDir, Output: output}
}

// Run executes one invocation and returns its combined output. A non-zero
// exit is returned as an error wrapping the exec failure.
func (r *ToolRunner) Run(ctx context.Context, inv modules.Invocation) ([]byte, error) {
	script := filepath.Join(r.ScriptDir, inv.Tool)
	args := append([]string{script}, inv.Args...)

	cmd := exec.CommandContext(ctx, r.Python, args...)

	var buf bytes.Buffer
	sink := io.Writer(&buf)
	if r.Output != nil {
		sink = io.MultiWriter(&buf, r.Output)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	if err := cmd.Run(); err != nil {
		return buf.Bytes(), fmt.Errorf("running %s: %w", inv.Tool, err)
	}
	return buf.Bytes(), nil
}
