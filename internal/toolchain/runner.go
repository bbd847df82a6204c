// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes the toolchain and hands back what it wrote to standard
// error. OpenSCAD reports echo output and warnings there, so the captured
// bytes are the payload, not just diagnostics.
type Runner interface {
	// Run executes bin with args and blocks until it exits. The captured
	// standard error is returned even when the run fails.
	Run(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// executor abstracts process creation for testing.
type executor interface {
	RunCaptured(ctx context.Context, name string, args []string, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec. Standard output
// is discarded.
type osExecutor struct{}

func (o *osExecutor) RunCaptured(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr
	return cmd.Run()
}

// execRunner implements Runner on top of an executor.
type execRunner struct {
	exec executor
}

func (r *execRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	if err := r.exec.RunCaptured(ctx, bin, args, &stderr); err != nil {
		return stderr.Bytes(), fmt.Errorf("running %s: %w", bin, err)
	}
	return stderr.Bytes(), nil
}

var defaultExec = &osExecutor{}

// NewRunner returns a Runner that spawns real processes.
func NewRunner() Runner {
	return &execRunner{exec: defaultExec}
}

// ProjectionArgs builds the argument list that makes OpenSCAD evaluate src
// with generate=1 and emit the flattened geometry as echo text.
func ProjectionArgs(src, out string) []string {
	return []string{src, "-D", "generate=1", "-o", out}
}

// ExportArgs builds the argument list that renders src to out.
func ExportArgs(src, out string) []string {
	return []string{src, "-o", out}
}

// Detail returns the text to show for a failed run: the captured stderr, or
// the run error itself when the tool printed nothing (e.g. it never started).
func Detail(stderr []byte, err error) string {
	if strings.TrimSpace(string(stderr)) == "" && err != nil {
		return err.Error()
	}
	return string(stderr)
}
