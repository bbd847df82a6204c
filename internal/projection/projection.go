// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package projection runs OpenSCAD in generate mode and rewrites the echoed
// geometry into a standalone 2D OpenSCAD source file.
package projection

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/scad2d/internal/toolchain"
	"github.com/pdiddy/scad2d/pkg/types"
)

// Generator produces the 2D source artifact.
type Generator struct {
	runner toolchain.Runner
	fs     afero.Fs
	log    *zap.Logger
}

// NewGenerator creates a Generator. A nil logger is replaced with a no-op.
func NewGenerator(r toolchain.Runner, fs afero.Fs, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{runner: r, fs: fs, log: log}
}

// Generate runs the projection pass for src and writes art.Scad. The
// intermediate art.TempCSG is removed as soon as the tool returns, whether it
// succeeded or not. An existing art.Scad is overwritten.
func (g *Generator) Generate(ctx context.Context, tc types.Toolchain, src types.Source, art types.Artifacts, cfg types.Config) error {
	args := toolchain.ProjectionArgs(src.AbsPath, art.TempCSG)
	g.log.Debug("running projection", zap.String("bin", tc.Path), zap.Strings("args", args))

	stderr, runErr := g.runner.Run(ctx, tc.Path, args...)
	rmErr := g.fs.Remove(art.TempCSG)
	if rmErr != nil && errors.Is(rmErr, os.ErrNotExist) {
		g.log.Debug("intermediate not written", zap.String("path", art.TempCSG))
		rmErr = nil
	}

	if runErr != nil {
		return &types.UserError{
			Kind: types.KindTool,
			Msg:  fmt.Sprintf("Failed to convert to csg file.\nError: %s", toolchain.Detail(stderr, runErr)),
			Err:  runErr,
		}
	}
	if rmErr != nil {
		return fmt.Errorf("removing intermediate %s: %w", art.TempCSG, rmErr)
	}

	doc := Document(cfg, string(stderr))
	if err := afero.WriteFile(g.fs, art.Scad, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", art.Scad, err)
	}
	g.log.Debug("wrote 2D source", zap.String("path", art.Scad), zap.Int("bytes", len(doc)))
	return nil
}
