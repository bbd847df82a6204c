// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the generated 2D source to SVG and checks the result.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/scad2d/internal/toolchain"
	"github.com/pdiddy/scad2d/pkg/types"
)

// Renderer produces the final SVG artifact.
type Renderer struct {
	runner toolchain.Runner
	fs     afero.Fs
	out    io.Writer
	log    *zap.Logger
}

// NewRenderer creates a Renderer that reports progress to out.
func NewRenderer(r toolchain.Runner, fs afero.Fs, out io.Writer, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{runner: r, fs: fs, out: out, log: log}
}

// Render runs the export pass on art.Scad and writes art.SVG. A zero exit
// that leaves no SVG behind, or an empty one, is a failure.
func (r *Renderer) Render(ctx context.Context, tc types.Toolchain, art types.Artifacts) (types.ExportInfo, error) {
	fmt.Fprintln(r.out, "Rendering and exporting as SVG")

	args := toolchain.ExportArgs(art.Scad, art.SVG)
	r.log.Debug("running export", zap.String("bin", tc.Path), zap.Strings("args", args))

	stderr, err := r.runner.Run(ctx, tc.Path, args...)
	if err != nil {
		return types.ExportInfo{}, &types.UserError{
			Kind: types.KindTool,
			Msg:  fmt.Sprintf("Failed to convert to SVG:\n%s", toolchain.Detail(stderr, err)),
			Err:  err,
		}
	}

	fi, err := r.fs.Stat(art.SVG)
	if err != nil || fi.Size() == 0 {
		return types.ExportInfo{}, &types.UserError{
			Kind: types.KindTool,
			Msg:  fmt.Sprintf("Failed to convert to SVG:\nno output written to %s", art.SVG),
			Err:  err,
		}
	}

	info := types.ExportInfo{Size: fi.Size()}
	if err := r.inspect(art.SVG, &info); err != nil {
		r.log.Warn("could not parse exported SVG", zap.String("path", art.SVG), zap.Error(err))
		return info, nil
	}
	r.log.Debug("exported SVG",
		zap.String("path", art.SVG),
		zap.Int64("bytes", info.Size),
		zap.Int("paths", info.Paths),
		zap.Float64s("view_box", info.ViewBox[:]))
	return info, nil
}

// inspect parses the SVG and fills in path count and view box.
func (r *Renderer) inspect(path string, info *types.ExportInfo) error {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	info.Paths = len(icon.SVGPaths)
	vb := icon.ViewBox
	info.ViewBox = [4]float64{vb.X, vb.Y, vb.W, vb.H}
	return nil
}
