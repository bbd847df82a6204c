// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a single 3D-to-2D conversion:
// resolve → locate → generate → rewrite → render.
//
// Stages run once each, in order, and the first failure ends the run. The
// only cleanup is the intermediate CSG removal inside the generate stage.
package convert

import (
	"context"
	"io"
	"runtime"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/scad2d/internal/export"
	"github.com/pdiddy/scad2d/internal/projection"
	"github.com/pdiddy/scad2d/internal/source"
	"github.com/pdiddy/scad2d/internal/toolchain"
	"github.com/pdiddy/scad2d/pkg/types"
)

// Pipeline holds the collaborators for a conversion run. Zero-valued fields
// are filled with production defaults by Run.
type Pipeline struct {
	Fs     afero.Fs
	System toolchain.System
	Runner toolchain.Runner
	GOOS   string
	Config types.Config
	Out    io.Writer
	Log    *zap.Logger
}

// Result reports what a successful run produced.
type Result struct {
	Source    types.Source
	Toolchain types.Toolchain
	Artifacts types.Artifacts
	Export    types.ExportInfo
}

// Run converts the file named by args[0].
func (p *Pipeline) Run(ctx context.Context, args []string) (Result, error) {
	p.defaults()
	var res Result

	src, err := source.Resolve(p.Fs, args)
	if err != nil {
		return res, err
	}
	res.Source = src
	p.Log.Debug("resolved source", zap.String("path", src.AbsPath))

	tc, err := toolchain.Locate(p.Config, p.System, p.GOOS)
	if err != nil {
		return res, err
	}
	res.Toolchain = tc
	p.Log.Debug("located toolchain", zap.String("path", tc.Path), zap.String("origin", string(tc.Origin)))

	res.Artifacts = types.ArtifactsFor(src)

	gen := projection.NewGenerator(p.Runner, p.Fs, p.Log)
	if err := gen.Generate(ctx, tc, src, res.Artifacts, p.Config); err != nil {
		return res, err
	}

	info, err := export.NewRenderer(p.Runner, p.Fs, p.Out, p.Log).Render(ctx, tc, res.Artifacts)
	if err != nil {
		return res, err
	}
	res.Export = info
	p.Log.Info("conversion complete",
		zap.String("scad", res.Artifacts.Scad),
		zap.String("svg", res.Artifacts.SVG))
	return res, nil
}

func (p *Pipeline) defaults() {
	if p.Fs == nil {
		p.Fs = afero.NewOsFs()
	}
	if p.System == nil {
		p.System = toolchain.NewSystem(p.Fs)
	}
	if p.Runner == nil {
		p.Runner = toolchain.NewRunner()
	}
	if p.GOOS == "" {
		p.GOOS = runtime.GOOS
	}
	if p.Config.Library == "" {
		p.Config.Library = types.DefaultLibrary
	}
	if p.Config.Facets == 0 {
		p.Config.Facets = types.DefaultFacets
	}
	if p.Out == nil {
		p.Out = io.Discard
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
}
