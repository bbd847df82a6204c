// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scad2d/pkg/types"
)

const squareSVG = `<?xml version="1.0" standalone="no"?>
<svg width="20mm" height="20mm" viewBox="0 -20 20 20" xmlns="http://www.w3.org/2000/svg" version="1.1">
<title>OpenSCAD Model</title>
<path d="
M 0,-0 L 20,-0 L 20,-20 L 0,-20 z
" stroke="black" fill="lightgray" stroke-width="0.5"/>
</svg>
`

// fakeRunner writes svg to the output argument unless it is empty.
type fakeRunner struct {
	fs     afero.Fs
	svg    string
	stderr string
	err    error

	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, bin string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{bin}, args...))
	if f.svg != "" {
		if err := afero.WriteFile(f.fs, args[len(args)-1], []byte(f.svg), 0o644); err != nil {
			return nil, err
		}
	}
	return []byte(f.stderr), f.err
}

var art = types.Artifacts{
	TempCSG: "/models/temp_box_2d.csg",
	Scad:    "/models/box_2d.scad",
	SVG:     "/models/box_2d.svg",
}

func TestRender(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := &fakeRunner{fs: fs, svg: squareSVG}
	var out bytes.Buffer

	info, err := NewRenderer(r, fs, &out, nil).Render(context.Background(), types.Toolchain{Path: "openscad"}, art)
	require.NoError(t, err)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"openscad", "/models/box_2d.scad", "-o", "/models/box_2d.svg"}, r.calls[0])
	assert.Equal(t, "Rendering and exporting as SVG\n", out.String())
	assert.Equal(t, int64(len(squareSVG)), info.Size)
	assert.Equal(t, 1, info.Paths)
	assert.Equal(t, [4]float64{0, -20, 20, 20}, info.ViewBox)
}

func TestRenderFailures(t *testing.T) {
	tests := []struct {
		name    string
		runner  *fakeRunner
		wantMsg string
	}{
		{
			name:    "tool exits non-zero",
			runner:  &fakeRunner{stderr: "ERROR: Current top level object is not a 2D object.", err: errors.New("exit status 1")},
			wantMsg: "Failed to convert to SVG:\nERROR: Current top level object is not a 2D object.",
		},
		{
			name:    "tool prints nothing before failing",
			runner:  &fakeRunner{err: errors.New("fork/exec /no/such/openscad: no such file or directory")},
			wantMsg: "Failed to convert to SVG:\nfork/exec /no/such/openscad: no such file or directory",
		},
		{
			name:    "tool succeeds without output",
			runner:  &fakeRunner{},
			wantMsg: "Failed to convert to SVG:\nno output written to /models/box_2d.svg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.runner.fs = fs
			var out bytes.Buffer

			_, err := NewRenderer(tt.runner, fs, &out, nil).Render(context.Background(), types.Toolchain{Path: "openscad"}, art)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			kind, ok := types.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, types.KindTool, kind)
		})
	}
}

func TestRenderEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, art.SVG, nil, 0o644))
	var out bytes.Buffer

	_, err := NewRenderer(&fakeRunner{fs: fs}, fs, &out, nil).Render(context.Background(), types.Toolchain{Path: "openscad"}, art)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output written")
}

func TestRenderUnparseableSVGIsNotFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	const truncated = `<svg viewBox="0 0 10 10"><path d="M 0,0`
	r := &fakeRunner{fs: fs, svg: truncated}
	var out bytes.Buffer

	info, err := NewRenderer(r, fs, &out, nil).Render(context.Background(), types.Toolchain{Path: "openscad"}, art)
	require.NoError(t, err)
	assert.Equal(t, int64(len(truncated)), info.Size)
	assert.Zero(t, info.Paths)
}
