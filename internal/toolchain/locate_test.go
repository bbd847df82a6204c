// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scad2d/pkg/types"
)

// mockSystem serves a fixed environment, search path and file set.
type mockSystem struct {
	env   map[string]string
	bins  map[string]bool
	files map[string]bool
}

func (m *mockSystem) LookupEnv(key string) (string, bool) {
	v, ok := m.env[key]
	return v, ok
}

func (m *mockSystem) LookPath(file string) (string, error) {
	if m.bins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockSystem) IsFile(path string) bool { return m.files[path] }

func TestLocate(t *testing.T) {
	x86 := filepath.Join(`C:\Program Files (x86)`, "OpenSCAD", "openscad.exe")
	x64 := filepath.Join(`C:\Program Files`, "OpenSCAD", "openscad.exe")

	tests := []struct {
		name    string
		goos    string
		cfg     types.Config
		sys     *mockSystem
		want    types.Toolchain
		wantErr bool
	}{
		{
			name: "env override used verbatim",
			goos: "linux",
			sys:  &mockSystem{env: map[string]string{"OPENSCAD_BIN": "/does/not/exist"}},
			want: types.Toolchain{Path: "/does/not/exist", Origin: types.OriginEnv},
		},
		{
			name: "env override beats config",
			goos: "linux",
			cfg:  types.Config{OpenSCADBin: "/opt/openscad"},
			sys:  &mockSystem{env: map[string]string{"OPENSCAD_BIN": "/usr/local/bin/openscad"}},
			want: types.Toolchain{Path: "/usr/local/bin/openscad", Origin: types.OriginEnv},
		},
		{
			name: "config override when env unset",
			goos: "windows",
			cfg:  types.Config{OpenSCADBin: "/opt/openscad"},
			sys:  &mockSystem{},
			want: types.Toolchain{Path: "/opt/openscad", Origin: types.OriginConfig},
		},
		{
			name: "linux finds openscad on PATH and keeps it bare",
			goos: "linux",
			sys:  &mockSystem{bins: map[string]bool{"openscad": true}},
			want: types.Toolchain{Path: "openscad", Origin: types.OriginPath},
		},
		{
			name: "unknown OS treated like linux",
			goos: "freebsd",
			sys:  &mockSystem{bins: map[string]bool{"openscad": true}},
			want: types.Toolchain{Path: "openscad", Origin: types.OriginPath},
		},
		{
			name:    "linux without openscad",
			goos:    "linux",
			sys:     &mockSystem{},
			wantErr: true,
		},
		{
			name: "darwin bundle present",
			goos: "darwin",
			sys:  &mockSystem{files: map[string]bool{darwinBundlePath: true}},
			want: types.Toolchain{Path: darwinBundlePath, Origin: types.OriginDarwin},
		},
		{
			name:    "darwin ignores PATH",
			goos:    "darwin",
			sys:     &mockSystem{bins: map[string]bool{"openscad": true}},
			wantErr: true,
		},
		{
			name: "windows 32-bit tree first",
			goos: "windows",
			sys: &mockSystem{
				env: map[string]string{
					"PROGRAMFILES": `C:\Program Files (x86)`,
					"ProgramW6432": `C:\Program Files`,
				},
				files: map[string]bool{x86: true, x64: true},
			},
			want: types.Toolchain{Path: filepath.Clean(x86), Origin: types.OriginWindowsX86},
		},
		{
			name: "windows falls back to 64-bit tree",
			goos: "windows",
			sys: &mockSystem{
				env: map[string]string{
					"PROGRAMFILES": `C:\Program Files (x86)`,
					"ProgramW6432": `C:\Program Files`,
				},
				files: map[string]bool{x64: true},
			},
			want: types.Toolchain{Path: filepath.Clean(x64), Origin: types.OriginWindowsX64},
		},
		{
			name: "windows with 64-bit variable unset",
			goos: "windows",
			sys: &mockSystem{
				env: map[string]string{"PROGRAMFILES": `C:\Program Files (x86)`},
			},
			wantErr: true,
		},
		{
			name: "windows with 32-bit variable unset still checks 64-bit",
			goos: "windows",
			sys: &mockSystem{
				env:   map[string]string{"ProgramW6432": `C:\Program Files`},
				files: map[string]bool{x64: true},
			},
			want: types.Toolchain{Path: filepath.Clean(x64), Origin: types.OriginWindowsX64},
		},
		{
			name:    "windows with nothing set",
			goos:    "windows",
			sys:     &mockSystem{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(tt.cfg, tt.sys, tt.goos)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Could not find the openscad executable", err.Error())
				kind, ok := types.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, types.KindNotFound, kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateDeterministic(t *testing.T) {
	sys := &mockSystem{bins: map[string]bool{"openscad": true}}
	first, err := Locate(types.Config{}, sys, "linux")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Locate(types.Config{}, sys, "linux")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, "darwin", StrategyFor("darwin").Name())
	assert.Equal(t, "windows", StrategyFor("windows").Name())
	assert.Equal(t, "path", StrategyFor("linux").Name())
	assert.Equal(t, "path", StrategyFor("plan9").Name())
}

func TestOSSystemIsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/apps/openscad", []byte("#!"), 0o755))
	require.NoError(t, fs.MkdirAll("/apps/OpenSCAD.app", 0o755))

	sys := NewSystem(fs)
	assert.True(t, sys.IsFile("/apps/openscad"))
	assert.False(t, sys.IsFile("/apps/OpenSCAD.app"))
	assert.False(t, sys.IsFile("/apps/missing"))
}
