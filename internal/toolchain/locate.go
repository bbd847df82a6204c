// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain finds and runs the OpenSCAD executable.
//
// Discovery is an explicit override followed by one platform strategy,
// chosen once from the host OS name. Each strategy tries all of its
// candidates before giving up.
package toolchain

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/scad2d/pkg/types"
)

const (
	// EnvOverride names the environment variable that bypasses discovery.
	EnvOverride = "OPENSCAD_BIN"

	envProgramFiles    = "PROGRAMFILES"
	envProgramFilesX64 = "ProgramW6432"

	darwinBundlePath = "/Applications/OpenSCAD.app/Contents/MacOS/OpenSCAD"
	binName          = "openscad"
)

var windowsSubPath = filepath.Join("OpenSCAD", "openscad.exe")

// System is the slice of the host environment the locator reads.
type System interface {
	LookupEnv(key string) (string, bool)
	LookPath(file string) (string, error)
	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool
}

type osSystem struct {
	fs afero.Fs
}

func (s *osSystem) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (s *osSystem) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (s *osSystem) IsFile(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NewSystem returns a System backed by the process environment, the search
// path and fs.
func NewSystem(fs afero.Fs) System {
	return &osSystem{fs: fs}
}

// Strategy is one platform's way of finding OpenSCAD.
type Strategy interface {
	// Name returns the platform the strategy serves.
	Name() string

	// Locate returns the toolchain and true, or false when no candidate
	// exists.
	Locate(sys System) (types.Toolchain, bool)
}

type darwinStrategy struct{}

func (darwinStrategy) Name() string { return "darwin" }

func (darwinStrategy) Locate(sys System) (types.Toolchain, bool) {
	if !sys.IsFile(darwinBundlePath) {
		return types.Toolchain{}, false
	}
	return types.Toolchain{Path: darwinBundlePath, Origin: types.OriginDarwin}, true
}

// windowsStrategy checks the 32-bit Program Files tree, then the 64-bit one.
// An unset variable removes that tree from consideration.
type windowsStrategy struct{}

func (windowsStrategy) Name() string { return "windows" }

func (windowsStrategy) Locate(sys System) (types.Toolchain, bool) {
	candidates := []struct {
		env    string
		origin types.Origin
	}{
		{envProgramFiles, types.OriginWindowsX86},
		{envProgramFilesX64, types.OriginWindowsX64},
	}
	for _, c := range candidates {
		root, ok := sys.LookupEnv(c.env)
		if !ok || root == "" {
			continue
		}
		p := filepath.Clean(filepath.Join(root, windowsSubPath))
		if sys.IsFile(p) {
			return types.Toolchain{Path: p, Origin: c.origin}, true
		}
	}
	return types.Toolchain{}, false
}

// pathStrategy is used on every other OS. A hit returns the bare command
// name so the OS resolves it again at spawn time.
type pathStrategy struct{}

func (pathStrategy) Name() string { return "path" }

func (pathStrategy) Locate(sys System) (types.Toolchain, bool) {
	if _, err := sys.LookPath(binName); err != nil {
		return types.Toolchain{}, false
	}
	return types.Toolchain{Path: binName, Origin: types.OriginPath}, true
}

// StrategyFor selects the discovery strategy for a runtime.GOOS value.
func StrategyFor(goos string) Strategy {
	switch goos {
	case "darwin":
		return darwinStrategy{}
	case "windows":
		return windowsStrategy{}
	default:
		return pathStrategy{}
	}
}

// Locate resolves the OpenSCAD executable. OPENSCAD_BIN wins and is used
// verbatim, even when it points nowhere; then a non-empty cfg.OpenSCADBin;
// then the strategy for goos.
func Locate(cfg types.Config, sys System, goos string) (types.Toolchain, error) {
	if v, ok := sys.LookupEnv(EnvOverride); ok {
		return types.Toolchain{Path: v, Origin: types.OriginEnv}, nil
	}
	if cfg.OpenSCADBin != "" {
		return types.Toolchain{Path: cfg.OpenSCADBin, Origin: types.OriginConfig}, nil
	}

	if tc, ok := StrategyFor(goos).Locate(sys); ok {
		return tc, nil
	}
	return types.Toolchain{}, &types.UserError{
		Kind: types.KindNotFound,
		Msg:  "Could not find the openscad executable",
	}
}
