// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// Source describes the user-supplied OpenSCAD input file. It is derived
// once from the command-line argument and never changes afterwards.
type Source struct {
	// AbsPath is the absolute, cleaned path to the input file.
	AbsPath string `json:"abs_path" yaml:"abs_path"`

	// Base is the file name including its extension (e.g. "box.scad").
	Base string `json:"base" yaml:"base"`

	// Name is the file name without its extension (e.g. "box").
	Name string `json:"name" yaml:"name"`

	// Dir is the directory containing the input file.
	Dir string `json:"dir" yaml:"dir"`
}

// Origin records which lookup branch produced a toolchain reference.
type Origin string

const (
	OriginEnv        Origin = "env"
	OriginConfig     Origin = "config"
	OriginDarwin     Origin = "darwin"
	OriginWindowsX86 Origin = "windows-x86"
	OriginWindowsX64 Origin = "windows-x64"
	OriginPath       Origin = "path"
)

// Toolchain is a resolved reference to the OpenSCAD executable.
type Toolchain struct {
	// Path is an absolute executable path or a bare command name that the
	// operating system resolves through the search path.
	Path string `json:"path" yaml:"path"`

	// Origin identifies how Path was found.
	Origin Origin `json:"origin" yaml:"origin"`
}

const (
	// SourceExt is the OpenSCAD source extension.
	SourceExt = ".scad"
	// IntermediateExt is the extension of the throwaway projection output.
	IntermediateExt = ".csg"
	// ExportExt is the extension of the final vector export.
	ExportExt = ".svg"

	outSuffix  = "_2d"
	tempPrefix = "temp_"
)

// Artifacts lists the files a conversion run touches, all of them in the
// input's directory.
type Artifacts struct {
	// TempCSG is written by the projection run and removed right after it.
	TempCSG string `json:"temp_csg" yaml:"temp_csg"`

	// Scad is the generated 2D OpenSCAD source.
	Scad string `json:"scad" yaml:"scad"`

	// SVG is the final vector export.
	SVG string `json:"svg" yaml:"svg"`
}

// ArtifactsFor derives the output paths for src.
func ArtifactsFor(src Source) Artifacts {
	base := src.Name + outSuffix
	return Artifacts{
		TempCSG: filepath.Join(src.Dir, tempPrefix+base+IntermediateExt),
		Scad:    filepath.Join(src.Dir, base+SourceExt),
		SVG:     filepath.Join(src.Dir, base+ExportExt),
	}
}

// ExportInfo summarizes a rendered SVG.
type ExportInfo struct {
	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Paths is the number of drawable paths the SVG parser found.
	Paths int `json:"paths" yaml:"paths"`

	// ViewBox is the SVG view box as x, y, width, height.
	ViewBox [4]float64 `json:"view_box" yaml:"view_box"`
}
