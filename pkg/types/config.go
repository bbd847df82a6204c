// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultLibrary is the OpenSCAD library the generated 2D source imports.
	DefaultLibrary = "lasercut/lasercut.scad"

	// DefaultFacets is the $fn value written into the generated 2D source.
	DefaultFacets = 60
)

// Config holds the settings that shape a conversion run. Values come from
// defaults, an optional config file, and the environment, in viper order.
type Config struct {
	// OpenSCADBin overrides toolchain discovery when non-empty. The
	// OPENSCAD_BIN environment variable takes precedence over it.
	OpenSCADBin string `json:"openscad_bin,omitempty" yaml:"openscad_bin,omitempty" mapstructure:"openscad_bin"`

	// Library is the path passed to the `use <...>;` directive.
	Library string `json:"library" yaml:"library" mapstructure:"library"`

	// Facets is the $fn resolution setting (default 60).
	Facets int `json:"facets" yaml:"facets" mapstructure:"facets"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Library: DefaultLibrary,
		Facets:  DefaultFacets,
	}
}
