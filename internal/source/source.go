// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source resolves the command-line argument into the input file the
// pipeline converts.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/scad2d/pkg/types"
)

// Resolve validates that args names an existing regular file and derives its
// absolute path, base name, extension-less name and directory. Only the
// first argument is considered.
func Resolve(fs afero.Fs, args []string) (types.Source, error) {
	if len(args) == 0 {
		return types.Source{}, &types.UserError{Kind: types.KindUsage, Msg: "Need input file"}
	}

	arg := args[0]
	abs, err := filepath.Abs(arg)
	if err != nil {
		return types.Source{}, &types.UserError{
			Kind: types.KindNotFound,
			Msg:  fmt.Sprintf("Invalid source file: %s", arg),
			Err:  err,
		}
	}

	info, err := fs.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return types.Source{}, &types.UserError{
			Kind: types.KindNotFound,
			Msg:  fmt.Sprintf("Invalid source file: %s", arg),
			Err:  err,
		}
	}

	base := filepath.Base(abs)
	return types.Source{
		AbsPath: abs,
		Base:    base,
		Name:    stripExt(base),
		Dir:     filepath.Dir(abs),
	}, nil
}

// stripExt removes the final extension. A name that is only an extension,
// such as ".scad", is kept whole.
func stripExt(base string) string {
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return base
	}
	return name
}
