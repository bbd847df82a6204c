// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scad2d CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/scad2d/internal/convert"
	"github.com/pdiddy/scad2d/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE; it stays a no-op until then.
var logger = zap.NewNop()

// rootCmd converts one OpenSCAD model per invocation.
var rootCmd = &cobra.Command{
	Use:   "scad2d [--] <input.scad>",
	Short: "Flatten an OpenSCAD laser-cut model into 2D source and SVG",
	Long: `scad2d runs OpenSCAD on a lasercut model with generate=1, rewrites the
echoed geometry into <name>_2d.scad next to the input, and renders that file
to <name>_2d.svg.

OpenSCAD is taken from OPENSCAD_BIN when set, otherwise from the standard
install location for the host OS, or the search path on Linux.

An input named like a subcommand (version, config, help, completion) or
starting with "-" must follow "--", e.g. scad2d -- version.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &convert.Pipeline{
			Config: loadConfig(),
			Out:    cmd.OutOrStdout(),
			Log:    logger,
		}
		_, err := p.Run(cmd.Context(), args)
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scad2d.yaml or ~/.config/scad2d/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scad2d")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scad2d"))
		}
	}

	viper.SetDefault("library", types.DefaultLibrary)
	viper.SetDefault("facets", types.DefaultFacets)

	viper.SetEnvPrefix("SCAD2D")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective configuration from viper. OPENSCAD_BIN is
// not bound here; the locator reads it directly so it always wins.
func loadConfig() types.Config {
	return types.Config{
		OpenSCADBin: viper.GetString("openscad_bin"),
		Library:     viper.GetString("library"),
		Facets:      viper.GetInt("facets"),
	}
}

// newLogger builds a production zap logger writing to stderr. Without
// verbose only warnings and errors are emitted.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// run executes the CLI with args and returns the process exit code. Errors
// are printed to stdout as-is. The logger is flushed on every path.
func run(args []string, stdout io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
