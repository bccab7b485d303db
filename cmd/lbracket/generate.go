package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fablab-tools/lbracket/pkg/bracket"
	"github.com/fablab-tools/lbracket/pkg/csg"
	"github.com/fablab-tools/lbracket/pkg/kernel"
	"github.com/fablab-tools/lbracket/pkg/params"
	"github.com/fablab-tools/lbracket/pkg/scad"
	"github.com/fablab-tools/lbracket/pkg/stl"
	"github.com/fablab-tools/lbracket/pkg/watcher"
)

const defaultOutName = "M206-03-LBracket.stl"

const watchDebounce = 300 * time.Millisecond

var (
	flagOut       string
	flagThickness float64
	flagParams    string
	flagBackend   string
	flagWatch     bool
)

func init() {
	rootCmd.Flags().StringVar(&flagOut, "out", defaultOutName, "output file path; relative paths resolve against the executable directory")
	rootCmd.Flags().Float64Var(&flagThickness, "thickness", 5.0, "bracket thickness [mm]")
	rootCmd.Flags().StringVar(&flagParams, "params", "", "TOML file overriding motor and bracket parameters")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "sdfx", "geometry kernel backend: sdfx or scad")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "regenerate whenever the --params file changes")
}

func runGenerate(cmd *cobra.Command, args []string) {
	if err := generateAndWatch(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateAndWatch(cmd *cobra.Command) error {
	if flagWatch && flagParams == "" {
		return fmt.Errorf("--watch requires --params")
	}

	outPath, err := resolveOutPath(flagOut)
	if err != nil {
		return err
	}

	generate := func() error {
		motor := bracket.DefaultMotorSpec()
		design := bracket.DefaultBracketParams()
		if flagParams != "" {
			if err := params.Load(flagParams, &motor, &design); err != nil {
				return err
			}
		}
		// An explicit --thickness wins over the parameter file
		if cmd.Flags().Changed("thickness") {
			design.Thickness = flagThickness
		}
		if err := bracket.Validate(motor, design); err != nil {
			return err
		}

		k, err := selectKernel(flagBackend, outPath)
		if err != nil {
			return err
		}

		dims, err := bracket.Generate(k, motor, design, outPath)
		if err != nil {
			return err
		}
		return printSummary(outPath, motor, dims)
	}

	if err := generate(); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", flagParams)
	w, err := watcher.New(flagParams, watchDebounce, func() {
		if err := generate(); err != nil {
			fmt.Fprintf(os.Stderr, "Regeneration failed: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	fmt.Println()
	return nil
}

// resolveOutPath resolves relative output paths against the directory
// of the running executable, which is where the default artifact lands
func resolveOutPath(out string) (string, error) {
	if filepath.IsAbs(out) {
		return out, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), out), nil
}

// selectKernel picks the geometry backend. A .scad target implies the
// OpenSCAD backend regardless of --backend.
func selectKernel(backend, outPath string) (kernel.Kernel, error) {
	if strings.EqualFold(filepath.Ext(outPath), ".scad") {
		return scad.New(), nil
	}
	switch backend {
	case "sdfx":
		return csg.New(), nil
	case "scad":
		return scad.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want sdfx or scad)", backend)
}

func printSummary(outPath string, motor bracket.MotorFixedSpec, dims bracket.Dimensions) error {
	fmt.Printf("[OK] exported: %s\n", outPath)
	fmt.Printf("  Mount hole pitch: %.3f mm\n", motor.MountHolePitch)
	fmt.Printf("  Mount hole dia (with clearance): %.3f mm\n", dims.MountHoleDia)
	fmt.Printf("  Center clearance dia: %.3f mm\n", dims.PilotDia)

	// Read the artifact back for an exported STL and report what landed
	if strings.EqualFold(filepath.Ext(outPath), ".stl") {
		info, err := stl.ReadInfo(outPath)
		if err != nil {
			return fmt.Errorf("failed to verify exported STL: %w", err)
		}
		size := info.Size()
		fmt.Printf("  Solid: %d triangles, %.1f x %.1f x %.1f mm\n", info.Triangles, size.X, size.Y, size.Z)
	}
	return nil
}
