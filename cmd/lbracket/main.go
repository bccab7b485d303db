package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fablab-tools/lbracket/version"
)

var rootCmd = &cobra.Command{
	Use:   "lbracket",
	Short: "Generate an L-shaped mounting bracket for M206-family motors",
	Long: `lbracket derives the dimensions and hole placements of a parametric
L-shaped motor mounting bracket from the fixed M206 mounting interface,
builds the solid through a swappable geometry kernel, and exports it to
a 3D exchange file (STL by default, OpenSCAD source via a .scad path).`,
	Version: version.GetFullVersion(),
	Args:    cobra.NoArgs,
	Run:     runGenerate,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
