// Package cli provides the command-line interface for pixelize.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pixelize/internal/version"
)

// NewRootCmd builds the pixelize command tree. Each call returns an
// independent tree, so tests can execute commands without shared state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pixelize",
		Short: "Turn images into pixel art",
		Long: `pixelize turns an image into pixel art.

The image is fitted onto a drawing surface, divided into a grid of tiles, and
each tile is painted with a single colour estimated from five sample points.
Tile colours are reduced either by snapping to a fixed retro palette or by
bit-depth quantization, and a dashed "stitch" or solid grid is drawn on top.

A frequency report of the resulting colours is printed after every render.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newPalettesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
