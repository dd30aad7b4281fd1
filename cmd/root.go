package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the photo-arrange command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "photo-arrange <folder>",
		Short: "Arrange a folder of photos into printable A4 grid pages",
		Long: `Photo Arrange scans a folder of images and lays them out in a grid on A4
portrait pages with 1 cm margins and 0.5 cm spacing. Every page is written as
its own PDF (ready_01.pdf, ready_02.pdf, ...).

Without --width and --height each photo gets a square cell sized so that four
cells fill the page width. With both flags every photo is stretched to the
given size in centimeters.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: runArrange,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.Flags().Float64("width", 0, "Photo width in cm (requires --height)")
	cmd.Flags().Float64("height", 0, "Photo height in cm (requires --width)")
	cmd.MarkFlagsRequiredTogether("width", "height")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: the input folder)")
	cmd.Flags().String("report", "", "Write a run report to this file (.json, .yaml or .yml)")
	cmd.Flags().String("engine", "", "Rendering engine: pdf or latex (default from PHOTO_ARRANGE_ENGINE, else pdf)")
	cmd.Flags().Bool("debug", false, "Outline every grid cell on the pages")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
