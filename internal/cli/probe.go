package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mivori/sub2bdnxml/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe [media_file]",
	Short: "Print the stream properties used for conversion",
	Long: `Probe a media file and print the properties conversion derives from it:
resolution, frame rate, scan mode, container start offset, and whether a
subtitle stream is present.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	info, err := probe.File(args[0])
	if err != nil {
		return err
	}

	if info.HasVideo {
		fmt.Printf("Resolution:  %dx%d\n", info.Width, info.Height)
		fmt.Printf("Frame rate:  %s\n", info.Rate.String())
		scan := "progressive"
		if info.Interlaced {
			scan = "interlaced"
		}
		fmt.Printf("Scan mode:   %s\n", scan)
	} else {
		fmt.Println("No video stream")
	}
	fmt.Printf("Start time:  %.3fs\n", info.StartTime)
	fmt.Printf("Subtitles:   %v\n", info.HasSubtitles)

	return nil
}
