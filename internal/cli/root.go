package cli

import (
	"github.com/mivori/sub2bdnxml/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sub2bdnxml",
	Short: "Convert bitmap subtitle tracks to BDN XML with PNG images",
	Long: `sub2bdnxml converts decoded bitmap subtitle tracks (VobSub .idx/.sub)
into a BDN XML authoring document plus one PNG per subtitle event.

Timecodes are drift-free at fractional frame rates, and an optional
--ss/--to window trims and re-bases the timeline to match a video cut.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
