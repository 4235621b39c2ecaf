package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mivori/sub2bdnxml/internal/bdn"
	"github.com/mivori/sub2bdnxml/internal/decode"
	"github.com/mivori/sub2bdnxml/internal/probe"
	"github.com/mivori/sub2bdnxml/internal/render"
	"github.com/mivori/sub2bdnxml/internal/timecode"
	"github.com/mivori/sub2bdnxml/internal/timeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle track to BDN XML and PNG images",
	Long: `Convert a VobSub subtitle track (.idx with its .sub next to it) into a
BDN XML document plus one PNG file per subtitle event.

Canvas size and frame rate come from --resolution/--fps, or from probing a
companion video file passed with --video; without either, the output
defaults to 1920x1080 at 29.97 fps.

Examples:
  sub2bdnxml convert movie.idx
  sub2bdnxml convert movie.idx --video movie.mkv -o out/
  sub2bdnxml convert movie.idx -r 720x480 --fps 29.97 --interlaced
  sub2bdnxml convert movie.idx --ss 00:05:00 --to 00:42:30.500`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("output", "o", "", "Output directory (default: <name>_bdnxml next to the input)")
	convertCmd.Flags().
		StringP("resolution", "r", "", "Output canvas (1920x1080, 1440x1080, 1280x720, 720x480)")
	convertCmd.Flags().
		Bool("anamorphic", false, "Keep 1440x1080 sources at their native width")
	convertCmd.Flags().
		String("video", "", "Companion video file probed for canvas, frame rate and start offset")
	convertCmd.Flags().
		String("fps", "", "Frame rate (e.g. 29.97, 25, 30000/1001)")
	convertCmd.Flags().
		Bool("interlaced", false, "Label the video format as interlaced")
	convertCmd.Flags().
		String("ss", "", "Trim window start (seconds or [HH:]MM:SS[.mmm])")
	convertCmd.Flags().
		String("to", "", "Trim window end (seconds or [HH:]MM:SS[.mmm])")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	if strings.EqualFold(filepath.Ext(input), ".sub") {
		input = strings.TrimSuffix(input, filepath.Ext(input)) + ".idx"
	}
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	resolution, _ := cmd.Flags().GetString("resolution")
	anamorphic, _ := cmd.Flags().GetBool("anamorphic")
	videoPath, _ := cmd.Flags().GetString("video")
	fpsStr, _ := cmd.Flags().GetString("fps")
	interlaced, _ := cmd.Flags().GetBool("interlaced")
	ssStr, _ := cmd.Flags().GetString("ss")
	toStr, _ := cmd.Flags().GetString("to")

	var clip timeline.ClipRange
	if ssStr != "" {
		ss, err := timecode.ParseTime(ssStr)
		if err != nil {
			return fmt.Errorf("invalid --ss value: %w", err)
		}
		clip.Start = &ss
	}
	if toStr != "" {
		to, err := timecode.ParseTime(toStr)
		if err != nil {
			return fmt.Errorf("invalid --to value: %w", err)
		}
		clip.End = &to
	}

	baseName := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(input), baseName+"_bdnxml")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var media *probe.Info
	if videoPath != "" {
		info, err := probe.File(videoPath)
		if err != nil {
			return err
		}
		media = info
		logger.Debugw("probed companion video",
			"path", videoPath,
			"width", info.Width,
			"height", info.Height,
			"rate", info.Rate.String(),
			"start_time", info.StartTime,
			"interlaced", info.Interlaced,
		)
	}

	canvas := resolution
	if canvas != "" {
		if err := bdn.ValidateCanvas(canvas); err != nil {
			return err
		}
	} else {
		var videoWidth, videoHeight int
		if media != nil {
			videoWidth, videoHeight = media.Width, media.Height
		}
		derived, err := bdn.DetermineCanvas(videoWidth, videoHeight, anamorphic)
		if err != nil {
			return err
		}
		canvas = derived
	}
	width, height, err := bdn.ParseCanvas(canvas)
	if err != nil {
		return err
	}

	rate := timecode.Rate2997
	if fpsStr != "" {
		parsed, err := timecode.ParseRate(fpsStr)
		if err != nil {
			return err
		}
		rate = parsed
	} else if media != nil && !media.Rate.IsZero() {
		rate = media.Rate
	}

	streamStart := 0.0
	if media != nil {
		streamStart = media.StartTime
		if media.Interlaced {
			interlaced = true
		}
	}

	logger.Infow("converting subtitle track",
		"input", input,
		"output", outputDir,
		"canvas", canvas,
		"fps", rate.String(),
	)

	source, err := decode.NewVobSubSource(input, logger)
	if err != nil {
		return err
	}

	events, err := timeline.NewBuilder(source, streamStart, clip, logger).Build()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		logger.Warnw("no subtitle events in the selected range", "input", input)
	}

	generator := bdn.NewGenerator(bdn.Info{
		Width:       width,
		Height:      height,
		Rate:        rate,
		VideoFormat: bdn.VideoFormat(height, interlaced),
	})

	for i, event := range events {
		name := render.Filename(baseName, i)
		if err := render.SavePNG(event.Bitmap, filepath.Join(outputDir, name)); err != nil {
			return err
		}
		generator.AddEvent(bdn.Event{
			InTC:   timecode.ToTimecode(event.Start, rate),
			OutTC:  timecode.ToTimecode(event.End, rate),
			File:   name,
			X:      event.Bitmap.X,
			Y:      event.Bitmap.Y,
			Width:  event.Bitmap.W,
			Height: event.Bitmap.H,
		})
	}

	xmlPath := filepath.Join(outputDir, baseName+".xml")
	if err := generator.WriteFile(xmlPath); err != nil {
		return err
	}

	logger.Infow("conversion finished",
		"events", len(events),
		"document", xmlPath,
	)
	fmt.Printf("Wrote %d events to %s\n", len(events), xmlPath)

	return nil
}
