package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipforge/cutter/common/errs"
	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/cutter"
	"github.com/clipforge/cutter/media/driver"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

// Bind resolves the out-of-scope demuxer/decoder/encoder/muxer collaborator for a
// source path. The cutting engine never depends on a concrete codec library directly;
// whoever links a real binding into the final binary replaces this package variable
// before cmd.Execute runs.
var Bind func(inputPath string) (index.DemuxerOpener, driver.Dependencies, error)

var cutArgs struct {
	input         string
	output        string
	intervals     string
	mode          string
	quality       string
	codecOverride string
	audioCodec    string
	segmentMode   bool
}

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Cut intervals out of a source video into one or more output files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCut()
	},
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().StringVarP(&cutArgs.input, "input", "i", "", "source media path")
	cutCmd.MarkFlagRequired("input")
	cutCmd.Flags().StringVarP(&cutArgs.output, "output", "o", "", "output path, or a template containing '#' for segment index")
	cutCmd.MarkFlagRequired("output")
	cutCmd.Flags().StringVar(&cutArgs.intervals, "keep", "", "comma-separated start-end second pairs to keep, e.g. '0-10,25-40'")
	cutCmd.MarkFlagRequired("keep")
	cutCmd.Flags().StringVar(&cutArgs.mode, "mode", "smartcut", "smartcut | keyframes | recode")
	cutCmd.Flags().StringVar(&cutArgs.quality, "quality", "normal", "low | normal | high | indistinguishable | nearlossless | lossless")
	cutCmd.Flags().StringVar(&cutArgs.codecOverride, "codec", "copy", "output video codec when --mode=recode, otherwise ignored")
	cutCmd.Flags().StringVar(&cutArgs.audioCodec, "audio", "passthru", "audio handling for every source track: passthru | drop")
	cutCmd.Flags().BoolVar(&cutArgs.segmentMode, "segment", false, "write one output file per kept interval")
}

func runCut() error {
	if Bind == nil {
		return errs.InvalidInput("no codec binding linked into this binary; cmd.Bind must be set before cmd.Execute")
	}

	intervals, err := parseIntervals(cutArgs.intervals)
	if err != nil {
		return err
	}

	mode, err := parseMode(cutArgs.mode)
	if err != nil {
		return err
	}
	quality, err := parseQuality(cutArgs.quality)
	if err != nil {
		return err
	}

	opener, deps, err := Bind(cutArgs.input)
	if err != nil {
		return errs.Fatal(err, "bind codec collaborators for %s", cutArgs.input)
	}

	idx, err := index.Open(opener)
	if err != nil {
		return errs.Fatal(err, "open media index for %s", cutArgs.input)
	}

	var audioExport *driver.AudioExportInfo
	if cutArgs.audioCodec == "passthru" {
		tracks := make([]driver.AudioExportTrack, len(idx.AudioTracks))
		for i := range tracks {
			tracks[i] = driver.AudioExportTrack{Codec: driver.AudioCodecPassthru}
		}
		audioExport = &driver.AudioExportInfo{OutputTracks: tracks}
	}

	cancel := &driver.CancelObject{}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			log.Warn().Msg("cancellation requested, finishing current segment")
			cancel.Cancelled = true
		}
	}()

	opts := driver.Options{
		VideoSettings: cutter.VideoSettings{
			Mode:          mode,
			Quality:       quality,
			CodecOverride: codec.VideoCodec(cutArgs.codecOverride),
		},
		AudioExport: audioExport,
		LogLevel:    logLevel,
		SegmentMode: cutArgs.segmentMode,
		Progress: func(event []byte) {
			log.Info().RawJSON("progress", event).Msg("cut progress")
		},
		Cancel: cancel,
	}

	summary, err := driver.Cut(idx, intervals, cutArgs.output, deps, opts)
	if err != nil {
		return err
	}

	log.Info().
		Strs("output_files", summary.OutputFiles).
		Int("segments_copied", summary.SegmentsCopied).
		Int("segments_recoded", summary.SegmentsRecoded).
		Msg("cut complete")
	return nil
}

// parseIntervals parses "s1-e1,s2-e2,..." into plan.Interval values in the order
// given; it does not sort them or check that they are ascending.
func parseIntervals(raw string) ([]plan.Interval, error) {
	if raw == "" {
		return nil, errs.InvalidInput("--keep requires at least one interval")
	}
	parts := strings.Split(raw, ",")
	out := make([]plan.Interval, 0, len(parts))
	for _, p := range parts {
		bounds := strings.SplitN(strings.TrimSpace(p), "-", 2)
		if len(bounds) != 2 {
			return nil, errs.InvalidInput("malformed interval %q", p)
		}
		start, err := strconv.ParseFloat(bounds[0], 64)
		if err != nil {
			return nil, errs.InvalidInput("malformed interval start %q", bounds[0])
		}
		end, err := strconv.ParseFloat(bounds[1], 64)
		if err != nil {
			return nil, errs.InvalidInput("malformed interval end %q", bounds[1])
		}
		out = append(out, plan.Interval{
			Start: secondsToRat(start),
			End:   secondsToRat(end),
		})
	}
	return out, nil
}

func secondsToRat(f float64) rational.Rat {
	const scale = 1_000_000_000
	return rational.New(int64(f*scale), scale)
}

func parseMode(s string) (cutter.Mode, error) {
	switch strings.ToLower(s) {
	case "smartcut":
		return cutter.ModeSmartcut, nil
	case "keyframes":
		return cutter.ModeKeyframes, nil
	case "recode":
		return cutter.ModeRecode, nil
	default:
		return 0, errs.InvalidInput("unknown --mode %q", s)
	}
}

func parseQuality(s string) (codec.QualityPreset, error) {
	switch strings.ToLower(s) {
	case "low":
		return codec.QualityLow, nil
	case "normal":
		return codec.QualityNormal, nil
	case "high":
		return codec.QualityHigh, nil
	case "indistinguishable":
		return codec.QualityIndistinguishable, nil
	case "nearlossless":
		return codec.QualityNearLossless, nil
	case "lossless":
		return codec.QualityLossless, nil
	default:
		return 0, errs.InvalidInput("unknown --quality %q", s)
	}
}
