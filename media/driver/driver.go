// Package driver implements the Cut Driver (spec §4.7): it orchestrates the Segment
// Planner and the per-stream cutters into a complete export, handling output
// container setup, segment-mode file splitting, and cancellation. Grounded on
// original_source/smartcut/smart_cut.py's smart_cut function.
package driver

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/clipforge/cutter/common/errs"
	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/cutter"
	"github.com/clipforge/cutter/media/format"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
	"github.com/clipforge/cutter/statistics"
)

// encodedByTag is the container metadata key every output file carries (spec §4.7
// "Creates the output container; writes ENCODED_BY metadata").
const encodedByTag = "ENCODED_BY"

// engineVersion stamps the ENCODED_BY metadata value.
const engineVersion = "clipforge-cutter 1.0"

// CancelObject is the shared cancellation flag polled between output files and
// between segments (spec §5 "Cancellation").
type CancelObject struct {
	Cancelled bool
}

// Generator is the common shape the Video, Passthrough Audio, and Subtitle cutters
// all satisfy (spec §4.7's StreamGenerator protocol, adapted to Go's explicit-error
// convention).
type Generator interface {
	Segment(s plan.CutSegment) ([]codec.Packet, error)
	Finish() ([]codec.Packet, error)
}

// GeneratorFactory builds an extra generator against a freshly opened output muxer,
// the escape hatch for callers multiplexing something this engine doesn't know about
// (spec §4.7 "external_generator_factories").
type GeneratorFactory func(mux codec.Muxer) (Generator, error)

// AudioCodecPassthru is the only in-scope audio export codec (spec §1 "Out of scope":
// audio re-encoding). An AudioExportTrack naming any other codec is skipped.
const AudioCodecPassthru = "passthru"

// AudioExportTrack selects one source audio track's output handling.
type AudioExportTrack struct {
	Codec string
}

// AudioExportInfo indexes AudioExportTrack by source track position, mirroring
// audio_export_info.output_tracks.
type AudioExportInfo struct {
	OutputTracks []AudioExportTrack
}

// Dependencies are the out-of-scope collaborators the driver wires into each cutter
// (spec §6 "External interfaces").
type Dependencies struct {
	DemuxerOpener  index.DemuxerOpener
	MuxerOpener    codec.MuxerOpener
	DecoderFactory codec.DecoderFactory
	EncoderFactory codec.EncoderFactory
	FilterFactory  codec.BitstreamFilterFactory
}

// ProgressEvent is one jsoniter-encoded progress update, emitted per completed
// segment and once more after the final flush (supplementing spec §6's bare
// ProgressCallback per SPEC_FULL's domain stack).
type ProgressEvent struct {
	OutputFile    string `json:"output_file"`
	SegmentsDone  int    `json:"segments_done"`
	SegmentsTotal int    `json:"segments_total"`
}

// ProgressFunc receives one jsoniter-encoded ProgressEvent.
type ProgressFunc func(event []byte)

// Options configures one Cut call (spec §6 CLI surface).
type Options struct {
	VideoSettings      cutter.VideoSettings
	AudioExport        *AudioExportInfo
	LogLevel           string
	SegmentMode        bool
	ExternalGenerators []GeneratorFactory
	Progress           ProgressFunc
	Cancel             *CancelObject
}

// Summary reports what a Cut call produced (supplementing spec §6's bare
// ProgressCallback, per SPEC_FULL's domain stack).
type Summary struct {
	OutputFiles     []string
	SegmentsCopied  int
	SegmentsRecoded int
}

type outputFile struct {
	path        string
	boundaryEnd rational.Rat
}

// Cut implements spec §4.7 in full: plans segments, opens one or more output
// containers, wires cutters for every in-scope stream, multiplexes every segment's
// packets, and flushes. intervals are the caller's raw keep intervals, relative to
// the source's own zero (AdjustIntervals below rebases them onto idx.StartTime).
func Cut(idx *index.MediaIndex, intervals []plan.Interval, outPath string, deps Dependencies, opts Options) (*Summary, error) {
	if idx == nil {
		return nil, errs.InvalidInput("nil media index")
	}
	if deps.MuxerOpener == nil {
		return nil, errs.InvalidInput("no muxer opener configured")
	}

	keyframeMode := opts.VideoSettings.Mode == cutter.ModeKeyframes
	adjusted := plan.AdjustIntervals(intervals, idx.StartTime, idx.Duration)
	segments := plan.MakeCutSegments(idx, adjusted, keyframeMode)
	if opts.VideoSettings.Mode == cutter.ModeRecode {
		segments = plan.ForceRecode(segments)
	}
	if err := plan.ValidateSegments(segments); err != nil {
		return nil, errs.InvalidInput("%v", err)
	}

	files, err := planOutputFiles(outPath, adjusted, opts.SegmentMode)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	segStats := statistics.SummarizeSegments(segments)
	summary.SegmentsCopied = segStats.Copied
	summary.SegmentsRecoded = segStats.Recoded
	log.Info().Str("stats", segStats.String()).Msg("planned segments")
	if idx.HasVideo {
		log.Info().Str("stats", statistics.Summarize(idx).String()).Msg("source GOP table")
	}

	done := 0
	for _, of := range files {
		if opts.Cancel != nil && opts.Cancel.Cancelled {
			break
		}

		n, cutErr := cutOneFile(idx, segments, done, of, deps, opts, len(segments))
		if cutErr != nil {
			return summary, cutErr
		}
		done += n
		summary.OutputFiles = append(summary.OutputFiles, of.path)

		if opts.Cancel != nil && opts.Cancel.Cancelled {
			if _, statErr := os.Stat(of.path); statErr == nil {
				if rmErr := os.Remove(of.path); rmErr != nil {
					log.Warn().Err(rmErr).Str("path", of.path).Msg("failed to delete partial output on cancellation")
				}
			}
		}
	}

	return summary, nil
}

// planOutputFiles computes the (path, boundary) pairs for every output file (spec
// §4.7 "segment-mode output splitting").
func planOutputFiles(outPath string, adjusted []plan.Interval, segmentMode bool) ([]outputFile, error) {
	if !segmentMode {
		boundary := rational.Zero
		if len(adjusted) > 0 {
			boundary = adjusted[len(adjusted)-1].End
		}
		return []outputFile{{path: outPath, boundaryEnd: boundary}}, nil
	}

	if len(adjusted) == 0 {
		return nil, errs.InvalidInput("segment mode requires at least one interval")
	}
	padding := len(strconv.Itoa(len(adjusted)))
	files := make([]outputFile, len(adjusted))
	for i, iv := range adjusted {
		segIndex := fmt.Sprintf("%0*d", padding, i+1)
		files[i] = outputFile{path: substituteSegmentIndex(outPath, segIndex), boundaryEnd: iv.End}
	}
	return files, nil
}

// substituteSegmentIndex inserts segIndex at the last '#' in template, or immediately
// before the last '.' when no '#' is present (spec §4.7 file naming rule).
func substituteSegmentIndex(template, segIndex string) string {
	if i := strings.LastIndex(template, "#"); i >= 0 {
		return template[:i] + segIndex + template[i+1:]
	}
	if dot := strings.LastIndex(template, "."); dot >= 0 {
		return template[:dot] + segIndex + template[dot:]
	}
	return template + segIndex
}

// cutOneFile produces one output file, returning the number of segments it consumed
// starting at segments[startAt:].
func cutOneFile(idx *index.MediaIndex, segments []plan.CutSegment, startAt int, of outputFile, deps Dependencies, opts Options, totalSegments int) (int, error) {
	mux, err := deps.MuxerOpener(of.path)
	if err != nil {
		return 0, errs.Fatal(err, "open output container %s", of.path)
	}
	ok := false
	defer func() {
		if !ok {
			_ = mux.Close()
		}
	}()

	mux.SetMetadata(encodedByTag, engineVersion)

	formatName := strings.ToLower(mux.FormatName())
	includeVideo := idx.HasVideo && !format.IsAudioOnlyFormat(formatName)

	if supportsAttachments(formatName) {
		if err := copyAttachments(deps, mux); err != nil {
			log.Warn().Err(err).Msg("attachment passthrough failed, continuing without attachments")
		}
	}

	var generators []Generator
	var closers []func() error

	if includeVideo {
		gen, closeFn, err := newVideoGenerator(idx, mux, deps, opts)
		if err != nil {
			return 0, err
		}
		generators = append(generators, gen)
		closers = append(closers, closeFn)
	}

	for _, factory := range opts.ExternalGenerators {
		gen, err := factory(mux)
		if err != nil {
			return 0, errs.Fatal(err, "build external generator")
		}
		generators = append(generators, gen)
	}

	if opts.AudioExport != nil {
		for trackIndex, exp := range opts.AudioExport.OutputTracks {
			if exp.Codec != AudioCodecPassthru {
				continue
			}
			if trackIndex >= len(idx.AudioTracks) {
				continue
			}
			track := idx.AudioTracks[trackIndex]
			outStream, err := mux.AddStreamFromTemplate(track.Stream)
			if err != nil {
				return 0, errs.Fatal(err, "add passthru audio stream %d", trackIndex)
			}
			generators = append(generators, cutter.NewAudioCutter(track, outStream.Index))
		}
	}

	for _, track := range idx.SubtitleTracks {
		outStream, err := mux.AddStreamFromTemplate(track.Stream)
		if err != nil {
			return 0, errs.Fatal(err, "add subtitle stream %d", track.StreamIndex)
		}
		generators = append(generators, cutter.NewSubtitleCutter(track, outStream.Index))
	}

	defer func() {
		for _, c := range closers {
			if c == nil {
				continue
			}
			if err := c(); err != nil {
				log.Warn().Err(err).Msg("closing video cutter resources failed")
			}
		}
	}()

	emit(opts.Progress, of.path, startAt, totalSegments)

	processed := 0
	for _, s := range segments[startAt:] {
		if opts.Cancel != nil && opts.Cancel.Cancelled {
			break
		}
		if rational.Ge(s.StartTime, of.boundaryEnd) {
			break
		}

		processed++
		for _, g := range generators {
			packets, err := g.Segment(s)
			if err != nil {
				return processed, err
			}
			for _, pkt := range packets {
				sanitizeDTS(&pkt, false)
				if err := mux.WritePacket(pkt.StreamIndex, pkt); err != nil {
					return processed, errs.Fatal(err, "write packet")
				}
			}
		}

		emit(opts.Progress, of.path, startAt+processed, totalSegments)
	}

	for _, g := range generators {
		packets, err := g.Finish()
		if err != nil {
			return processed, err
		}
		for _, pkt := range packets {
			sanitizeDTS(&pkt, true)
			if err := mux.WritePacket(pkt.StreamIndex, pkt); err != nil {
				return processed, errs.Fatal(err, "write flushed packet")
			}
		}
	}

	emit(opts.Progress, of.path, startAt+processed, totalSegments)

	if err := mux.WriteTrailer(); err != nil {
		return processed, errs.Fatal(err, "write trailer for %s", of.path)
	}
	ok = true
	if err := mux.Close(); err != nil {
		return processed, errs.Fatal(err, "close output container %s", of.path)
	}
	return processed, nil
}

// sanitizeDTS applies the Cut Driver's inline DTS sanity pass (spec §4.7): a DTS
// below -900_000 is cleared (treated as absent), and one above 1e12 is logged as a
// bitstream anomaly but still muxed, matching the source's warn-and-continue.
func sanitizeDTS(pkt *codec.Packet, inFinish bool) {
	if !pkt.HasDTS {
		return
	}
	if pkt.DTS < -900_000 {
		pkt.HasDTS = false
		return
	}
	if pkt.DTS > 1_000_000_000_000 {
		ev := log.Warn().Int64("pts", pkt.PTS).Int64("dts", pkt.DTS)
		if inFinish {
			ev.Msg("BAD DTS in finish")
		} else {
			ev.Msg("BAD DTS")
		}
	}
}

func emit(progress ProgressFunc, outputFile string, done, total int) {
	if progress == nil {
		return
	}
	data, err := jsoniter.Marshal(ProgressEvent{OutputFile: outputFile, SegmentsDone: done, SegmentsTotal: total})
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode progress event")
		return
	}
	progress(data)
}

// supportsAttachments reports whether formatName (already lower-cased) is a
// container known to carry attachment streams (spec §4.7 "Matroska/WebM").
func supportsAttachments(formatName string) bool {
	return strings.Contains(formatName, "matroska") || strings.Contains(formatName, "webm")
}

// copyAttachments opens a short-lived demux handle solely to enumerate attachment
// streams and template-copy them onto mux (spec §4.7 "copy attachment streams from
// the primary input container").
func copyAttachments(deps Dependencies, mux codec.Muxer) error {
	if deps.DemuxerOpener == nil {
		return nil
	}
	d, err := deps.DemuxerOpener()
	if err != nil {
		return err
	}
	defer d.Close()

	streams, err := d.Streams()
	if err != nil {
		return err
	}
	for _, s := range streams {
		if s.Type != codec.StreamAttachment {
			continue
		}
		if _, err := mux.AddStreamFromTemplate(s); err != nil {
			return err
		}
	}
	return nil
}

// newVideoGenerator wires a fresh demux handle, decoder, output stream, and
// VideoCutter for one output file. The returned close func releases the demuxer and
// decoder (spec §4.4 "the demux iterator lives for the cutter's lifetime").
func newVideoGenerator(idx *index.MediaIndex, mux codec.Muxer, deps Dependencies, opts Options) (Generator, func() error, error) {
	if deps.DemuxerOpener == nil || deps.DecoderFactory == nil || deps.EncoderFactory == nil {
		return nil, nil, errs.InvalidInput("video cutter requires a demuxer opener, decoder factory, and encoder factory")
	}

	setup, err := createVideoOutputStream(idx, mux, opts.VideoSettings)
	if err != nil {
		return nil, nil, err
	}

	demuxer, err := deps.DemuxerOpener()
	if err != nil {
		return nil, nil, errs.Fatal(err, "open dedicated video demux handle")
	}

	decoder, err := deps.DecoderFactory.New(idx.VideoStream)
	if err != nil {
		_ = demuxer.Close()
		return nil, nil, errs.Fatal(err, "create video decoder")
	}

	encOptsBase := videoEncoderOptionsBase(idx, setup)

	vc := cutter.NewVideoCutter(idx, demuxer, decoder, deps.EncoderFactory, deps.FilterFactory, setup, opts.VideoSettings, opts.LogLevel, encOptsBase, rational.Zero)

	closeFn := func() error {
		demuxErr := demuxer.Close()
		decErr := decoder.Close()
		if demuxErr != nil {
			return demuxErr
		}
		return decErr
	}
	return vc, closeFn, nil
}

// createVideoOutputStream creates the output video stream from the source, per spec
// §4.4 "Encoder initialization" / §4.7: either an explicit recode target (RECODE mode
// with a codec override) or a templated copy of the source stream for
// smartcut/keyframes mode. Separated from the cutter so joining-style callers could
// reuse it, mirroring the source's standalone create_video_output_stream.
func createVideoOutputStream(idx *index.MediaIndex, mux codec.Muxer, settings cutter.VideoSettings) (cutter.VideoStreamSetup, error) {
	in := idx.VideoStream

	if settings.Mode == cutter.ModeRecode && settings.CodecOverride != cutter.CodecCopy {
		outStream, err := mux.AddStream(string(settings.CodecOverride), codec.EncoderOptions{
			Codec:    settings.CodecOverride,
			Width:    in.Width,
			Height:   in.Height,
			PixFmt:   in.PixFmt,
			SAR:      in.SAR,
			TimeBase: in.TimeBase,
		})
		if err != nil {
			return cutter.VideoStreamSetup{}, errs.Fatal(err, "add recoded video stream")
		}
		return cutter.VideoStreamSetup{
			OutStreamIndex: outStream.Index,
			OutTimeBase:    in.TimeBase,
			CodecName:      settings.CodecOverride,
			IsFullRecode:   true,
		}, nil
	}

	outStream, err := mux.AddStreamFromTemplate(in)
	if err != nil {
		return cutter.VideoStreamSetup{}, errs.Fatal(err, "add templated video stream")
	}
	if tag, ok := cutter.NormalizeCodecTag(mux.FormatName(), in.Codec, in.CodecTag); ok {
		if err := mux.SetCodecTag(outStream.Index, tag); err != nil {
			log.Warn().Err(err).Msg("failed to normalize output codec tag")
		}
	}
	return cutter.VideoStreamSetup{
		OutStreamIndex: outStream.Index,
		OutTimeBase:    in.TimeBase,
		CodecName:      codec.VideoCodec(in.Codec),
		IsFullRecode:   false,
	}, nil
}

// videoEncoderOptionsBase seeds the per-segment encoder template with everything
// known up front from the source stream; VideoCutter.ensureEncoder fills in the
// quality-derived fields (CRF, lossless, per-codec params) lazily.
func videoEncoderOptionsBase(idx *index.MediaIndex, setup cutter.VideoStreamSetup) codec.EncoderOptions {
	in := idx.VideoStream
	opts := codec.EncoderOptions{
		Width:      in.Width,
		Height:     in.Height,
		PixFmt:     in.PixFmt,
		SAR:        in.SAR,
		Profile:    codec.NormalizeProfile(in.Profile),
		BitRate:    in.BitRate,
		BitRateTol: in.BitRateTol,
	}
	if setup.CodecName == codec.HEVC {
		opts.X265Params = codec.ParseHEVCExtradataOptionsTail(in.Extradata)
	}
	return opts
}
