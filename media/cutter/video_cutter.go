package cutter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/nal"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

const (
	demuxGapSkipSeconds    = 120.0
	demuxSeekBackSeconds   = 30.0
	dtsGarbageLow          = int64(-900_000)
	dtsGarbageHigh         = int64(1_000_000_000_000)
	initialLastDTSSentinel = int64(-100_000_000)
)

// CodecCopy is the VideoSettings.CodecOverride value meaning "preserve the source
// codec" (spec §4.4's "copy/remux" mode, as opposed to an explicit recode target).
const CodecCopy codec.VideoCodec = "copy"

// Mode selects how the planner and cutter treat GOP boundaries (spec §6 CLI surface
// "mode flag (smartcut | keyframes | recode)").
type Mode int

const (
	// ModeSmartcut recodes only the GOP fragments that straddle a cut boundary.
	ModeSmartcut Mode = iota
	// ModeKeyframes forces whole-GOP copy even when boundaries don't align, trading
	// timing accuracy for speed (plan.MakeCutSegments' keyframeMode).
	ModeKeyframes
	// ModeRecode forces every planned segment to Recode, via plan.ForceRecode.
	ModeRecode
)

// VideoSettings configures what the Video Cutter produces (spec §4.4): every segment
// is fully recoded to CodecOverride only when Mode is ModeRecode and CodecOverride is
// not CodecCopy; otherwise the source codec is preserved and CodecOverride is ignored.
type VideoSettings struct {
	Mode          Mode
	Quality       codec.QualityPreset
	CodecOverride codec.VideoCodec
}

// VideoStreamSetup is the result of creating the output video stream, computed once
// up front so the codec name and full-recode flag are known before any segment is cut.
type VideoStreamSetup struct {
	OutStreamIndex int
	OutTimeBase    rational.Rat
	CodecName      codec.VideoCodec
	IsFullRecode   bool
}

// VideoCutter is the per-segment state machine of spec §4.4: for each CutSegment it
// produces output packets by copy, full recode, or hybrid CRA recode. Grounded on
// original_source/smartcut/video_cutter.py.
type VideoCutter struct {
	idx              *index.MediaIndex
	videoStreamIndex int
	inTimeBase       rational.Rat

	demuxer        codec.Demuxer // dedicated handle opened for this cutter's own iterator
	decoder        codec.Decoder
	encoderFactory codec.EncoderFactory
	filterFactory  codec.BitstreamFilterFactory

	outStreamIndex int
	outTimeBase    rational.Rat
	codecName      codec.VideoCodec
	isFullRecode   bool
	settings       VideoSettings
	logLevel       string

	encoder     codec.Encoder
	encOptsBase codec.EncoderOptions // template shared by every recode in this cutter
	encLastPTS  int64

	remuxFilter codec.BitstreamFilter

	lastDTS              int64
	segmentStartInOutput rational.Rat

	frameBuffer       frameHeap
	frameBufferGOPDTS int64
	demuxSavedPacket  *codec.Packet
	haveLastFetchEndDTS bool
	lastFetchEndDTS     int64

	haveLastRemuxedSegmentGOPIndex bool
	lastRemuxedSegmentGOPIndex     int
	isFirstRemuxedSegment          bool
}

// NewVideoCutter constructs a cutter for the video stream, opening its own demux
// iterator on demuxer (spec §4.4 "Shared resources": the cutter owns a third handle).
func NewVideoCutter(
	idx *index.MediaIndex,
	demuxer codec.Demuxer,
	decoder codec.Decoder,
	encoderFactory codec.EncoderFactory,
	filterFactory codec.BitstreamFilterFactory,
	setup VideoStreamSetup,
	settings VideoSettings,
	logLevel string,
	encOptsBase codec.EncoderOptions,
	initialPosition rational.Rat,
) *VideoCutter {
	c := &VideoCutter{
		idx:              idx,
		videoStreamIndex: idx.VideoStream.Index,
		inTimeBase:       idx.VideoStream.TimeBase,

		demuxer:        demuxer,
		decoder:        decoder,
		encoderFactory: encoderFactory,
		filterFactory:  filterFactory,

		outStreamIndex: setup.OutStreamIndex,
		outTimeBase:    setup.OutTimeBase,
		codecName:      setup.CodecName,
		isFullRecode:   setup.IsFullRecode,
		settings:       settings,
		logLevel:       logLevel,
		encOptsBase:    encOptsBase,

		lastDTS:              initialLastDTSSentinel,
		segmentStartInOutput: initialPosition,
		frameBufferGOPDTS:    -1,
		encLastPTS:           -1,

		isFirstRemuxedSegment: true,
	}

	if !setup.IsFullRecode {
		if kind := remuxFilterKind(idx.VideoStream); kind != codec.FilterNull {
			f, err := filterFactory.New(kind, idx.VideoStream.Extradata)
			if err != nil {
				log.Warn().Err(err).Str("kind", string(kind)).Msg("bitstream filter init failed, falling back to null")
			} else {
				c.remuxFilter = f
			}
		}
	}
	return c
}

// remuxFilterKind decides which bitstream filter the copy path needs, per spec §4.4
// "Copy (remux)": h264/hevc need Annex-B conversion unless already Annex-B, and the
// MPEG-4 Visual family gets dump_extra for ASF/AVI robustness.
func remuxFilterKind(stream codec.Stream) codec.BitstreamFilterKind {
	switch stream.Codec {
	case string(codec.H264):
		if !nal.IsAnnexB(stream.Extradata) {
			return codec.FilterH264MP4ToAnnexB
		}
	case string(codec.HEVC):
		if !nal.IsAnnexB(stream.Extradata) {
			return codec.FilterHEVCMP4ToAnnexB
		}
	case "mpeg4", "msmpeg4v3", "msmpeg4v2", "msmpeg4v1":
		return codec.FilterDumpExtra
	}
	return codec.FilterNull
}

// fourCC packs four bytes into the little-endian uint32 convention the container
// library uses for codec tags (matches how an "avc1" tag round-trips through the box).
func fourCC(b0, b1, b2, b3 byte) uint32 {
	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24
}

func fourCCString(s string) uint32 {
	b := [4]byte{}
	copy(b[:], s)
	return fourCC(b[0], b[1], b[2], b[3])
}

var (
	mpegTSH264Tag = fourCC(0x1b, 0, 0, 0)
	mpegTSHEVCTagNumeric = fourCC(0x24, 0, 0, 0)
	mpegTSHEVCTagASCII   = fourCCString("HEVC")
	avc1Tag = fourCCString("avc1")
	hev1Tag = fourCCString("hev1")
	hvc1Tag = fourCCString("hvc1")
)

// NormalizeCodecTag implements spec §4.4 "Codec-tag normalization": the driver calls
// this after creating the output stream, before the first packet is written.
func NormalizeCodecTag(containerName string, inCodec string, inCodecTag uint32) (uint32, bool) {
	containerName = strings.ToLower(containerName)
	isMP4MovMKV := containsAny(containerName, "mp4", "mov", "matroska", "webm")
	isMP4OrMov := containsAny(containerName, "mp4", "mov")

	if isMP4MovMKV && inCodec == string(codec.H264) && inCodecTag == mpegTSH264Tag {
		return avc1Tag, true
	}
	if isMP4OrMov && (inCodec == string(codec.HEVC) || inCodec == "h265") {
		return hev1Tag, true
	}
	if isMP4MovMKV && (inCodec == string(codec.HEVC) || inCodec == "h265") &&
		(inCodecTag == mpegTSHEVCTagNumeric || inCodecTag == mpegTSHEVCTagASCII) {
		return hvc1Tag, true
	}
	return 0, false
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Segment produces the output packets for one CutSegment, dispatching to copy,
// full-recode, or hybrid-CRA-recode per spec §4.4's "Three segment dispositions".
func (c *VideoCutter) Segment(s plan.CutSegment) ([]codec.Packet, error) {
	var packets []codec.Packet
	var err error

	switch {
	case s.Disposition == plan.Recode:
		packets, err = c.recodeSegment(s)
	case c.shouldHybridRecodeCRA(s):
		packets, err = c.hybridRecodeCRASegment(s)
		c.lastRemuxedSegmentGOPIndex, c.haveLastRemuxedSegmentGOPIndex = s.GOPIndex, true
		c.isFirstRemuxedSegment = false
	default:
		flushed, ferr := c.flushEncoder()
		if ferr != nil {
			return nil, ferr
		}
		remuxed, rerr := c.remuxSegment(s)
		if rerr != nil {
			return nil, rerr
		}
		packets = append(flushed, remuxed...)
		c.lastRemuxedSegmentGOPIndex, c.haveLastRemuxedSegmentGOPIndex = s.GOPIndex, true
		c.isFirstRemuxedSegment = false
	}
	if err != nil {
		return nil, err
	}

	c.segmentStartInOutput = rational.Add(c.segmentStartInOutput, rational.Sub(s.EndTime, s.StartTime))

	for i := range packets {
		c.fixPacketTimestamps(&packets[i])
	}
	return packets, nil
}

// Finish flushes any encoder in flight and releases the cutter's own demux handle.
func (c *VideoCutter) Finish() ([]codec.Packet, error) {
	packets, err := c.flushEncoder()
	if err != nil {
		return nil, err
	}
	for i := range packets {
		c.fixPacketTimestamps(&packets[i])
	}
	return packets, c.demuxer.Close()
}

// shouldHybridRecodeCRA implements spec §4.4's hybrid-CRA trigger: the upcoming GOP
// has leading pictures, and there's a discontinuity in the copied stream before it.
func (c *VideoCutter) shouldHybridRecodeCRA(s plan.CutSegment) bool {
	if s.GOPIndex < 0 || s.GOPIndex >= c.idx.GOPs.Len() {
		return false
	}
	if !c.idx.GOPs.HasRASL[s.GOPIndex] {
		return false
	}
	discontinuous := (c.isFirstRemuxedSegment && s.GOPIndex > 0) ||
		(c.haveLastRemuxedSegmentGOPIndex && s.GOPIndex > c.lastRemuxedSegmentGOPIndex+1)
	return discontinuous
}

func (c *VideoCutter) ensureEncoder() error {
	if c.encoder != nil {
		return nil
	}
	opts := c.encOptsBase
	opts.Codec = c.codecName
	opts.TimeBase = c.outTimeBase
	opts.CRF = codec.CRFFor(c.settings.Quality, c.codecName)
	opts.Lossless = c.settings.Quality == codec.QualityLossless
	switch c.codecName {
	case codec.H264:
		opts.X264Params = codec.X264ParamsDefault
	case codec.HEVC:
		opts.X265Params = codec.HEVCParams(opts.X265Params, opts.Lossless, c.logLevel)
	}
	enc, err := c.encoderFactory.New(string(c.codecName), opts)
	if err != nil {
		return err
	}
	c.encoder = enc
	c.encLastPTS = -1
	return nil
}

// recodeSegment implements spec §4.4 case 2: decode [gop_start_dts, gop_end_dts],
// re-encode frames whose PTS falls in [start_time, end_time).
func (c *VideoCutter) recodeSegment(s plan.CutSegment) ([]codec.Packet, error) {
	if err := c.ensureEncoder(); err != nil {
		return nil, err
	}

	var primingDTS *int64
	if s.GOPIndex > 0 && s.GOPIndex < c.idx.GOPs.Len() && c.idx.GOPs.HasRASL[s.GOPIndex] {
		d := c.idx.GOPs.StartDTS[s.GOPIndex-1]
		primingDTS = &d
	}

	var result []codec.Packet
	it := c.fetchFrame(s.GOPStartDTS, s.GOPEndDTS, s.EndTime, primingDTS, nil)
	for {
		frame, ok, err := it.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		frameTB := frame.TimeBase
		if rational.Cmp(frameTB, rational.Zero) == 0 {
			frameTB = c.inTimeBase
		}
		frameTime := rational.Mul(rational.FromInt(frame.PTS), frameTB)
		if rational.Lt(frameTime, s.StartTime) {
			continue
		}
		if rational.Ge(frameTime, s.EndTime) {
			break
		}

		pts := frame.PTS - rational.TruncDiv(s.StartTime, frameTB)
		pts = rational.TruncDiv(rational.Mul(rational.FromInt(pts), frameTB), c.outTimeBase)
		pts += rational.TruncDiv(c.segmentStartInOutput, c.outTimeBase)
		if pts <= c.encLastPTS {
			pts = c.encLastPTS + 1
		}
		c.encLastPTS = pts

		out := frame
		out.PTS = pts
		out.TimeBase = c.outTimeBase
		pkts, err := c.encoder.Encode(&out)
		if err != nil {
			return nil, err
		}
		result = append(result, pkts...)
	}

	return result, nil
}

// remuxSegment implements spec §4.4 case 1: pull packets in [gop_start_dts,
// gop_end_dts], filter, rebase timestamps.
func (c *VideoCutter) remuxSegment(s plan.CutSegment) ([]codec.Packet, error) {
	var result []codec.Packet
	segmentStartPTS := rational.TruncDiv(s.StartTime, c.inTimeBase)
	segmentStartOffset := rational.TruncDiv(c.segmentStartInOutput, c.outTimeBase)

	next := c.fetchPacket(s.GOPStartDTS, s.GOPEndDTS)
	for {
		pkt, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		c.rebaseRemuxPacket(&pkt, segmentStartPTS, segmentStartOffset)
		filtered, err := c.filterPacket(pkt)
		if err != nil {
			return nil, err
		}
		result = append(result, filtered...)
	}
	return result, nil
}

func (c *VideoCutter) rebaseRemuxPacket(pkt *codec.Packet, segmentStartPTS, segmentStartOffset int64) {
	pts := pkt.PTS
	pkt.PTS = rational.TruncDiv(rational.Mul(rational.FromInt(pts-segmentStartPTS), c.inTimeBase), c.outTimeBase) + segmentStartOffset
	if pkt.HasDTS {
		pkt.DTS = rational.TruncDiv(rational.Mul(rational.FromInt(pkt.DTS-segmentStartPTS), c.inTimeBase), c.outTimeBase) + segmentStartOffset
	}
	pkt.StreamIndex = c.outStreamIndex
}

func (c *VideoCutter) filterPacket(pkt codec.Packet) ([]codec.Packet, error) {
	if c.remuxFilter == nil {
		return []codec.Packet{pkt}, nil
	}
	out, err := c.remuxFilter.Filter(pkt)
	if err != nil {
		return nil, err
	}
	return []codec.Packet{out}, nil
}

// hybridRecodeCRASegment implements spec §4.4 case 3: recode only the leading
// pictures of a CRA-opened GOP, remux the CRA packet and everything after it.
func (c *VideoCutter) hybridRecodeCRASegment(s plan.CutSegment) ([]codec.Packet, error) {
	if err := c.ensureEncoder(); err != nil {
		return nil, err
	}

	leadingEndDTS := c.idx.GOPs.LeadingEndDTS[s.GOPIndex]
	segmentStartPTS := rational.TruncDiv(s.StartTime, c.inTimeBase)
	segmentStartOffset := rational.TruncDiv(c.segmentStartInOutput, c.outTimeBase)

	var primingDTS *int64
	if s.GOPIndex > 0 {
		d := c.idx.GOPs.StartDTS[s.GOPIndex-1]
		primingDTS = &d
	}

	var collected []codec.Packet
	var leading []codec.Frame
	it := c.fetchFrame(s.GOPStartDTS, leadingEndDTS, s.EndTime, primingDTS, &collected)
	for {
		frame, ok, err := it.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		leading = append(leading, frame)
	}

	if len(collected) == 0 {
		return nil, fmt.Errorf("hybrid recode: no CRA packet found in GOP %d", s.GOPIndex)
	}
	craPTS := collected[0].PTS

	gopStartTime := c.idx.GOPs.StartPTS[s.GOPIndex]

	var toEncode []codec.Frame
	for _, f := range leading {
		tb := f.TimeBase
		if rational.Cmp(tb, rational.Zero) == 0 {
			tb = c.inTimeBase
		}
		ft := rational.Mul(rational.FromInt(f.PTS), tb)
		if rational.Ge(ft, gopStartTime) && f.PTS < craPTS {
			toEncode = append(toEncode, f)
		}
	}
	sortFramesByPTS(toEncode)

	var result []codec.Packet
	for _, f := range toEncode {
		pts := rational.TruncDiv(rational.Mul(rational.FromInt(f.PTS-segmentStartPTS), c.inTimeBase), c.outTimeBase) + segmentStartOffset
		if pts <= c.encLastPTS {
			pts = c.encLastPTS + 1
		}
		c.encLastPTS = pts
		out := f
		out.PTS = pts
		out.TimeBase = c.outTimeBase
		pkts, err := c.encoder.Encode(&out)
		if err != nil {
			return nil, err
		}
		result = append(result, pkts...)
	}
	flushed, err := c.flushEncoder()
	if err != nil {
		return nil, err
	}
	for i := range flushed {
		if flushed[i].DTS > dtsGarbageHigh || !flushed[i].HasDTS {
			flushed[i].DTS = flushed[i].PTS
			flushed[i].HasDTS = true
		}
	}
	result = append(result, flushed...)

	remuxPackets := append([]codec.Packet{}, collected...)
	next := c.fetchPacket(leadingEndDTS, s.GOPEndDTS)
	for {
		pkt, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		remuxPackets = append(remuxPackets, pkt)
	}

	for _, pkt := range remuxPackets {
		p := pkt
		c.rebaseRemuxPacket(&p, segmentStartPTS, segmentStartOffset)
		filtered, err := c.filterPacket(p)
		if err != nil {
			return nil, err
		}
		result = append(result, filtered...)
	}
	return result, nil
}

func (c *VideoCutter) flushEncoder() ([]codec.Packet, error) {
	if c.encoder == nil {
		return nil, nil
	}
	packets, err := c.encoder.Encode(nil)
	if err != nil {
		return nil, err
	}
	if err := c.encoder.Close(); err != nil {
		return nil, err
	}
	c.encoder = nil
	return packets, nil
}

// fixPacketTimestamps implements spec §4.4's "timestamp repair step" applied to
// every packet just before emission.
func (c *VideoCutter) fixPacketTimestamps(pkt *codec.Packet) {
	if pkt.HasDTS && (pkt.DTS < dtsGarbageLow || pkt.DTS > dtsGarbageHigh) {
		pkt.HasDTS = false
	}

	if pkt.HasDTS {
		if pkt.DTS <= c.lastDTS {
			pkt.DTS = c.lastDTS + 1
		}
		if pkt.HasPTS && pkt.PTS < pkt.DTS {
			pkt.PTS = pkt.DTS
		}
		c.lastDTS = pkt.DTS
		return
	}

	ptsValue := int64(0)
	if pkt.HasPTS {
		ptsValue = pkt.PTS
	}
	if c.lastDTS < 0 {
		pkt.DTS = ptsValue
	} else {
		pkt.DTS = c.lastDTS + 1
	}
	pkt.HasDTS = true
	c.lastDTS = pkt.DTS
}

func sortFramesByPTS(frames []codec.Frame) {
	sort.Slice(frames, func(i, j int) bool { return frames[i].PTS < frames[j].PTS })
}

