// Package index builds the Media Index (spec §4.2): a single eager pass over the
// source that produces the GOP table, video frame-PTS array, and audio/subtitle
// track contents the planner and cutters consume. Grounded on
// original_source/smartcut/media_container.py's MediaContainer.
package index

import (
	"io"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/clipforge/cutter/common/errs"
	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/nal"
	"github.com/clipforge/cutter/rational"
)

// unknownNALType is the deferred/not-yet-classified sentinel for gop_start_nal_type.
const unknownNALType = -1

// GOPTable holds per-GOP metadata as parallel slices, indexed by gop_index (spec §3
// "VideoKeyframeEntry ... held as parallel arrays"). Hot-path search code in the
// planner and cutter takes the raw slices directly rather than a slice of structs.
type GOPTable struct {
	StartDTS      []int64        // gop_start_dts, video time-base
	EndDTS        []int64        // gop_end_dts, video time-base
	StartPTS      []rational.Rat // gop_start_pts, absolute seconds
	StartNALType  []int          // unknownNALType if never classified
	HasRASL       []bool
	LeadingEndDTS []int64 // codec.NoTimestamp if the GOP has no leading pictures
}

func (t *GOPTable) push(startDTS int64, nalType int) {
	t.StartDTS = append(t.StartDTS, startDTS)
	t.StartNALType = append(t.StartNALType, nalType)
	t.HasRASL = append(t.HasRASL, false)
	t.LeadingEndDTS = append(t.LeadingEndDTS, codec.NoTimestamp)
}

// Len returns the number of recorded GOPs.
func (t *GOPTable) Len() int { return len(t.StartDTS) }

// AudioTrack mirrors spec §3's AudioTrack entity: the full packet list plus a
// parallel PTS array, both immutable after index construction.
type AudioTrack struct {
	StreamIndex  int
	Stream       codec.Stream
	Packets      []codec.Packet
	PacketPTS    []int64        // raw ticks, stream time-base
	PacketTimes  []rational.Rat // absolute seconds
}

// SubtitleTrack is the ordered list of subtitle packets with native PTS (spec §3).
type SubtitleTrack struct {
	StreamIndex int
	Stream      codec.Stream
	Packets     []codec.Packet
}

// MediaIndex is the immutable result of one Open call (spec §4.2).
type MediaIndex struct {
	HasVideo    bool
	VideoStream codec.Stream
	GOPs        GOPTable

	// VideoFrameTimes is every video packet's PTS as absolute rational seconds,
	// sorted ascending (spec invariant 1).
	VideoFrameTimes []rational.Rat

	AudioTracks    []*AudioTrack
	SubtitleTracks []*SubtitleTrack

	StartTime rational.Rat // seconds
	Duration  rational.Rat // seconds
}

// DemuxerOpener opens a fresh handle onto the same source, used for the dedicated
// audio handle and the H.265 look-ahead second pass (spec §4.2 step 1, look-ahead pass).
type DemuxerOpener func() (codec.Demuxer, error)

// Open builds a MediaIndex per spec §4.2's construction algorithm.
func Open(open DemuxerOpener) (*MediaIndex, error) {
	primary, err := open()
	if err != nil {
		return nil, errs.Fatal(err, "open primary demux handle")
	}
	defer primary.Close()

	audioHandle, err := open()
	if err != nil {
		return nil, errs.Fatal(err, "open dedicated audio demux handle")
	}
	defer audioHandle.Close()

	idx := &MediaIndex{
		StartTime: rational.New(primary.StartTime(), rational.AVTimeBase),
	}

	manualDuration := primary.Duration() == 0
	if !manualDuration {
		idx.Duration = rational.New(primary.Duration(), rational.AVTimeBase)
	}

	streams, err := primary.Streams()
	if err != nil {
		return nil, errs.Fatal(err, "enumerate streams")
	}

	var videoCodec nal.Codec
	isH264, isH265 := false, false
	for _, s := range streams {
		if s.Type == codec.StreamVideo {
			idx.HasVideo = true
			idx.VideoStream = s
			switch s.Codec {
			case string(codecH264):
				isH264 = true
				videoCodec = nal.H264
			case string(codecHEVC):
				isH265 = true
				videoCodec = nal.H265
			}
		}
	}

	var subtitleByIndex = map[int]*SubtitleTrack{}
	for _, s := range streams {
		if s.Type == codec.StreamSubtitle {
			t := &SubtitleTrack{StreamIndex: s.Index, Stream: s}
			idx.SubtitleTracks = append(idx.SubtitleTracks, t)
			subtitleByIndex[s.Index] = t
		}
	}

	var framePTS []int64
	var keyframeFrameIdx []int
	firstKeyframe := true
	var lastSeenVideoDTS int64
	haveLastSeenDTS := false

	for {
		pkt, rerr := primary.ReadPacket()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, errs.Fatal(rerr, "demux primary handle")
		}
		if !pkt.HasPTS {
			continue
		}

		if manualDuration && pkt.HasPTS && pkt.Duration > 0 {
			streamTB := streamTimeBase(streams, pkt.StreamIndex)
			candidate := rational.Mul(rational.FromInt(pkt.PTS+pkt.Duration), streamTB)
			if rational.Gt(candidate, idx.Duration) {
				idx.Duration = candidate
			}
		}

		st := streamType(streams, pkt.StreamIndex)
		switch st {
		case codec.StreamVideo:
			if pkt.IsKeyframe {
				nalType := unknownNALType
				if isH265 || isH264 {
					if t, ok := nal.Classify(videoCodec, pkt.Data); ok {
						nalType = t
					}
				}

				safe := true
				if firstKeyframe {
					firstKeyframe = false
				} else if isH265 || isH264 {
					safe = nal.IsSafeKeyframe(videoCodec, nalType, nalType != unknownNALType)
				}

				if safe {
					keyframeFrameIdx = append(keyframeFrameIdx, len(framePTS))
					dts := pkt.DTS
					if !pkt.HasDTS {
						dts = -100_000_000
					}
					startType := nalType
					if isH265 && nalType >= nal.H265VPS && nalType <= nal.H265PPS {
						// parameter sets only; fillHEVCPictureNALTypes resolves the picture NAL
						startType = unknownNALType
					}
					idx.GOPs.push(dts, startType)
					if haveLastSeenDTS {
						idx.GOPs.EndDTS = append(idx.GOPs.EndDTS, lastSeenVideoDTS)
					}
				}
			}
			if pkt.HasDTS {
				lastSeenVideoDTS = pkt.DTS
				haveLastSeenDTS = true
			}
			framePTS = append(framePTS, pkt.PTS)
		case codec.StreamAudio:
			// audio is loaded from the dedicated handle below; skip here.
		case codec.StreamSubtitle:
			if t, ok := subtitleByIndex[pkt.StreamIndex]; ok {
				t.Packets = append(t.Packets, pkt)
			}
		}
	}

	if idx.HasVideo {
		idx.GOPs.EndDTS = append(idx.GOPs.EndDTS, lastSeenVideoDTS)

		videoTB := idx.VideoStream.TimeBase
		frameTimes := make([]rational.Rat, len(framePTS))
		for i, pts := range framePTS {
			frameTimes[i] = rational.Mul(rational.FromInt(pts), videoTB)
		}

		idx.GOPs.StartPTS = make([]rational.Rat, len(keyframeFrameIdx))
		for i, frameIdx := range keyframeFrameIdx {
			idx.GOPs.StartPTS[i] = frameTimes[frameIdx]
		}

		idx.VideoFrameTimes = append([]rational.Rat(nil), frameTimes...)
		sortRats(idx.VideoFrameTimes)

		if err := fillHEVCPictureNALTypes(open, idx); err != nil {
			log.Warn().Err(err).Msg("hevc look-ahead pass failed, leaving unknown NAL types")
		}
		if isH265 {
			if err := ScanRASL(open, idx); err != nil {
				log.Warn().Err(err).Msg("rasl pass failed, gop_has_rasl left false")
			}
		}
	}

	if err := loadAudioTracks(audioHandle, idx); err != nil {
		return nil, err
	}

	return idx, nil
}

func loadAudioTracks(audioHandle codec.Demuxer, idx *MediaIndex) error {
	streams, err := audioHandle.Streams()
	if err != nil {
		return errs.Fatal(err, "enumerate streams on audio handle")
	}

	byIndex := map[int]*AudioTrack{}
	for _, s := range streams {
		if s.Type == codec.StreamAudio {
			t := &AudioTrack{StreamIndex: s.Index, Stream: s}
			idx.AudioTracks = append(idx.AudioTracks, t)
			byIndex[s.Index] = t
		}
	}

	for {
		pkt, rerr := audioHandle.ReadPacket()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errs.Fatal(rerr, "demux audio handle")
		}
		if !pkt.HasPTS {
			continue
		}
		t, ok := byIndex[pkt.StreamIndex]
		if !ok {
			continue
		}
		t.Packets = append(t.Packets, pkt)
		t.PacketPTS = append(t.PacketPTS, pkt.PTS)
	}

	for _, t := range idx.AudioTracks {
		t.PacketTimes = make([]rational.Rat, len(t.PacketPTS))
		for i, pts := range t.PacketPTS {
			t.PacketTimes[i] = rational.Mul(rational.FromInt(pts), t.Stream.TimeBase)
		}
	}
	return nil
}

// fillHEVCPictureNALTypes runs the H.265 look-ahead pass (spec §4.2): for every GOP
// whose start NAL type is still unknownNALType, open a fresh handle, walk keyframes in
// order, and scan forward from the matching one until a picture NAL (<=21) is found.
func fillHEVCPictureNALTypes(open DemuxerOpener, idx *MediaIndex) error {
	if idx.VideoStream.Codec != string(codecHEVC) {
		return nil
	}

	toFill := map[int]bool{}
	for i, t := range idx.GOPs.StartNALType {
		if t == unknownNALType {
			toFill[i] = true
		}
	}
	if len(toFill) == 0 {
		return nil
	}

	handle, err := open()
	if err != nil {
		return err
	}
	defer handle.Close()

	keyframeIdx := 0
	lookingFor := false
	found := 0

	for {
		pkt, rerr := handle.ReadPacket()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if !pkt.HasPTS || !streamTypeIsVideo(idx, pkt.StreamIndex) {
			continue
		}

		if pkt.IsKeyframe && nalStartsGOP(idx, pkt.DTS) {
			lookingFor = toFill[keyframeIdx]
			keyframeIdx++
			continue
		}

		if lookingFor {
			if nalType, ok := nal.ClassifyH265(pkt.Data); ok && nal.IsPictureNAL(nalType) {
				idx.GOPs.StartNALType[keyframeIdx-1] = nalType
				found++
				lookingFor = false
				if found >= len(toFill) {
					break
				}
			}
		}
	}
	return nil
}

func streamTypeIsVideo(idx *MediaIndex, streamIndex int) bool {
	return idx.HasVideo && idx.VideoStream.Index == streamIndex
}

// ScanRASL performs a dedicated demux pass computing gop_has_rasl and
// gop_leading_end_dts for every GOP, per spec §4.2. Split out from Open so that
// callers without a cheap extra handle (e.g. tests against small fixtures) can skip
// it for codecs where it never matters (H.264 has no RASL concept).
func ScanRASL(open DemuxerOpener, idx *MediaIndex) error {
	if !idx.HasVideo || idx.VideoStream.Codec != string(codecHEVC) {
		return nil
	}

	handle, err := open()
	if err != nil {
		return err
	}
	defer handle.Close()

	gopIdx := -1
	for {
		pkt, rerr := handle.ReadPacket()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if !pkt.HasPTS || !streamTypeIsVideo(idx, pkt.StreamIndex) {
			continue
		}

		if pkt.IsKeyframe && nalStartsGOP(idx, pkt.DTS) {
			gopIdx++
		}
		if gopIdx < 0 || gopIdx >= idx.GOPs.Len() {
			continue
		}

		nalType, ok := nal.ClassifyH265(pkt.Data)
		if !ok {
			continue
		}
		if nal.IsRASL(nalType) {
			idx.GOPs.HasRASL[gopIdx] = true
		}
		if nal.IsLeadingPicture(nalType) && pkt.HasDTS {
			if idx.GOPs.LeadingEndDTS[gopIdx] == codec.NoTimestamp || pkt.DTS > idx.GOPs.LeadingEndDTS[gopIdx] {
				idx.GOPs.LeadingEndDTS[gopIdx] = pkt.DTS
			}
		}
	}
	return nil
}

func nalStartsGOP(idx *MediaIndex, dts int64) bool {
	for _, start := range idx.GOPs.StartDTS {
		if start == dts {
			return true
		}
	}
	return false
}

// NextFrameTime implements spec §4.2 next_frame_time(t): binary-search the sorted
// frame-PTS array and return the nearer neighbor, clamped to [first_frame, duration].
func (idx *MediaIndex) NextFrameTime(t rational.Rat) rational.Rat {
	target := rational.Add(t, idx.StartTime)
	times := idx.VideoFrameTimes
	n := len(times)
	i := searchRats(times, target)

	switch {
	case n == 0:
		return idx.Duration
	case i == n:
		return idx.Duration
	case i == 0:
		return rational.Sub(times[0], idx.StartTime)
	default:
		prev, next := times[i-1], times[i]
		if rational.Le(rational.Sub(target, prev), rational.Sub(next, target)) {
			return rational.Sub(prev, idx.StartTime)
		}
		return rational.Sub(next, idx.StartTime)
	}
}

func searchRats(times []rational.Rat, target rational.Rat) int {
	lo, hi := 0, len(times)
	for lo < hi {
		mid := (lo + hi) / 2
		if rational.Lt(times[mid], target) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func sortRats(times []rational.Rat) {
	sort.Slice(times, func(i, j int) bool { return rational.Lt(times[i], times[j]) })
}

func streamType(streams []codec.Stream, index int) codec.StreamType {
	for _, s := range streams {
		if s.Index == index {
			return s.Type
		}
	}
	return codec.StreamAttachment
}

func streamTimeBase(streams []codec.Stream, index int) rational.Rat {
	for _, s := range streams {
		if s.Index == index {
			return s.TimeBase
		}
	}
	return rational.New(1, rational.AVTimeBase)
}

const (
	codecH264 codec.VideoCodec = codec.H264
	codecHEVC codec.VideoCodec = codec.HEVC
)
