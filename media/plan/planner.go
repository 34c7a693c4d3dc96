// Package plan implements the Segment Planner (spec §4.3): it turns the user's keep
// intervals and the Media Index's GOP table into an ordered sequence of CutSegments,
// each tagged copy or recode. Grounded on
// original_source/smartcut/smart_cut.py's make_adjusted_segment_times/make_cut_segments,
// restructured per spec §9 DESIGN NOTES into an explicit tagged Disposition.
package plan

import (
	"fmt"

	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/rational"
)

// Disposition says how a CutSegment's covered range should be produced. Lifted to an
// explicit enum (spec §9 "Dynamic typing -> explicit variants") rather than inferring
// it from a require_recode bool plus a gop_index sentinel.
type Disposition int

const (
	// Copy means the segment's GOP(s) are bitstream-copied verbatim.
	Copy Disposition = iota
	// Recode means the fetch range is decoded and frames in [StartTime, EndTime) are
	// re-encoded.
	Recode
)

// Interval is a half-open [Start, End) keep range in seconds.
type Interval struct {
	Start, End rational.Rat
}

// CutSegment is one unit of planner output (spec §3's CutSegment entity).
type CutSegment struct {
	Disposition        Disposition
	StartTime, EndTime  rational.Rat
	GOPStartDTS, GOPEndDTS int64
	GOPIndex            int
}

// epsilon returns 1/1_000_000 as a Rat, the boundary-snap tolerance (spec §4.3).
func epsilon() rational.Rat { return rational.New(1, 1_000_000) }

// AdjustIntervals shifts every endpoint by +startTime and snaps endpoints within
// epsilon of the file boundaries outward by 10s, so floating jitter at a boundary
// never forces a needless recode (spec §4.3 "Preprocessing").
func AdjustIntervals(intervals []Interval, startTime, duration rational.Rat) []Interval {
	eps := epsilon()
	adjusted := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		s, e := iv.Start, iv.End
		if rational.Le(s, eps) {
			s = rational.FromInt(-10)
		}
		if rational.Ge(e, rational.Sub(duration, eps)) {
			e = rational.Add(duration, rational.FromInt(10))
		}
		adjusted = append(adjusted, Interval{
			Start: rational.Add(s, startTime),
			End:   rational.Add(e, startTime),
		})
	}
	return adjusted
}

// MakeCutSegments implements spec §4.3's "Video-less path" and "Video path" in full,
// including the documented open-question behavior: a GOP only partially covered by
// several adjacent intervals emits one recode CutSegment per interval, all tagged
// with that GOP's DTS bounds — intentional reuse of a single decoder pass across
// those intervals, not a bug (see DESIGN.md).
func MakeCutSegments(idx *index.MediaIndex, intervals []Interval, keyframeMode bool) []CutSegment {
	if !idx.HasVideo {
		return makeAudioOnlySegments(idx, intervals)
	}

	var segments []CutSegment
	cutpoints := make([]rational.Rat, idx.GOPs.Len()+1)
	copy(cutpoints, idx.GOPs.StartPTS)
	cutpoints[idx.GOPs.Len()] = rational.Add(rational.Add(idx.StartTime, idx.Duration), rational.New(1, 10000))

	p := 0
	for gopIdx := 0; gopIdx < idx.GOPs.Len(); gopIdx++ {
		i, o := cutpoints[gopIdx], cutpoints[gopIdx+1]
		iDTS, oDTS := idx.GOPs.StartDTS[gopIdx], idx.GOPs.EndDTS[gopIdx]

		for p < len(intervals) && rational.Le(intervals[p].End, i) {
			p++
		}

		switch {
		case p == len(intervals) || rational.Le(o, intervals[p].Start):
			// no overlap; nothing emitted for this GOP

		case keyframeMode || (rational.Ge(i, intervals[p].Start) && rational.Le(o, intervals[p].End)):
			segments = append(segments, CutSegment{
				Disposition: Copy,
				StartTime:   i, EndTime: o,
				GOPStartDTS: iDTS, GOPEndDTS: oDTS, GOPIndex: gopIdx,
			})

		default:
			if rational.Gt(i, intervals[p].Start) {
				segments = append(segments, CutSegment{
					Disposition: Recode,
					StartTime:   i, EndTime: intervals[p].End,
					GOPStartDTS: iDTS, GOPEndDTS: oDTS, GOPIndex: gopIdx,
				})
				p++
			}
			for p < len(intervals) && rational.Lt(intervals[p].End, o) {
				segments = append(segments, CutSegment{
					Disposition: Recode,
					StartTime:   intervals[p].Start, EndTime: intervals[p].End,
					GOPStartDTS: iDTS, GOPEndDTS: oDTS, GOPIndex: gopIdx,
				})
				p++
			}
			if p < len(intervals) && rational.Lt(intervals[p].Start, o) {
				segments = append(segments, CutSegment{
					Disposition: Recode,
					StartTime:   intervals[p].Start, EndTime: o,
					GOPStartDTS: iDTS, GOPEndDTS: oDTS, GOPIndex: gopIdx,
				})
			}
		}
	}

	return segments
}

// ForceRecode marks every segment Recode, used for the CLI's "recode" mode (spec §6
// CLI surface "mode flag (smartcut | keyframes | recode)").
func ForceRecode(segments []CutSegment) []CutSegment {
	for i := range segments {
		segments[i].Disposition = Recode
	}
	return segments
}

// maxAudioOnlySegmentLen is the "slice into ≤19s pieces" cap from spec §4.3
// "Video-less path".
var maxAudioOnlySegmentLen = rational.FromInt(19)

func makeAudioOnlySegments(idx *index.MediaIndex, intervals []Interval) []CutSegment {
	if len(idx.AudioTracks) == 0 {
		return nil
	}
	track := idx.AudioTracks[0]
	if len(track.PacketTimes) == 0 {
		return nil
	}
	minTime := track.PacketTimes[0]
	maxTime := rational.Add(track.PacketTimes[len(track.PacketTimes)-1], rational.New(1, 10000))

	var segments []CutSegment
	for _, iv := range intervals {
		s := iv.Start
		if rational.Lt(s, minTime) {
			s = minTime
		}
		e := iv.End
		if rational.Gt(e, maxTime) {
			e = maxTime
		}

		for rational.Lt(rational.Add(s, maxAudioOnlySegmentLen), e) {
			segEnd := rational.Add(s, maxAudioOnlySegmentLen)
			segments = append(segments, CutSegment{Disposition: Copy, StartTime: s, EndTime: segEnd})
			s = segEnd
		}
		segments = append(segments, CutSegment{Disposition: Copy, StartTime: s, EndTime: e})
	}
	return segments
}

// ValidateSegments checks spec §4.3's invariant: every emitted segment satisfies
// start_time < end_time.
func ValidateSegments(segments []CutSegment) error {
	for i, s := range segments {
		if !rational.Lt(s.StartTime, s.EndTime) {
			return fmt.Errorf("invalid segment %d: start_time %s >= end_time %s", i, s.StartTime, s.EndTime)
		}
	}
	return nil
}
