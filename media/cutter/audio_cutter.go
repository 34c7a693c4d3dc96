// Package cutter implements the per-stream cutter pipelines (spec §4.4-4.6): the
// Video Cutter, Passthrough Audio Cutter, and Subtitle Cutter. Grounded on
// original_source/smartcut/track_cutters.py and video_cutter.py.
package cutter

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

const initialPrevTimestamp = -100_000

// AudioCutter implements the Passthrough Audio Cutter (spec §4.5): for each segment,
// select source packets by PTS range, shift timestamps, enforce monotonicity.
type AudioCutter struct {
	track       *index.AudioTrack
	outStreamIndex int

	segmentStartInOutput rational.Rat
	prevDTS, prevPTS      int64
}

// NewAudioCutter constructs a cutter for one audio track, writing to outStreamIndex
// on the output muxer.
func NewAudioCutter(track *index.AudioTrack, outStreamIndex int) *AudioCutter {
	return &AudioCutter{
		track:          track,
		outStreamIndex: outStreamIndex,
		prevDTS:        initialPrevTimestamp,
		prevPTS:        initialPrevTimestamp,
	}
}

// Segment produces the output packets for one CutSegment.
func (c *AudioCutter) Segment(seg plan.CutSegment) ([]codec.Packet, error) {
	inTB := c.track.Stream.TimeBase

	var start int
	if rational.Le(seg.StartTime, rational.Zero) {
		start = 0
	} else {
		startPTS := rational.RoundDiv(seg.StartTime, inTB)
		start = searchInt64(c.track.PacketPTS, startPTS)
	}
	endPTS := rational.RoundDiv(seg.EndTime, inTB)
	end := searchInt64(c.track.PacketPTS, endPTS)

	r := clampRange(start, end, len(c.track.Packets))
	var out []codec.Packet
	for _, p := range c.track.Packets[r[0]:r[1]] {
		if !p.HasDTS || !p.HasPTS {
			continue
		}
		shift := rational.TruncDiv(rational.Sub(c.segmentStartInOutput, seg.StartTime), inTB)
		pkt := p
		pkt.StreamIndex = c.outStreamIndex
		pkt.PTS = p.PTS + shift
		pkt.DTS = p.DTS + shift

		if pkt.PTS <= c.prevPTS {
			log.Warn().Int64("pts", pkt.PTS).Msg("correcting for too low pts in audio passthru")
			pkt.PTS = c.prevPTS + 1
		}
		if pkt.DTS <= c.prevDTS {
			log.Warn().Int64("dts", pkt.DTS).Msg("correcting for too low dts in audio passthru")
			pkt.DTS = c.prevDTS + 1
		}
		c.prevPTS = pkt.PTS
		c.prevDTS = pkt.DTS
		out = append(out, pkt)
	}

	c.segmentStartInOutput = rational.Add(c.segmentStartInOutput, rational.Sub(seg.EndTime, seg.StartTime))
	return out, nil
}

// Finish flushes the cutter; passthrough audio never buffers, so this is empty.
func (c *AudioCutter) Finish() ([]codec.Packet, error) { return nil, nil }

func searchInt64(sorted []int64, target int64) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] >= target })
}

func clampRange(start, end, n int) [2]int {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return [2]int{start, end}
}
