package cutter

import (
	"github.com/rs/zerolog/log"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

// SubtitleCutter implements the Subtitle Cutter (spec §4.6): a forward cursor over
// the track's packets (no binary search, since subtitle tracks are small and already
// monotonic), keeping a subtitle whole whenever its start falls inside the segment.
type SubtitleCutter struct {
	track          *index.SubtitleTrack
	outStreamIndex int

	currentPacketI       int
	segmentStartInOutput rational.Rat
	prevPTS              int64
}

// NewSubtitleCutter constructs a cutter for one subtitle track, writing to
// outStreamIndex on the output muxer.
func NewSubtitleCutter(track *index.SubtitleTrack, outStreamIndex int) *SubtitleCutter {
	return &SubtitleCutter{
		track:          track,
		outStreamIndex: outStreamIndex,
		prevPTS:        initialPrevTimestamp,
	}
}

// Segment produces the output packets for one CutSegment. A subtitle packet is kept
// in full (not clipped at the segment's end) whenever its PTS falls in
// [segmentStartPTS, segmentEndPTS) -- the original's deliberately simple rule: a
// subtitle that starts just before a cut but runs past it is still dropped whole if
// its start isn't in range, and one that starts in range is kept whole even if its
// display would run past the segment boundary.
func (c *SubtitleCutter) Segment(seg plan.CutSegment) ([]codec.Packet, error) {
	inTB := c.track.Stream.TimeBase
	segStartPTS := rational.TruncDiv(seg.StartTime, inTB)
	segEndPTS := rational.TruncDiv(seg.EndTime, inTB)

	var out []codec.Packet
	for ; c.currentPacketI < len(c.track.Packets); c.currentPacketI++ {
		p := c.track.Packets[c.currentPacketI]
		if !p.HasPTS {
			continue
		}
		if p.PTS < segStartPTS {
			continue
		}
		if p.PTS >= segEndPTS {
			break
		}

		shift := rational.TruncDiv(c.segmentStartInOutput, inTB)
		pkt := p
		pkt.StreamIndex = c.outStreamIndex
		pkt.PTS = p.PTS - segStartPTS + shift

		if pkt.PTS < c.prevPTS {
			log.Warn().Int64("pts", pkt.PTS).Msg("correcting for too low pts in subtitle passthru")
			pkt.PTS = c.prevPTS + 1
		}
		pkt.DTS = pkt.PTS
		pkt.HasDTS = true
		c.prevPTS = pkt.PTS
		out = append(out, pkt)
	}

	c.segmentStartInOutput = rational.Add(c.segmentStartInOutput, rational.Sub(seg.EndTime, seg.StartTime))
	return out, nil
}

// Finish flushes the cutter; subtitles never buffer beyond the forward cursor.
func (c *SubtitleCutter) Finish() ([]codec.Packet, error) { return nil, nil }
