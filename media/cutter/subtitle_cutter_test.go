package cutter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

func subtitleTrack(ticks []int64) *index.SubtitleTrack {
	track := &index.SubtitleTrack{
		Stream: codec.Stream{TimeBase: rational.New(1, 1000)},
	}
	for _, t := range ticks {
		track.Packets = append(track.Packets, codec.Packet{PTS: t, HasPTS: true})
	}
	return track
}

func TestSubtitleCutter_Segment_KeepsWholeCueAtSegmentStart(t *testing.T) {
	track := subtitleTrack([]int64{1000, 2500, 3000})
	c := NewSubtitleCutter(track, 2)

	out, err := c.Segment(plan.CutSegment{StartTime: sec(1), EndTime: sec(3)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(0), out[0].PTS)
	assert.Equal(t, int64(1500), out[1].PTS)
	assert.Equal(t, 2, out[0].StreamIndex)
}

func TestSubtitleCutter_Segment_CursorAdvancesAcrossSegments(t *testing.T) {
	track := subtitleTrack([]int64{1000, 2500, 3000})
	c := NewSubtitleCutter(track, 0)

	_, err := c.Segment(plan.CutSegment{StartTime: sec(1), EndTime: sec(3)})
	require.NoError(t, err)

	out, err := c.Segment(plan.CutSegment{StartTime: sec(3), EndTime: sec(4)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2000), out[0].PTS)
	assert.Equal(t, int64(2000), out[0].DTS)
	assert.True(t, out[0].HasDTS)
}

func TestSubtitleCutter_Finish_ReturnsNothing(t *testing.T) {
	c := NewSubtitleCutter(subtitleTrack(nil), 0)
	out, err := c.Finish()
	assert.NoError(t, err)
	assert.Nil(t, out)
}
