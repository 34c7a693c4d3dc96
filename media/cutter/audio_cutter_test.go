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

func sec(f float64) rational.Rat {
	const scale = 1_000_000
	return rational.New(int64(f*scale), scale)
}

func millisTrack(ticks []int64) *index.AudioTrack {
	track := &index.AudioTrack{
		Stream:    codec.Stream{TimeBase: rational.New(1, 1000)},
		PacketPTS: ticks,
	}
	for _, t := range ticks {
		track.Packets = append(track.Packets, codec.Packet{
			PTS: t, DTS: t, HasPTS: true, HasDTS: true,
		})
	}
	return track
}

func TestAudioCutter_Segment_SelectsRangeAndShiftsTimestamps(t *testing.T) {
	track := millisTrack([]int64{0, 1000, 2000, 3000, 4000, 5000})
	c := NewAudioCutter(track, 3)

	out, err := c.Segment(plan.CutSegment{StartTime: sec(1), EndTime: sec(3)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(0), out[0].PTS)
	assert.Equal(t, int64(1000), out[1].PTS)
	for _, p := range out {
		assert.Equal(t, 3, p.StreamIndex)
	}
}

func TestAudioCutter_Segment_SucceedingSegmentContinuesOutputClock(t *testing.T) {
	track := millisTrack([]int64{0, 1000, 2000, 3000, 4000, 5000})
	c := NewAudioCutter(track, 0)

	_, err := c.Segment(plan.CutSegment{StartTime: sec(1), EndTime: sec(3)})
	require.NoError(t, err)

	out, err := c.Segment(plan.CutSegment{StartTime: sec(3), EndTime: sec(5)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	// output clock continues from where the first segment left off (2s in).
	assert.Equal(t, int64(2000), out[0].PTS)
	assert.Equal(t, int64(3000), out[1].PTS)
}

func TestAudioCutter_Finish_ReturnsNothing(t *testing.T) {
	c := NewAudioCutter(millisTrack(nil), 0)
	out, err := c.Finish()
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestSearchInt64(t *testing.T) {
	sorted := []int64{0, 10, 20, 30}
	assert.Equal(t, 0, searchInt64(sorted, 0))
	assert.Equal(t, 2, searchInt64(sorted, 20))
	assert.Equal(t, 4, searchInt64(sorted, 31))
}

func TestClampRange(t *testing.T) {
	assert.Equal(t, [2]int{0, 5}, clampRange(-1, 10, 5))
	assert.Equal(t, [2]int{2, 2}, clampRange(5, 1, 10))
}
