package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/rational"
)

func sec(f float64) rational.Rat {
	const scale = 1_000_000
	return rational.New(int64(f*scale), scale)
}

// videoIndex builds a MediaIndex with one GOP per entry in gopStartsSec, each GOP
// running until the next entry's start (or duration for the last one).
func videoIndex(gopStartsSec []float64, durationSec float64) *index.MediaIndex {
	idx := &index.MediaIndex{
		HasVideo:  true,
		StartTime: rational.Zero,
		Duration:  sec(durationSec),
	}
	for i, s := range gopStartsSec {
		start := int64(s * 1000)
		var end int64
		if i+1 < len(gopStartsSec) {
			end = int64(gopStartsSec[i+1] * 1000)
		} else {
			end = int64(durationSec * 1000)
		}
		idx.GOPs.StartDTS = append(idx.GOPs.StartDTS, start)
		idx.GOPs.EndDTS = append(idx.GOPs.EndDTS, end)
		idx.GOPs.StartPTS = append(idx.GOPs.StartPTS, sec(s))
		idx.GOPs.StartNALType = append(idx.GOPs.StartNALType, 5)
		idx.GOPs.HasRASL = append(idx.GOPs.HasRASL, false)
		idx.GOPs.LeadingEndDTS = append(idx.GOPs.LeadingEndDTS, -1)
	}
	return idx
}

func TestMakeCutSegments_IntervalCoversWholeGOP_Copy(t *testing.T) {
	idx := videoIndex([]float64{0, 2, 4}, 6)
	// Extend past the GOP table's sentinel end so every GOP is fully covered and
	// none straddles the kept interval's boundary.
	intervals := []Interval{{Start: sec(-1), End: sec(100)}}

	segs := MakeCutSegments(idx, intervals, false)
	require.Len(t, segs, 3)
	for _, s := range segs {
		assert.Equal(t, Copy, s.Disposition)
	}
}

func TestMakeCutSegments_PartialGOPOverlap_Recode(t *testing.T) {
	idx := videoIndex([]float64{0, 2, 4}, 6)
	// keep only [1, 3): straddles the boundary between GOP0 and GOP1.
	intervals := []Interval{{Start: sec(1), End: sec(3)}}

	segs := MakeCutSegments(idx, intervals, false)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		assert.Equal(t, Recode, s.Disposition)
	}
}

func TestMakeCutSegments_KeyframeModeForcesCopy(t *testing.T) {
	idx := videoIndex([]float64{0, 2, 4}, 6)
	intervals := []Interval{{Start: sec(1), End: sec(3)}}

	segs := MakeCutSegments(idx, intervals, true)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		assert.Equal(t, Copy, s.Disposition)
	}
}

func TestMakeCutSegments_NoOverlapEmitsNothing(t *testing.T) {
	idx := videoIndex([]float64{0, 2, 4}, 6)
	intervals := []Interval{{Start: sec(100), End: sec(110)}}

	segs := MakeCutSegments(idx, intervals, false)
	assert.Empty(t, segs)
}

func TestForceRecode(t *testing.T) {
	segs := []CutSegment{{Disposition: Copy}, {Disposition: Copy}}
	out := ForceRecode(segs)
	for _, s := range out {
		assert.Equal(t, Recode, s.Disposition)
	}
}

func TestValidateSegments(t *testing.T) {
	ok := []CutSegment{{StartTime: sec(0), EndTime: sec(1)}}
	assert.NoError(t, ValidateSegments(ok))

	bad := []CutSegment{{StartTime: sec(1), EndTime: sec(1)}}
	assert.Error(t, ValidateSegments(bad))
}

func TestAdjustIntervals_SnapsNearFileBoundaries(t *testing.T) {
	intervals := []Interval{{Start: sec(0), End: sec(10)}}
	adjusted := AdjustIntervals(intervals, rational.Zero, sec(10))
	require.Len(t, adjusted, 1)
	assert.Equal(t, 0, rational.Cmp(adjusted[0].Start, sec(-10)))
	assert.Equal(t, 0, rational.Cmp(adjusted[0].End, sec(20)))
}

func TestAdjustIntervals_RebasesOntoStartTime(t *testing.T) {
	intervals := []Interval{{Start: sec(5), End: sec(7)}}
	adjusted := AdjustIntervals(intervals, sec(100), sec(1000))
	require.Len(t, adjusted, 1)
	assert.Equal(t, 0, rational.Cmp(adjusted[0].Start, sec(105)))
	assert.Equal(t, 0, rational.Cmp(adjusted[0].End, sec(107)))
}

func TestMakeCutSegments_AudioOnlySlicesIntoSubNineteenSecondPieces(t *testing.T) {
	idx := &index.MediaIndex{HasVideo: false}
	track := &index.AudioTrack{
		PacketTimes: []rational.Rat{sec(0), sec(50)},
	}
	idx.AudioTracks = []*index.AudioTrack{track}

	intervals := []Interval{{Start: sec(0), End: sec(50)}}
	segs := MakeCutSegments(idx, intervals, false)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		assert.Equal(t, Copy, s.Disposition)
		dur := rational.Sub(s.EndTime, s.StartTime).Float64()
		assert.LessOrEqual(t, dur, 19.0001)
	}
}
