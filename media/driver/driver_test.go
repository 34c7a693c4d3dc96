package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/plan"
	"github.com/clipforge/cutter/rational"
)

func sec(f float64) rational.Rat {
	return rational.New(int64(f*1e6), 1e6)
}

func TestPlanOutputFiles_SingleFileUsesLastIntervalEndAsBoundary(t *testing.T) {
	adjusted := []plan.Interval{{Start: sec(0), End: sec(10)}, {Start: sec(20), End: sec(30)}}
	files, err := planOutputFiles("out.mp4", adjusted, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "out.mp4", files[0].path)
	assert.Equal(t, 0, rational.Cmp(sec(30), files[0].boundaryEnd))
}

func TestPlanOutputFiles_SingleFileEmptyIntervalsUsesZeroBoundary(t *testing.T) {
	files, err := planOutputFiles("out.mp4", nil, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 0, rational.Cmp(rational.Zero, files[0].boundaryEnd))
}

func TestPlanOutputFiles_SegmentModeRequiresAtLeastOneInterval(t *testing.T) {
	_, err := planOutputFiles("out_#.mp4", nil, true)
	assert.Error(t, err)
}

func TestPlanOutputFiles_SegmentModePadsIndexToWidthOfCount(t *testing.T) {
	adjusted := make([]plan.Interval, 11)
	for i := range adjusted {
		adjusted[i] = plan.Interval{Start: sec(float64(i)), End: sec(float64(i) + 1)}
	}
	files, err := planOutputFiles("clip_#.mp4", adjusted, true)
	require.NoError(t, err)
	require.Len(t, files, 11)
	assert.Equal(t, "clip_01.mp4", files[0].path)
	assert.Equal(t, "clip_11.mp4", files[10].path)
	assert.Equal(t, 0, rational.Cmp(sec(2), files[1].boundaryEnd))
}

func TestSubstituteSegmentIndex_ReplacesHashMarker(t *testing.T) {
	assert.Equal(t, "clip_003.mp4", substituteSegmentIndex("clip_#.mp4", "003"))
}

func TestSubstituteSegmentIndex_UsesLastHashWhenMultiplePresent(t *testing.T) {
	assert.Equal(t, "a_#_clip_2.mp4", substituteSegmentIndex("a_#_clip_#.mp4", "2"))
}

func TestSubstituteSegmentIndex_InsertsBeforeExtensionWhenNoHash(t *testing.T) {
	assert.Equal(t, "clip2.mp4", substituteSegmentIndex("clip.mp4", "2"))
}

func TestSubstituteSegmentIndex_AppendsWhenNeitherHashNorDot(t *testing.T) {
	assert.Equal(t, "clip2", substituteSegmentIndex("clip", "2"))
}

func TestSanitizeDTS_ClearsLargeNegativeDTS(t *testing.T) {
	pkt := &codec.Packet{HasDTS: true, DTS: -1_000_000}
	sanitizeDTS(pkt, false)
	assert.False(t, pkt.HasDTS)
}

func TestSanitizeDTS_LeavesModerateDTSAlone(t *testing.T) {
	pkt := &codec.Packet{HasDTS: true, DTS: -500_000}
	sanitizeDTS(pkt, false)
	assert.True(t, pkt.HasDTS)
	assert.Equal(t, int64(-500_000), pkt.DTS)
}

func TestSanitizeDTS_LargePositiveDTSKeptButLogged(t *testing.T) {
	pkt := &codec.Packet{HasDTS: true, DTS: 2_000_000_000_000, PTS: 2_000_000_000_000}
	sanitizeDTS(pkt, true)
	assert.True(t, pkt.HasDTS)
	assert.Equal(t, int64(2_000_000_000_000), pkt.DTS)
}

func TestSanitizeDTS_NoOpWhenDTSAbsent(t *testing.T) {
	pkt := &codec.Packet{HasDTS: false, DTS: -5_000_000}
	sanitizeDTS(pkt, false)
	assert.False(t, pkt.HasDTS)
}

func TestSupportsAttachments(t *testing.T) {
	assert.True(t, supportsAttachments("matroska,webm"))
	assert.True(t, supportsAttachments("webm"))
	assert.False(t, supportsAttachments("mp4"))
	assert.False(t, supportsAttachments("mov,mp4,m4a"))
}
