package cutter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipforge/cutter/media/codec"
)

func TestNormalizeCodecTag_MP4H264MpegTSTagRewrittenToAVC1(t *testing.T) {
	tag, ok := NormalizeCodecTag("mp4", string(codec.H264), mpegTSH264Tag)
	assert.True(t, ok)
	assert.Equal(t, avc1Tag, tag)
}

func TestNormalizeCodecTag_MP4HEVCAlwaysRewrittenToHEV1(t *testing.T) {
	tag, ok := NormalizeCodecTag("mp4", string(codec.HEVC), 0)
	assert.True(t, ok)
	assert.Equal(t, hev1Tag, tag)
}

func TestNormalizeCodecTag_MatroskaHEVCNumericTagRewrittenToHVC1(t *testing.T) {
	tag, ok := NormalizeCodecTag("matroska", string(codec.HEVC), mpegTSHEVCTagNumeric)
	assert.True(t, ok)
	assert.Equal(t, hvc1Tag, tag)
}

func TestNormalizeCodecTag_UnrelatedCombinationUnchanged(t *testing.T) {
	_, ok := NormalizeCodecTag("avi", string(codec.H264), 0x12345678)
	assert.False(t, ok)
}

func TestFourCCStringPacksLittleEndian(t *testing.T) {
	assert.Equal(t, uint32(0x31637661), fourCCString("avc1"))
}
