package nal

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lengthPrefixed(nalTypeByte ...byte) []byte {
	var out []byte
	for _, b := range nalTypeByte {
		body := []byte{b, 0xAA, 0xBB, 0xCC, 0xDD}
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
		out = append(out, lenBuf[:]...)
		out = append(out, body...)
	}
	return out
}

// lengthPrefixedH265 builds length-prefixed units whose first byte encodes an H.265
// nal_unit_type in bits [6:1] (forbidden_zero_bit | type<<1 | layer_id_high), matching
// h265TypesOf's (u[0]>>1)&0x3f decode.
func lengthPrefixedH265(nalTypes ...int) []byte {
	bytes := make([]byte, len(nalTypes))
	for i, t := range nalTypes {
		bytes[i] = byte(t << 1)
	}
	return lengthPrefixed(bytes...)
}

func annexB(startCode4 bool, nalTypeByte ...byte) []byte {
	var out []byte
	for _, b := range nalTypeByte {
		if startCode4 {
			out = append(out, 0, 0, 0, 1)
		} else {
			out = append(out, 0, 0, 1)
		}
		out = append(out, b, 0xAA, 0xBB)
	}
	return out
}

func TestClassifyH264_LengthPrefixed_PrefersIDR(t *testing.T) {
	payload := lengthPrefixed(H264SPS, H264NonIDRSlice, H264IDRSlice)
	typ, ok := ClassifyH264(payload)
	require.True(t, ok)
	assert.Equal(t, H264IDRSlice, typ)
}

func TestClassifyH264_LengthPrefixed_FallsBackToSlice(t *testing.T) {
	payload := lengthPrefixed(H264SPS, H264NonIDRSlice)
	typ, ok := ClassifyH264(payload)
	require.True(t, ok)
	assert.Equal(t, H264NonIDRSlice, typ)
}

func TestClassifyH264_AnnexB_FourByteStartCode(t *testing.T) {
	payload := annexB(true, H264IDRSlice)
	typ, ok := ClassifyH264(payload)
	require.True(t, ok)
	assert.Equal(t, H264IDRSlice, typ)
}

func TestClassifyH264_AnnexB_ThreeByteStartCode(t *testing.T) {
	payload := annexB(false, H264IDRSlice)
	typ, ok := ClassifyH264(payload)
	require.True(t, ok)
	assert.Equal(t, H264IDRSlice, typ)
}

func TestClassifyH264_TooShort(t *testing.T) {
	_, ok := ClassifyH264([]byte{0, 0, 1})
	assert.False(t, ok)
}

func TestClassifyH265_PrefersPictureType(t *testing.T) {
	payload := lengthPrefixedH265(H265VPS, H265SPS, H265IDRWRADL)
	typ, ok := ClassifyH265(payload)
	require.True(t, ok)
	assert.Equal(t, H265IDRWRADL, typ)
}

func TestIsAnnexB(t *testing.T) {
	assert.True(t, IsAnnexB([]byte{0, 0, 0, 1, 0x67}))
	assert.True(t, IsAnnexB([]byte{0, 0, 1, 0x67}))
	assert.False(t, IsAnnexB([]byte{0, 0, 0, 2, 0x67}))
}

func TestIsSafeH264Keyframe(t *testing.T) {
	assert.True(t, IsSafeH264Keyframe(H264IDRSlice, true))
	assert.True(t, IsSafeH264Keyframe(H264SPS, true))
	assert.False(t, IsSafeH264Keyframe(H264NonIDRSlice, true))
	assert.True(t, IsSafeH264Keyframe(0, false))
}

func TestIsSafeH265Keyframe(t *testing.T) {
	assert.True(t, IsSafeH265Keyframe(H265CRA, true))
	assert.True(t, IsSafeH265Keyframe(H265VPS, true))
	assert.False(t, IsSafeH265Keyframe(H265RASLR, true))
}

func TestRASLRADLClassification(t *testing.T) {
	assert.True(t, IsRASL(H265RASLN))
	assert.True(t, IsRASL(H265RASLR))
	assert.True(t, IsRADL(H265RADLN))
	assert.True(t, IsLeadingPicture(H265RASLN))
	assert.True(t, IsLeadingPicture(H265RADLR))
	assert.False(t, IsLeadingPicture(H265CRA))
}

func TestClassifyDispatch(t *testing.T) {
	h264Payload := lengthPrefixed(H264IDRSlice)
	typ, ok := Classify(H264, h264Payload)
	require.True(t, ok)
	assert.Equal(t, H264IDRSlice, typ)

	h265Payload := lengthPrefixedH265(H265CRA)
	typ, ok = Classify(H265, h265Payload)
	require.True(t, ok)
	assert.Equal(t, H265CRA, typ)
}
