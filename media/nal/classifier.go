// Package nal implements bitstream-level NAL unit classification for H.264 and
// H.265 video packets (spec §4.1). The demuxer's is_keyframe flag is over-inclusive —
// it also flags parameter-set-only packets and codec-private recovery points that are
// not safe cut entries — so the Media Index classifies every keyframe packet by its
// actual NAL content before accepting it as a GOP boundary.
package nal

import "encoding/binary"

// Codec selects which NAL unit type table and priority rule to apply.
type Codec int

const (
	H264 Codec = iota
	H265
)

// H.264 NAL unit types (ITU-T H.264 Table 7-1).
const (
	H264NonIDRSlice = 1
	H264IDRSlice    = 5
	H264SEI         = 6
	H264SPS         = 7
	H264PPS         = 8
	H264AUD         = 9
)

// H.265 NAL unit types (ITU-T H.265 Table 7-1).
const (
	H265RADLN = 6
	H265RADLR = 7
	H265RASLN = 8
	H265RASLR = 9
	H265BLAWLP    = 16
	H265BLAWRADL  = 17
	H265BLANLP    = 18
	H265IDRWRADL  = 19
	H265IDRNLP    = 20
	H265CRA       = 21
	H265VPS       = 32
	H265SPS       = 33
	H265PPS       = 34
	H265AUD       = 35
)

// minH264PacketLen/minH265PacketLen are the smallest packet sizes worth probing; the
// original implementation bails out on anything shorter rather than risk reading past
// the buffer.
const (
	minH264PacketLen = 5
	minH265PacketLen = 6
)

// ClassifyH264 returns the NAL unit type that should represent the whole packet, or
// (0, false) if no type could be determined. Multiple NAL units in one packet are
// resolved by priority: the first IDR (5) wins; else the first slice NAL in [1,4];
// else the first NAL unit encountered at all (parameter sets/SEI/AUD).
func ClassifyH264(payload []byte) (int, bool) {
	if len(payload) < minH264PacketLen {
		return 0, false
	}

	units, ok := lengthPrefixedUnits(payload)
	if ok {
		return classifyH264Types(h264TypesOf(units))
	}

	units = annexBUnits(payload)
	return classifyH264Types(h264TypesOf(units))
}

func h264TypesOf(units [][]byte) []int {
	types := make([]int, 0, len(units))
	for _, u := range units {
		if len(u) == 0 {
			continue
		}
		types = append(types, int(u[0]&0x1f))
	}
	return types
}

func classifyH264Types(types []int) (int, bool) {
	if len(types) == 0 {
		return 0, false
	}
	for _, t := range types {
		if t == H264IDRSlice {
			return H264IDRSlice, true
		}
	}
	for _, t := range types {
		if t >= H264NonIDRSlice && t <= 4 {
			return t, true
		}
	}
	return types[0], true
}

// ClassifyH265 returns the NAL unit type to represent the packet, using the priority
// rule: the first BLA/IDR type in [16,20] wins; else the first CRA (21); else the
// first picture NAL in [0,15]; else the first metadata NAL in [32,40]; else the
// first NAL unit of any type.
func ClassifyH265(payload []byte) (int, bool) {
	if len(payload) < minH265PacketLen {
		return 0, false
	}

	units, ok := lengthPrefixedUnits(payload)
	if ok {
		return classifyH265Types(h265TypesOf(units))
	}

	units = annexBUnits(payload)
	return classifyH265Types(h265TypesOf(units))
}

func h265TypesOf(units [][]byte) []int {
	types := make([]int, 0, len(units))
	for _, u := range units {
		if len(u) < 2 {
			continue
		}
		types = append(types, int((u[0]>>1)&0x3f))
	}
	return types
}

func classifyH265Types(types []int) (int, bool) {
	if len(types) == 0 {
		return 0, false
	}
	for _, t := range types {
		if t >= H265BLAWLP && t <= H265IDRNLP {
			return t, true
		}
	}
	for _, t := range types {
		if t == H265CRA {
			return t, true
		}
	}
	for _, t := range types {
		if t >= 0 && t <= 15 {
			return t, true
		}
	}
	for _, t := range types {
		if t >= H265VPS && t <= 40 {
			return t, true
		}
	}
	return types[0], true
}

// lengthPrefixedUnits attempts to parse payload as a sequence of [u32 big-endian
// length | body] records (MP4/AVCC/HVCC framing). It returns ok=false if the first
// length doesn't look like a plausible record length, which is how Annex-B start
// codes (0x00000001 or 0x000001, i.e. length 0 or 1) are told apart from real lengths.
func lengthPrefixedUnits(payload []byte) ([][]byte, bool) {
	if len(payload) < 4 {
		return nil, false
	}
	first := binary.BigEndian.Uint32(payload[:4])
	if first <= 4 || int(first) > len(payload)-4 {
		return nil, false
	}

	var units [][]byte
	i := 0
	for i < len(payload)-4 {
		n := binary.BigEndian.Uint32(payload[i : i+4])
		if n < 1 || int(n) > len(payload)-i-4 {
			break
		}
		units = append(units, payload[i+4:i+4+int(n)])
		i += 4 + int(n)
	}
	return units, len(units) > 0
}

// annexBUnits scans for Annex-B start codes (4-byte preferred, 3-byte fallback) and
// returns the bytes following each one up to (but not including) the next start code.
func annexBUnits(payload []byte) [][]byte {
	var starts []int
	var widths []int

	i := 0
	for i+2 < len(payload) {
		if payload[i] == 0 && payload[i+1] == 0 {
			if i+3 < len(payload) && payload[i+2] == 0 && payload[i+3] == 1 {
				starts = append(starts, i+4)
				widths = append(widths, 4)
				i += 4
				continue
			}
			if payload[i+2] == 1 {
				starts = append(starts, i+3)
				widths = append(widths, 3)
				i += 3
				continue
			}
		}
		i++
	}

	units := make([][]byte, 0, len(starts))
	for idx, s := range starts {
		if s >= len(payload) {
			continue
		}
		units = append(units, payload[s:])
		_ = widths[idx]
	}
	return units
}

// IsAnnexB reports whether data begins with an Annex-B start code, used to decide
// whether a remux bitstream filter needs to run to convert AVCC/HVCC extradata.
func IsAnnexB(data []byte) bool {
	if len(data) >= 4 && data[0] == 0 && data[1] == 0 && data[2] == 0 && data[3] == 1 {
		return true
	}
	return len(data) >= 3 && data[0] == 0 && data[1] == 0 && data[2] == 1
}

// IsSafeH264Keyframe reports whether an H.264 NAL type is safe to treat as a GOP
// boundary: IDR (5), SEI (6), SPS (7) or PPS (8). Unknown is assumed safe, matching
// the fallback in the original classifier (we can't prove it's unsafe).
func IsSafeH264Keyframe(nalType int, known bool) bool {
	if !known {
		return true
	}
	switch nalType {
	case H264IDRSlice, H264SEI, H264SPS, H264PPS:
		return true
	default:
		return false
	}
}

// IsSafeH265Keyframe reports whether an H.265 NAL type is safe to treat as a GOP
// boundary: BLA/IDR/CRA (16-21) or parameter sets (32-34). Unknown is assumed safe.
func IsSafeH265Keyframe(nalType int, known bool) bool {
	if !known {
		return true
	}
	switch {
	case nalType >= H265BLAWLP && nalType <= H265CRA:
		return true
	case nalType >= H265VPS && nalType <= H265PPS:
		return true
	default:
		return false
	}
}

// IsRASL reports whether nalType is a Random Access Skipped Leading picture type.
// RASL pictures reference frames before the associated CRA and become undecodable
// if that GOP is skipped.
func IsRASL(nalType int) bool {
	return nalType == H265RASLN || nalType == H265RASLR
}

// IsRADL reports whether nalType is a Random Access Decodable Leading picture type.
// Unlike RASL, RADL pictures don't reference pre-IRAP frames.
func IsRADL(nalType int) bool {
	return nalType == H265RADLN || nalType == H265RADLR
}

// IsLeadingPicture reports whether nalType is RASL or RADL, i.e. a picture displayed
// before its associated IRAP but decoded after it.
func IsLeadingPicture(nalType int) bool {
	return IsRASL(nalType) || IsRADL(nalType)
}

// Classify dispatches to ClassifyH264 or ClassifyH265 by codec.
func Classify(codec Codec, payload []byte) (int, bool) {
	if codec == H265 {
		return ClassifyH265(payload)
	}
	return ClassifyH264(payload)
}

// IsSafeKeyframe dispatches to IsSafeH264Keyframe or IsSafeH265Keyframe by codec.
func IsSafeKeyframe(codec Codec, nalType int, known bool) bool {
	if codec == H265 {
		return IsSafeH265Keyframe(nalType, known)
	}
	return IsSafeH264Keyframe(nalType, known)
}

// IsPictureNAL reports whether an H.265 NAL type is any picture type (0-21),
// used by the index's look-ahead pass to find the real frame after a
// parameter-set-only keyframe packet.
func IsPictureNAL(nalType int) bool {
	return nalType >= 0 && nalType <= H265CRA
}
