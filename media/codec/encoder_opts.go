package codec

import "strings"

// QualityPreset selects a CRF value per spec §4.4 "Encoder initialization".
type QualityPreset int

const (
	QualityLow QualityPreset = iota
	QualityNormal
	QualityHigh
	QualityIndistinguishable
	QualityNearLossless
	QualityLossless
)

var baseCRF = map[QualityPreset]int{
	QualityLow:              23,
	QualityNormal:           18,
	QualityHigh:             14,
	QualityIndistinguishable: 8,
	QualityNearLossless:     3,
	QualityLossless:         0,
}

// CRFFor returns the CRF integer for preset/codec, per spec §4.4: hevc/av1/vp9 get
// +4 added to the base table, and LOSSLESS always forces 0 regardless of codec.
func CRFFor(preset QualityPreset, codec VideoCodec) int {
	if preset == QualityLossless {
		return 0
	}
	crf := baseCRF[preset]
	switch codec {
	case HEVC, AV1, VP9:
		crf += 4
	}
	return crf
}

// NormalizeProfile maps known profile-name substrings onto an encoder profile string,
// per spec §4.4 "Profile is inferred from the input codec context and normalized".
// Real profile strings carry extra qualifiers ("Constrained Baseline", "High 4:4:4
// Predictive"), so the match is substring containment against the raw name, not an
// exact match against a stripped one. Profiles that don't map cleanly onto an encoder
// profile string (Rext, Simple) are cleared so the encoder falls back to its own
// default rather than rejecting an unknown value.
func NormalizeProfile(profile string) string {
	switch {
	case strings.Contains(profile, "Baseline"):
		return "baseline"
	case strings.Contains(profile, "High 4:4:4"):
		return "high444"
	case strings.Contains(profile, "Rext"), strings.Contains(profile, "Simple"):
		return ""
	}
	return strings.ToLower(profile)
}

// x264 always pins an explicit SPS id to avoid id collisions across recoded segments
// sharing one output stream (spec §4.4 "Codec-specific options").
const X264ParamsDefault = "sps-id=3"

// HEVCParams builds the x265-params string per spec §4.4: best-effort parse of the
// source's "options: ..." extradata tail, plus repeat-headers/info always appended,
// and lossless=1 appended only for a lossless target. sourceOptionsTail is
// space-separated (x265's own log convention, see ParseHEVCExtradataOptionsTail);
// x265-params itself is colon-delimited, so each token's embedded colons are escaped
// to commas and a bare flag with no "=" is completed to "flag=1" before rejoining.
func HEVCParams(sourceOptionsTail string, lossless bool, logLevel string) string {
	var parts []string
	for _, tok := range strings.Fields(sourceOptionsTail) {
		tok = strings.ReplaceAll(tok, ":", ",")
		if !strings.Contains(tok, "=") {
			tok += "=1"
		}
		parts = append(parts, tok)
	}
	parts = append(parts, "repeat-headers=1", "info=0")
	if logLevel != "" {
		parts = append(parts, "log-level="+logLevel)
	}
	if lossless {
		parts = append(parts, "lossless=1")
	}
	return strings.Join(parts, ":")
}

// ParseHEVCExtradataOptionsTail extracts the "options: ..." tail the source encoder
// may have embedded in HEVC extradata (x265's own convention of recording its command
// line), used as the seed for HEVCParams. Returns "" if no such tail is present.
func ParseHEVCExtradataOptionsTail(extradata []byte) string {
	const marker = "options: "
	s := string(extradata)
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	tail := s[idx+len(marker):]
	// extradata is binary; stop at the first NUL or non-printable run.
	for i := 0; i < len(tail); i++ {
		c := tail[i]
		if c < 0x20 || c > 0x7e {
			return strings.TrimSpace(tail[:i])
		}
	}
	return strings.TrimSpace(tail)
}
