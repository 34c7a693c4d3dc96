package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRFFor(t *testing.T) {
	assert.Equal(t, 23, CRFFor(QualityLow, H264))
	assert.Equal(t, 18+4, CRFFor(QualityNormal, HEVC))
	assert.Equal(t, 14+4, CRFFor(QualityHigh, AV1))
	assert.Equal(t, 0, CRFFor(QualityLossless, HEVC))
}

func TestNormalizeProfile(t *testing.T) {
	assert.Equal(t, "baseline", NormalizeProfile("Baseline"))
	assert.Equal(t, "baseline", NormalizeProfile("Constrained Baseline"))
	assert.Equal(t, "high444", NormalizeProfile("High 4:4:4"))
	assert.Equal(t, "high444", NormalizeProfile("High 4:4:4 Predictive"))
	assert.Equal(t, "", NormalizeProfile("Rext"))
	assert.Equal(t, "", NormalizeProfile("Simple"))
	assert.Equal(t, "high", NormalizeProfile("High"))
}

func TestParseHEVCExtradataOptionsTail(t *testing.T) {
	extradata := []byte("x265 (build 165) - options: crf=20 bframes=4\x00\x00garbage")
	got := ParseHEVCExtradataOptionsTail(extradata)
	assert.Equal(t, "crf=20 bframes=4", got)
}

func TestParseHEVCExtradataOptionsTail_NoMarker(t *testing.T) {
	assert.Equal(t, "", ParseHEVCExtradataOptionsTail([]byte("no marker here")))
}

func TestHEVCParams(t *testing.T) {
	got := HEVCParams("crf=20 bframes=4", false, "")
	assert.Equal(t, "crf=20:bframes=4:repeat-headers=1:info=0", got)

	got = HEVCParams("", true, "error")
	assert.Equal(t, "repeat-headers=1:info=0:log-level=error:lossless=1", got)
}

func TestHEVCParams_EscapesEmbeddedColonsAndCompletesBareFlags(t *testing.T) {
	got := HEVCParams("no-scenecut masking-strength=1:2", false, "")
	assert.Equal(t, "no-scenecut=1:masking-strength=1,2:repeat-headers=1:info=0", got)
}
