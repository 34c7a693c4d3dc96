package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAudioOnlyFormat(t *testing.T) {
	assert.True(t, IsAudioOnlyFormat("mp3"))
	assert.True(t, IsAudioOnlyFormat(".OGG"))
	assert.False(t, IsAudioOnlyFormat("mp4"))
}

func TestValidVideoCodecsForContainer(t *testing.T) {
	assert.ElementsMatch(t, []VideoCodec{VideoH264, VideoHEVC, VideoAV1}, ValidVideoCodecsForContainer("mp4"))
	assert.ElementsMatch(t, []VideoCodec{VideoVP9, VideoAV1}, ValidVideoCodecsForContainer(".webm"))
	assert.ElementsMatch(t, []VideoCodec{VideoH264, VideoHEVC}, ValidVideoCodecsForContainer("unknown"))
}

func TestDefaultAudioCodecForContainer(t *testing.T) {
	assert.Equal(t, AudioOpus, DefaultAudioCodecForContainer("webm"))
	assert.Equal(t, AudioAAC, DefaultAudioCodecForContainer("mp4"))
	assert.Equal(t, AudioAAC, DefaultAudioCodecForContainer("unknown"))
}

func TestCompatibleAudioCodecForFormat(t *testing.T) {
	assert.Equal(t, AudioPCMS16LE, CompatibleAudioCodecForFormat(AudioAAC, "wav"))
	assert.Equal(t, AudioAAC, CompatibleAudioCodecForFormat(AudioAAC, "mp4"))
}

func TestValidateVideoContainerCompat(t *testing.T) {
	assert.NotEmpty(t, ValidateVideoContainerCompat("h264", "ogg"))
	assert.NotEmpty(t, ValidateVideoContainerCompat("hevc", "mp3"))
	assert.Empty(t, ValidateVideoContainerCompat("h264", "mp4"))
	assert.Empty(t, ValidateVideoContainerCompat("h265", "mkv"))
}

func TestValidateAudioTrackLimits(t *testing.T) {
	assert.Empty(t, ValidateAudioTrackLimits("ogg", 1))
	assert.NotEmpty(t, ValidateAudioTrackLimits("ogg", 2))
	assert.Empty(t, ValidateAudioTrackLimits("mkv", 3))
}
