package index

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/rational"
)

// stubDemuxer is a hand-written codec.Demuxer fixture: Open() opens two independent
// handles (primary + dedicated audio), so each call to the DemuxerOpener below must
// hand back a value with its own read cursor rather than a shared one.
type stubDemuxer struct {
	streams   []codec.Stream
	packets   []codec.Packet
	pos       int
	startTime int64
	duration  int64
}

func (d *stubDemuxer) Streams() ([]codec.Stream, error) { return d.streams, nil }
func (d *stubDemuxer) StartTime() int64                 { return d.startTime }
func (d *stubDemuxer) Duration() int64                  { return d.duration }
func (d *stubDemuxer) SeekNear(int, int64) error         { return nil }
func (d *stubDemuxer) Close() error                      { return nil }

func (d *stubDemuxer) ReadPacket() (codec.Packet, error) {
	if d.pos >= len(d.packets) {
		return codec.Packet{}, io.EOF
	}
	pkt := d.packets[d.pos]
	d.pos++
	return pkt, nil
}

// lengthPrefixedIDR encodes one AVCC-style length-prefixed H.264 IDR (nal_unit_type 5)
// NAL, wide enough that lengthPrefixedUnits' first-record sanity check doesn't mistake
// it for an Annex-B start code.
func lengthPrefixedIDR() []byte {
	body := []byte{5, 0xAA, 0xBB, 0xCC, 0xDD}
	buf := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(buf, uint32(len(body)))
	copy(buf[4:], body)
	return buf
}

func newOpener(streams []codec.Stream, packets []codec.Packet, duration int64) DemuxerOpener {
	return func() (codec.Demuxer, error) {
		return &stubDemuxer{
			streams:  streams,
			packets:  append([]codec.Packet(nil), packets...),
			duration: duration,
		}, nil
	}
}

func TestOpen_BuildsGOPTableAndFrameTimesForH264(t *testing.T) {
	videoStream := codec.Stream{Index: 0, Type: codec.StreamVideo, Codec: string(codec.H264), TimeBase: rational.New(1, 1000)}
	idr := lengthPrefixedIDR()

	packets := []codec.Packet{
		{StreamIndex: 0, PTS: 0, DTS: 0, HasPTS: true, HasDTS: true, IsKeyframe: true, Data: idr},
		{StreamIndex: 0, PTS: 3000, DTS: 3000, HasPTS: true, HasDTS: true, IsKeyframe: false},
		{StreamIndex: 0, PTS: 9000, DTS: 9000, HasPTS: true, HasDTS: true, IsKeyframe: true, Data: idr},
		{StreamIndex: 0, PTS: 12000, DTS: 12000, HasPTS: true, HasDTS: true, IsKeyframe: false},
	}

	open := newOpener([]codec.Stream{videoStream}, packets, 15_000_000)
	idx, err := Open(open)
	require.NoError(t, err)

	require.True(t, idx.HasVideo)
	require.Equal(t, 2, idx.GOPs.Len())
	assert.Equal(t, []int64{0, 9000}, idx.GOPs.StartDTS)
	assert.Equal(t, []int64{3000, 12000}, idx.GOPs.EndDTS)
	assert.Equal(t, []int{5, 5}, idx.GOPs.StartNALType)
	assert.Equal(t, []bool{false, false}, idx.GOPs.HasRASL)
	assert.Equal(t, []int64{codec.NoTimestamp, codec.NoTimestamp}, idx.GOPs.LeadingEndDTS)

	require.Len(t, idx.GOPs.StartPTS, 2)
	assert.InDelta(t, 0.0, idx.GOPs.StartPTS[0].Float64(), 1e-9)
	assert.InDelta(t, 9.0, idx.GOPs.StartPTS[1].Float64(), 1e-9)

	require.Len(t, idx.VideoFrameTimes, 4)
	assert.InDelta(t, 0.0, idx.VideoFrameTimes[0].Float64(), 1e-9)
	assert.InDelta(t, 3.0, idx.VideoFrameTimes[1].Float64(), 1e-9)
	assert.InDelta(t, 9.0, idx.VideoFrameTimes[2].Float64(), 1e-9)
	assert.InDelta(t, 12.0, idx.VideoFrameTimes[3].Float64(), 1e-9)

	assert.InDelta(t, 15.0, idx.Duration.Float64(), 1e-9)
	assert.Empty(t, idx.AudioTracks)
}

func TestOpen_FirstKeyframeAlwaysAcceptedRegardlessOfNALType(t *testing.T) {
	videoStream := codec.Stream{Index: 0, Type: codec.StreamVideo, Codec: string(codec.H264), TimeBase: rational.New(1, 1000)}
	// A lone non-IDR slice (type 1) would fail IsSafeH264Keyframe for any later
	// keyframe, but the very first keyframe is always accepted unconditionally.
	nonIDRSliceOnly := []byte{0, 0, 0, 5, 1, 0xAA, 0xBB, 0xCC, 0xDD}

	packets := []codec.Packet{
		{StreamIndex: 0, PTS: 0, DTS: 0, HasPTS: true, HasDTS: true, IsKeyframe: true, Data: nonIDRSliceOnly},
	}

	open := newOpener([]codec.Stream{videoStream}, packets, 1_000_000)
	idx, err := Open(open)
	require.NoError(t, err)
	require.Equal(t, 1, idx.GOPs.Len())
	assert.Equal(t, int64(0), idx.GOPs.StartDTS[0])
}

func TestOpen_NoVideoStreamLeavesGOPTableEmpty(t *testing.T) {
	audioStream := codec.Stream{Index: 0, Type: codec.StreamAudio, Codec: "aac", TimeBase: rational.New(1, 48000)}
	packets := []codec.Packet{
		{StreamIndex: 0, PTS: 0, HasPTS: true},
	}

	open := newOpener([]codec.Stream{audioStream}, packets, 1_000_000)
	idx, err := Open(open)
	require.NoError(t, err)
	assert.False(t, idx.HasVideo)
	assert.Equal(t, 0, idx.GOPs.Len())
	require.Len(t, idx.AudioTracks, 1)
	assert.Len(t, idx.AudioTracks[0].Packets, 1)
}

func TestMediaIndex_NextFrameTime_PicksNearerNeighbor(t *testing.T) {
	idx := &MediaIndex{
		StartTime:       rational.Zero,
		Duration:        rational.New(20, 1),
		VideoFrameTimes: []rational.Rat{rational.New(0, 1), rational.New(5, 1), rational.New(10, 1)},
	}

	assert.InDelta(t, 5.0, idx.NextFrameTime(rational.New(6, 1)).Float64(), 1e-9)
	assert.InDelta(t, 5.0, idx.NextFrameTime(rational.New(4, 1)).Float64(), 1e-9)
	assert.InDelta(t, 0.0, idx.NextFrameTime(rational.New(-1, 1)).Float64(), 1e-9)
	assert.InDelta(t, 20.0, idx.NextFrameTime(rational.New(100, 1)).Float64(), 1e-9)
}
