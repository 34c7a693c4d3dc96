// Package codec defines the boundary between the cutting engine and the underlying
// demuxer/decoder/encoder library (spec §6). That library is explicitly out of scope
// (spec §1 "Out of scope"); this package only describes the shape of the collaborator
// the rest of the engine is written against, so it can be unit-tested against mocks
// (mock_io.go) until a concrete binding is plugged in.
package codec

import "github.com/clipforge/cutter/rational"

// StreamType classifies a stream the way the underlying container does.
type StreamType int

const (
	StreamVideo StreamType = iota
	StreamAudio
	StreamSubtitle
	StreamAttachment
)

func (t StreamType) String() string {
	switch t {
	case StreamVideo:
		return "video"
	case StreamAudio:
		return "audio"
	case StreamSubtitle:
		return "subtitle"
	case StreamAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// VideoCodec names the codecs the Video Cutter has specific handling for.
type VideoCodec string

const (
	H264 VideoCodec = "h264"
	HEVC VideoCodec = "hevc"
	VP9  VideoCodec = "vp9"
	AV1  VideoCodec = "av1"
	MPEG4 VideoCodec = "mpeg4"
)

// BitstreamFilterKind names the bitstream filters the library must provide (spec §6).
type BitstreamFilterKind string

const (
	FilterNull             BitstreamFilterKind = "null"
	FilterH264MP4ToAnnexB  BitstreamFilterKind = "h264_mp4toannexb"
	FilterHEVCMP4ToAnnexB  BitstreamFilterKind = "hevc_mp4toannexb"
	FilterDumpExtra        BitstreamFilterKind = "dump_extra"
)

// Stream describes one stream enumerated by the demuxer.
type Stream struct {
	Index     int
	Type      StreamType
	Codec     string // codec name, e.g. "h264", "aac", "mov_text"
	CodecTag  uint32 // container-specific codec FourCC/tag, when present
	TimeBase  rational.Rat
	Extradata []byte // AVCDecoderConfigurationRecord / HVCC / raw extradata

	Width, Height int
	PixFmt        string
	Profile       string       // codec profile as the decoder reports it, e.g. "High", "Main 10"
	SAR           rational.Rat // sample aspect ratio, 1/1 if square
	BitRate       int64
	BitRateTol    int64
	FrameRate     rational.Rat // average frame rate as the demuxer reports it
}

// Packet is one demuxed or to-be-muxed compressed access unit.
type Packet struct {
	StreamIndex int
	PTS, DTS    int64 // in the stream's time_base; meaningful only when HasPTS/HasDTS is set
	HasPTS      bool
	HasDTS      bool
	Duration    int64
	IsKeyframe  bool
	Data        []byte
}

// NoTimestamp marks a PTS/DTS field as absent (sentinel used alongside HasPTS/HasDTS
// for code that carries raw int64s outside the Packet struct, e.g. GOP table arrays).
const NoTimestamp = int64(-1)

// Frame is a single decoded video frame, passed between decoder and encoder.
type Frame struct {
	PTS      int64 // in TimeBase
	TimeBase rational.Rat
	Width    int
	Height   int
	PixFmt   string
	Data     []byte // opaque to this engine; owned by the concrete decoder/encoder
}

// EncoderOptions configures a lazily-created encoder (spec §4.4 "Encoder initialization").
type EncoderOptions struct {
	Codec         VideoCodec
	Width, Height int
	PixFmt        string
	SAR           rational.Rat
	TimeBase      rational.Rat
	BitRate       int64
	BitRateTol    int64

	Profile string // normalized per NormalizeProfile
	CRF     int
	Lossless bool

	// X264Params/X265Params are passed through to the respective codec's
	// "-params"-style option string, e.g. "sps-id=3" or "repeat-headers=1:info=0".
	X264Params string
	X265Params string

	LogLevel string
}
