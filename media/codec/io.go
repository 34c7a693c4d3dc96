package codec

import "io"

// Demuxer reads packets from a source container. Implementations decide internally
// how to handle the two input handles the Media Index opens (spec §4.2 step 1); each
// Demuxer value here models exactly one handle.
type Demuxer interface {
	// Streams returns the enumerated streams, stable for the Demuxer's lifetime.
	Streams() ([]Stream, error)

	// StartTime and Duration are container-level, in AVTimeBase units. Duration may
	// be 0 if the container doesn't carry one; callers fall back to computing it
	// incrementally from packet pts+duration.
	StartTime() int64
	Duration() int64

	// ReadPacket returns the next packet in file order, or io.EOF at end of stream.
	ReadPacket() (Packet, error)

	// SeekNear seeks the given stream close to targetDTS (stream time-base), used for
	// the demux gap-skip (spec §4.4 "Demux gap-skipping") and continuity breaks.
	SeekNear(streamIndex int, targetDTS int64) error

	io.Closer
}

// Decoder turns packets of one video stream into frames. Frames may emerge out of
// PTS order; the Video Cutter's PTS heap (media/cutter) restores presentation order.
type Decoder interface {
	// Decode feeds one packet (nil to flush) and returns zero or more frames it was
	// able to produce. A decoder may buffer internally and emit frames on a later call.
	Decode(pkt *Packet) ([]Frame, error)

	// FlushBuffers discards any buffered reference state, used when the cutter breaks
	// continuity (spec §4.4 "Continuity across segments").
	FlushBuffers() error

	io.Closer
}

// Encoder turns frames into packets for one output video stream, created lazily on
// first use per spec §4.4 "Encoder initialization".
type Encoder interface {
	// Encode feeds one frame (nil to flush) and returns zero or more packets.
	Encode(frame *Frame) ([]Packet, error)

	io.Closer
}

// Muxer writes packets to an output container.
type Muxer interface {
	// AddStreamFromTemplate creates an output stream that copies a source stream's
	// parameters verbatim (the copy/remux path).
	AddStreamFromTemplate(src Stream) (Stream, error)

	// AddStream creates an output stream for a freshly-encoded codec.
	AddStream(codecName string, opts EncoderOptions) (Stream, error)

	// SetMetadata sets a container-level metadata key (e.g. "ENCODED_BY").
	SetMetadata(key, value string)

	// SetCodecTag overrides a just-added stream's container-specific codec FourCC
	// (spec §4.4 "Codec-tag normalization"), used after AddStreamFromTemplate copies
	// the source tag verbatim.
	SetCodecTag(streamIndex int, tag uint32) error

	// FormatName reports the short container/format name (e.g. "mp4", "ogg",
	// "matroska"), used for the Cut Driver's audio-only and attachment handling
	// (spec §4.7 "Output container setup").
	FormatName() string

	WritePacket(streamIndex int, pkt Packet) error

	// WriteTrailer finalizes the container; Close should be safe to call after.
	WriteTrailer() error

	io.Closer
}

// MuxerOpener opens a fresh output container at path, used once per output file
// (spec §4.7 "per output file").
type MuxerOpener func(path string) (Muxer, error)

// BitstreamFilter rewrites packet payloads between bitstream representations (e.g.
// AVCC-length-prefixed to Annex-B) without touching timestamps.
type BitstreamFilter interface {
	Filter(pkt Packet) (Packet, error)
}

// BitstreamFilterFactory.New resolves a filter kind to an implementation, returning the
// null filter unmodified for FilterNull. A concrete binding supplies the non-null
// filters; this engine only calls through the interface.
type BitstreamFilterFactory interface {
	New(kind BitstreamFilterKind, extradata []byte) (BitstreamFilter, error)
}

// DecoderFactory creates the decoder bound to one video stream, used once per fresh
// demux handle the Video Cutter opens for itself (spec §4.4 "Shared resources").
type DecoderFactory interface {
	New(stream Stream) (Decoder, error)
}

// EncoderFactory creates a lazily-initialized encoder for one output video stream
// (spec §4.4 "Encoder initialization"). The Video Cutter calls it at the start of a
// recode or hybrid CRA segment when no encoder is open; width/height/pix_fmt come
// from the source video stream, not from a decoded frame.
type EncoderFactory interface {
	New(codecName string, opts EncoderOptions) (Encoder, error)
}
