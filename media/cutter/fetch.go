package cutter

import (
	"container/heap"
	"io"

	"github.com/clipforge/cutter/media/codec"
	"github.com/clipforge/cutter/media/nal"
	"github.com/clipforge/cutter/rational"
)

// fetchPacket returns a pull-style iterator over the cutter's own demux handle,
// packets in [targetDTS, endDTS] (spec §4.4 "Demux gap-skipping"). A packet read
// past endDTS is stashed on the cutter for the next call's range to pick up.
func (c *VideoCutter) fetchPacket(targetDTS, endDTS int64) func() (codec.Packet, bool, error) {
	return func() (codec.Packet, bool, error) {
		for {
			if c.demuxSavedPacket != nil {
				saved := *c.demuxSavedPacket
				savedDTS := saved.DTS
				if !saved.HasDTS {
					savedDTS = initialLastDTSSentinel
				}
				if savedDTS >= targetDTS {
					if savedDTS <= endDTS {
						c.demuxSavedPacket = nil
						return saved, true, nil
					}
					// still beyond this call's range; leave it saved for later.
					return codec.Packet{}, false, nil
				}
				c.demuxSavedPacket = nil
			}

			pkt, err := c.demuxer.ReadPacket()
			if err == io.EOF {
				return codec.Packet{}, false, nil
			}
			if err != nil {
				return codec.Packet{}, false, err
			}

			inDTS := pkt.DTS
			if !pkt.HasDTS {
				inDTS = initialLastDTSSentinel
			}

			if !pkt.HasPTS || inDTS < targetDTS {
				diff := float64(targetDTS-inDTS) * c.inTimeBase.Float64()
				if inDTS > 0 && diff > demuxGapSkipSeconds {
					t := targetDTS - int64(demuxSeekBackSeconds/c.inTimeBase.Float64())
					if err := c.demuxer.SeekNear(c.videoStreamIndex, t); err == nil {
						c.demuxSavedPacket = nil
					}
				}
				continue
			}

			if inDTS > endDTS {
				saved := pkt
				c.demuxSavedPacket = &saved
				return codec.Packet{}, false, nil
			}

			return pkt, true, nil
		}
	}
}

// videoFrameIter drives a decode-and-release loop over one GOP fetch range,
// restoring PTS order via frameHeap (spec §4.4 "Decoder frame-release protocol").
type videoFrameIter struct {
	c              *VideoCutter
	packetNext     func() (codec.Packet, bool, error)
	endTime        rational.Rat
	gopStartDTS    int64
	collectPackets *[]codec.Packet
	currentDTS     int64

	phase   int // 0 = pulling packets, 1 = draining after final decoder flush
	flushed bool
	done    bool
}

// fetchFrame implements spec §4.4's frame-release generator: decode packets from
// [start, gopEndDTS] (start chosen per the continuity/priming rules), releasing
// frames from the PTS heap once they're provably safe.
func (c *VideoCutter) fetchFrame(gopStartDTS, gopEndDTS int64, endTime rational.Rat, primingDTS *int64, collectPackets *[]codec.Packet) *videoFrameIter {
	continuous := c.haveLastFetchEndDTS && (c.lastFetchEndDTS == gopEndDTS || c.lastFetchEndDTS == gopStartDTS)
	c.lastFetchEndDTS, c.haveLastFetchEndDTS = gopEndDTS, true

	startDTS := gopStartDTS
	if !continuous && primingDTS != nil {
		startDTS = *primingDTS
	}

	if c.frameBufferGOPDTS != gopStartDTS && !continuous {
		c.frameBuffer = nil
		c.frameBufferGOPDTS = gopStartDTS
		_ = c.decoder.FlushBuffers()
	}

	if startDTS < gopStartDTS && !continuous {
		_ = c.decoder.FlushBuffers()
		c.frameBuffer = nil
		if err := c.demuxer.SeekNear(c.videoStreamIndex, startDTS); err == nil {
			c.demuxSavedPacket = nil
		}
	}

	return &videoFrameIter{
		c:              c,
		packetNext:     c.fetchPacket(startDTS, gopEndDTS),
		endTime:        endTime,
		gopStartDTS:    gopStartDTS,
		collectPackets: collectPackets,
		currentDTS:     gopStartDTS,
	}
}

func frameTimeBase(c *VideoCutter, f codec.Frame) rational.Rat {
	if rational.Cmp(f.TimeBase, rational.Zero) == 0 {
		return c.inTimeBase
	}
	return f.TimeBase
}

func (it *videoFrameIter) next() (codec.Frame, bool, error) {
	if it.done {
		return codec.Frame{}, false, nil
	}
	c := it.c

	if it.phase == 0 {
		for {
			if len(c.frameBuffer) > bufferedFramesCount {
				lowest := c.frameBuffer.peek()
				if lowest.pts <= it.currentDTS {
					ftb := frameTimeBase(c, lowest.frame)
					if rational.Lt(rational.Mul(rational.FromInt(lowest.pts), ftb), it.endTime) {
						heap.Pop(&c.frameBuffer)
						return lowest.frame, true, nil
					}
					it.done = true
					return codec.Frame{}, false, nil
				}
				// not yet safe to release; fall through to pull another packet
			}

			pkt, ok, err := it.packetNext()
			if err != nil {
				return codec.Frame{}, false, err
			}
			if !ok {
				it.phase = 1
				break
			}

			if pkt.HasDTS {
				it.currentDTS = pkt.DTS
			}

			if it.collectPackets != nil {
				packetDTS := it.currentDTS
				shouldCollect := packetDTS >= it.gopStartDTS
				if shouldCollect && c.codecName == codec.HEVC {
					nalType, _ := nal.ClassifyH265(pkt.Data)
					if nal.IsLeadingPicture(nalType) {
						shouldCollect = false
					}
				}
				if shouldCollect {
					cp := pkt
					cp.Data = append([]byte(nil), pkt.Data...)
					*it.collectPackets = append(*it.collectPackets, cp)
				}
			}

			frames, derr := c.decoder.Decode(&pkt)
			if derr != nil {
				return codec.Frame{}, false, derr
			}
			for _, f := range frames {
				heap.Push(&c.frameBuffer, frameHeapItem{pts: f.PTS, frame: f})
			}
		}
	}

	if it.phase == 1 && !it.flushed {
		frames, _ := c.decoder.Decode(nil) // flush artifacts are tolerated, matching the source's bare except
		for _, f := range frames {
			heap.Push(&c.frameBuffer, frameHeapItem{pts: f.PTS, frame: f})
		}
		it.flushed = true
	}

	if len(c.frameBuffer) > 0 {
		lowest := c.frameBuffer.peek()
		ftb := frameTimeBase(c, lowest.frame)
		if lowest.pts != codec.NoTimestamp && rational.Lt(rational.Mul(rational.FromInt(lowest.pts), ftb), it.endTime) {
			heap.Pop(&c.frameBuffer)
			return lowest.frame, true, nil
		}
	}
	it.done = true
	return codec.Frame{}, false, nil
}
