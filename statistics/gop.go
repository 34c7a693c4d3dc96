package statistics

import (
	"fmt"

	"github.com/clipforge/cutter/media/index"
	"github.com/clipforge/cutter/rational"
)

// GopSummary reports GOP-duration statistics over a built Media Index, in seconds.
type GopSummary struct {
	Count       int
	MeanSeconds float64
	MinSeconds  float64
	MaxSeconds  float64
}

// Summarize walks idx.GOPs once and computes its duration statistics from StartDTS
// deltas in the video stream's time base.
func Summarize(idx *index.MediaIndex) GopSummary {
	n := idx.GOPs.Len()
	if n < 2 {
		return GopSummary{Count: n}
	}

	var sum, min, max float64
	first := true
	for i := 1; i < n; i++ {
		ticks := idx.GOPs.StartDTS[i] - idx.GOPs.StartDTS[i-1]
		seconds := rational.FromTicks(ticks, idx.VideoStream.TimeBase).Float64()
		sum += seconds
		if first || seconds < min {
			min = seconds
		}
		if first || seconds > max {
			max = seconds
		}
		first = false
	}

	return GopSummary{
		Count:       n,
		MeanSeconds: sum / float64(n-1),
		MinSeconds:  min,
		MaxSeconds:  max,
	}
}

func (g GopSummary) String() string {
	return fmt.Sprintf("gops=%d mean=%.2fs min=%.2fs max=%.2fs", g.Count, g.MeanSeconds, g.MinSeconds, g.MaxSeconds)
}
