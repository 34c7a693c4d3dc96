package statistics

import (
	"fmt"

	"github.com/clipforge/cutter/media/plan"
)

// SegmentSummary counts how a plan's segments were disposed.
type SegmentSummary struct {
	Copied  int
	Recoded int
}

// SummarizeSegments tallies a plan's segments by disposition.
func SummarizeSegments(segments []plan.CutSegment) SegmentSummary {
	var s SegmentSummary
	for _, seg := range segments {
		switch seg.Disposition {
		case plan.Copy:
			s.Copied++
		case plan.Recode:
			s.Recoded++
		}
	}
	return s
}

func (s SegmentSummary) String() string {
	return fmt.Sprintf("segments copied=%d recoded=%d", s.Copied, s.Recoded)
}
