// Package interval stabilizes the raw talking intervals recovered from a
// character track's isTalking clips into the sorted, pairwise-disjoint,
// minHold-ed "ducking intervals" the BGM envelope evaluates against (spec
// §4.5).
package interval

import "sort"

// Interval is a half-open frame span [Start, End).
type Interval struct {
	Start int
	End   int
}

// Stabilize sorts raw by Start, applies the minimum-hold extension, then
// folds adjacent intervals whose gap is within mergeGapFrames. maxEndFrame
// caps every interval's end (typically the Timeline's totalFrames).
func Stabilize(raw []Interval, mergeGapFrames, minHoldFrames, maxEndFrame int) []Interval {
	if len(raw) == 0 {
		return nil
	}

	sorted := make([]Interval, len(raw))
	copy(sorted, raw)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	held := make([]Interval, len(sorted))
	for i, iv := range sorted {
		end := iv.End
		if e := iv.Start + minHoldFrames; e > end {
			end = e
		}
		if end > maxEndFrame {
			end = maxEndFrame
		}
		held[i] = Interval{Start: iv.Start, End: end}
	}

	out := make([]Interval, 0, len(held))
	current := held[0]
	for _, iv := range held[1:] {
		if iv.Start <= current.End+mergeGapFrames {
			if iv.End > current.End {
				current.End = iv.End
			}
			continue
		}
		out = append(out, current)
		current = iv
	}
	out = append(out, current)

	return out
}
