// Package envelope computes the BGM volume envelope: a pure per-frame gain
// function over a BgmClip, a local frame offset into it, and the
// pre-stabilized ducking intervals active on the timeline (spec §4.7).
//
// It never reads the clock or any mutable state — the same (clip,
// localFrame, duckIntervals) always yields the same gain.
package envelope

import (
	"math"

	"github.com/shahulog/firstvideo/interval"
	"github.com/shahulog/firstvideo/timeline"
	"github.com/shahulog/firstvideo/units"
)

// LoopSegment narrows loopseg.Segment to the four fields the envelope needs
// to compute the per-segment crossfade multiplier, avoiding an import of
// package loopseg purely for its result type.
type LoopSegment struct {
	ClipOffset    int
	Duration      int
	FadeInFrames  int
	FadeOutFrames int
}

// Volume returns the clip's gain at localFrame, given the clip's own
// parameters, the optional loudness gain of its backing asset, the
// stabilized ducking intervals active on the full timeline, and — if the
// clip loops — the loop segment localFrame falls within.
func Volume(clip timeline.BgmClip, localFrame int, loudnessGainDb *float64, duckIntervals []interval.Interval, seg *LoopSegment) float64 {
	baseGain := resolveBaseGain(clip)
	if loudnessGainDb != nil {
		baseGain *= units.DbToGain(*loudnessGainDb)
	}

	idleBoostDb := DefaultIdleBoostDb
	if clip.IdleBoostDb != nil {
		idleBoostDb = *clip.IdleBoostDb
	}
	idleGain := baseGain * units.DbToGain(idleBoostDb)

	talkGain := resolveTalkGain(clip, baseGain)

	maxGainDb := DefaultMaxGainDb
	if clip.MaxGainDb != nil {
		maxGainDb = *clip.MaxGainDb
	}
	maxGain := units.DbToGain(units.ClampDb(maxGainDb))

	globalFrame := clip.Start + localFrame
	g := selectGain(globalFrame, idleGain, talkGain, clip, duckIntervals)

	fadeInMul := rampIn(localFrame, clip.FadeInFrames)
	fadeOutMul := rampOut(localFrame, clip.Duration, clip.FadeOutFrames)
	transitionInMul := 1.0
	if clip.TransitionInFrames != nil {
		transitionInMul = rampIn(localFrame, *clip.TransitionInFrames)
	}
	transitionOutMul := 1.0
	if clip.TransitionOutFrames != nil {
		transitionOutMul = rampOut(localFrame, clip.Duration, *clip.TransitionOutFrames)
	}
	crossfadeMul := 1.0
	if seg != nil {
		crossfadeMul = segmentCrossfadeMul(localFrame, *seg)
	}

	volume := g * fadeInMul * fadeOutMul * transitionInMul * transitionOutMul * crossfadeMul
	return units.Clamp(volume, 0, maxGain)
}

// Default constants mirrored from package bgmconfig (spec §4.3). The
// envelope only needs these as a last-resort fallback: the BGM planner
// bakes the resolved defaults into every emitted clip, so in practice a
// Timeline built by this repository's own compiler always has them set.
const (
	DefaultBaseDb      = -12.0
	DefaultMaxGainDb   = -3.0
	DefaultIdleBoostDb = 3.0
	DefaultDuckDeltaDb = -8.0
)

func resolveBaseGain(clip timeline.BgmClip) float64 {
	if clip.VolumeDb != nil {
		return units.DbToGain(*clip.VolumeDb)
	}
	if clip.Volume != nil {
		return units.Clamp(*clip.Volume, 0, 1)
	}
	return units.DbToGain(DefaultBaseDb)
}

func resolveTalkGain(clip timeline.BgmClip, baseGain float64) float64 {
	if clip.Ducking == nil || !clip.Ducking.Enabled {
		return baseGain
	}
	d := clip.Ducking
	switch {
	case d.DuckDeltaDb != nil:
		return baseGain * units.DbToGain(units.Clamp(*d.DuckDeltaDb, -60, 0))
	case d.DuckVolumeDb != nil:
		return units.DbToGain(units.ClampDb(*d.DuckVolumeDb))
	case d.DuckVolume != nil:
		return baseGain * units.Clamp(*d.DuckVolume, 0, 1)
	default:
		return baseGain * units.DbToGain(DefaultDuckDeltaDb)
	}
}

func selectGain(globalFrame int, idleGain, talkGain float64, clip timeline.BgmClip, duckIntervals []interval.Interval) float64 {
	for _, iv := range duckIntervals {
		if globalFrame >= iv.Start && globalFrame < iv.End {
			return talkGain
		}
	}

	a := duckingAttackFrames(clip.Ducking)
	r := duckingReleaseFrames(clip.Ducking)

	dStart, hasStart := nearestUpcomingStart(globalFrame, duckIntervals)
	dEnd, hasEnd := nearestPastEnd(globalFrame, duckIntervals)

	if hasStart && dStart <= a {
		return idleGain - (idleGain-talkGain)*(1-float64(dStart)/float64(a))
	}
	if hasEnd && dEnd < r && !(hasStart && dStart <= a) {
		return talkGain + (idleGain-talkGain)*(float64(dEnd)/float64(r))
	}
	return idleGain
}

// duckingAttackFrames/duckingReleaseFrames floor attack/release at 1 frame
// and tolerate a nil Ducking block, keeping the division in selectGain
// safe regardless.
func duckingAttackFrames(d *timeline.BgmDucking) int {
	if d == nil {
		return 1
	}
	return max(1, d.AttackFrames)
}

func duckingReleaseFrames(d *timeline.BgmDucking) int {
	if d == nil {
		return 1
	}
	return max(1, d.ReleaseFrames)
}

func nearestUpcomingStart(globalFrame int, duckIntervals []interval.Interval) (int, bool) {
	best := math.MaxInt
	found := false
	for _, iv := range duckIntervals {
		if iv.Start > globalFrame {
			d := iv.Start - globalFrame
			if d < best {
				best = d
				found = true
			}
		}
	}
	return best, found
}

func nearestPastEnd(globalFrame int, duckIntervals []interval.Interval) (int, bool) {
	best := math.MaxInt
	found := false
	for _, iv := range duckIntervals {
		if iv.End <= globalFrame {
			d := globalFrame - iv.End
			if d < best {
				best = d
				found = true
			}
		}
	}
	return best, found
}

func rampIn(localFrame, rampFrames int) float64 {
	if rampFrames <= 0 {
		return 1
	}
	if localFrame < rampFrames {
		return units.Clamp(float64(localFrame)/float64(rampFrames), 0, 1)
	}
	return 1
}

func rampOut(localFrame, clipDuration, rampFrames int) float64 {
	if rampFrames <= 0 {
		return 1
	}
	fromEnd := clipDuration - localFrame
	if fromEnd < rampFrames {
		return units.Clamp(float64(fromEnd)/float64(rampFrames), 0, 1)
	}
	return 1
}

func segmentCrossfadeMul(localFrame int, seg LoopSegment) float64 {
	within := localFrame - seg.ClipOffset
	return rampIn(within, seg.FadeInFrames) * rampOut(within, seg.Duration, seg.FadeOutFrames)
}
