// Package manifest models the three external, pre-computed side tables the
// compiler consumes but never produces: the voice-synthesis audio
// manifest, the BGM duration map, and the BGM loudness-gain map (spec §3,
// §6). All three are sequential, fully-realized inputs handed in before
// compile runs — this package never observes partial or streaming data.
package manifest

import "math"

// Entry is one pre-generated voice clip in the audio manifest, produced by
// the (out of scope) voice synthesis collaborator.
type Entry struct {
	AudioKey          string  `json:"audioKey"`
	SpeakerID         int     `json:"speakerId"`
	Text              string  `json:"text"`
	AudioSrc          string  `json:"audioSrc"`
	DurationInSeconds float64 `json:"durationInSeconds"`
	FileName          string  `json:"fileName,omitempty"`
}

// DurationFrames converts the entry's measured duration to an integer
// frame count using the same ceiling rule as every other second-to-frame
// conversion in this module (spec §3).
func (e Entry) DurationFrames(fps float64) int {
	if fps <= 0 || e.DurationInSeconds <= 0 {
		return 0
	}
	return int(math.Ceil(e.DurationInSeconds * fps))
}

// Manifest is the ordered sequence of voice clips produced for one Script.
// Binding into it must never depend on slice order (spec P5): the Binder
// below looks entries up by key, not by position.
type Manifest []Entry

// DurationFrames maps a BGM asset id to a probed, known-good frame count.
// A missing entry disables looping for clips referencing that asset
// (spec §7 MissingBgmDuration) — it is not fatal.
type DurationFrames map[string]int

// LoudnessGainDb maps a BGM asset id to a loudness-normalization offset in
// decibels, clamped by the media-probe collaborator to [-12, +12]. A
// missing entry is treated as 0 dB (spec §6).
type LoudnessGainDb map[string]float64

// GainDb returns the loudness gain for an asset, defaulting to 0 dB when
// the map has no entry.
func (m LoudnessGainDb) GainDb(assetID string) (float64, bool) {
	db, ok := m[assetID]
	return db, ok
}
