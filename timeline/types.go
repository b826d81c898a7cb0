// Package timeline defines the Timeline document — the frame-precise
// editing plan the compiler emits — and the validator that enforces its
// structural invariants (spec §3 I1-I7).
package timeline

// Timeline is the sole output document of a compile. It is immutable once
// returned: nothing downstream of Compile mutates it.
type Timeline struct {
	Version string `json:"version"`
	Meta    Meta   `json:"meta"`
	Assets  Assets `json:"assets"`
	Tracks  []Track `json:"tracks"`
}

// Meta carries the video-wide frame grid the Timeline was laid out on.
type Meta struct {
	Fps         float64 `json:"fps"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	TotalFrames int     `json:"totalFrames"`
}

// Assets holds the keyed asset tables every clip dereferences by id.
// Iteration order over these maps is never observable to a correct
// consumer (spec §5) — only AssetID lookups are.
type Assets struct {
	Audio map[string]AudioAsset `json:"audio"`
	Bgm   map[string]BgmAsset   `json:"bgm,omitempty"`
}

// AudioAsset is one dialogue voice clip's backing file.
type AudioAsset struct {
	Src            string `json:"src"`
	DurationFrames int    `json:"durationFrames"`
}

// BgmAsset is one background-music file's backing asset. DurationFrames
// and LoudnessGainDb are both optional: the former comes from the
// (optional) BGM duration map, the latter from the (optional) BGM
// loudness-gain map.
type BgmAsset struct {
	Src            string   `json:"src"`
	DurationFrames *int     `json:"durationFrames,omitempty"`
	LoudnessGainDb *float64 `json:"loudnessGainDb,omitempty"`
}

// Track is the tagged union of the four track kinds. Tracks always
// appear in the order audio, subtitle, character, and (if the Script
// configured BGM and the planner emitted at least one clip) bgm.
type Track interface {
	TrackType() string
}

// AudioTrack carries one audio clip per dialogue block.
type AudioTrack struct {
	Type  string      `json:"type"`
	Clips []AudioClip `json:"clips"`
}

func (AudioTrack) TrackType() string { return "audio" }

// AudioClip plays a slice of an audio asset starting at Start for
// Duration frames.
type AudioClip struct {
	AssetID  string `json:"assetId"`
	Start    int    `json:"start"`
	Duration int    `json:"duration"`
}

// SubtitleTrack carries one subtitle clip per dialogue block, spanning the
// voice duration plus any trailing pause.
type SubtitleTrack struct {
	Type  string         `json:"type"`
	Clips []SubtitleClip `json:"clips"`
}

func (SubtitleTrack) TrackType() string { return "subtitle" }

// SubtitleClip displays Text for Duration frames starting at Start.
type SubtitleClip struct {
	Start    int    `json:"start"`
	Duration int    `json:"duration"`
	Text     string `json:"text"`
}

// CharacterTrack carries talking/idle character clips.
type CharacterTrack struct {
	Type  string          `json:"type"`
	Clips []CharacterClip `json:"clips"`
}

func (CharacterTrack) TrackType() string { return "character" }

// CharacterState flags whether the character is talking during this clip.
type CharacterState struct {
	IsTalking bool `json:"isTalking"`
}

// CharacterClip puts one character on screen in a talking or idle state.
type CharacterClip struct {
	Start       int            `json:"start"`
	Duration    int            `json:"duration"`
	CharacterID string         `json:"characterId"`
	State       CharacterState `json:"state"`
}

// BgmTrack carries the background-music clips the planner emitted, if
// any.
type BgmTrack struct {
	Type  string    `json:"type"`
	Clips []BgmClip `json:"clips"`
}

func (BgmTrack) TrackType() string { return "bgm" }

// BgmDucking configures automatic attenuation while a speaker talks, with
// frame-valued attack/release/merge-gap/min-hold, resolved from the
// BgmConfig's second-valued fields.
type BgmDucking struct {
	Enabled       bool     `json:"enabled"`
	DuckDeltaDb   *float64 `json:"duckDeltaDb,omitempty"`
	DuckVolumeDb  *float64 `json:"duckVolumeDb,omitempty"`
	DuckVolume    *float64 `json:"duckVolume,omitempty"`
	AttackFrames  int      `json:"attackFrames"`
	ReleaseFrames int      `json:"releaseFrames"`
	MergeGapFrames *int    `json:"mergeGapFrames,omitempty"`
	MinHoldFrames  *int    `json:"minHoldFrames,omitempty"`
}

// BgmClip is one span of background music (spec §4.3).
type BgmClip struct {
	AssetID              string      `json:"assetId"`
	Start                int         `json:"start"`
	Duration             int         `json:"duration"`
	AudioOffsetFrames    *int        `json:"audioOffsetFrames,omitempty"`
	VolumeDb             *float64    `json:"volumeDb,omitempty"`
	Volume               *float64    `json:"volume,omitempty"`
	MaxGainDb            *float64    `json:"maxGainDb,omitempty"`
	FadeInFrames         int         `json:"fadeInFrames"`
	FadeOutFrames        int         `json:"fadeOutFrames"`
	Loop                 bool        `json:"loop"`
	LoopStartFrames      *int        `json:"loopStartFrames,omitempty"`
	LoopEndFrames        *int        `json:"loopEndFrames,omitempty"`
	LoopCrossfadeFrames  *int        `json:"loopCrossfadeFrames,omitempty"`
	IdleBoostDb          *float64    `json:"idleBoostDb,omitempty"`
	Ducking              *BgmDucking `json:"ducking,omitempty"`
	TransitionInFrames   *int        `json:"transitionInFrames,omitempty"`
	TransitionOutFrames  *int        `json:"transitionOutFrames,omitempty"`
}

// AudioTrack, SubtitleTrack, and CharacterTrack are always present (even
// if empty); BgmTrack is appended only when the planner emitted clips.
func (t *Timeline) BgmTrack() (*BgmTrack, bool) {
	for _, tr := range t.Tracks {
		if bt, ok := tr.(BgmTrack); ok {
			return &bt, true
		}
	}
	return nil, false
}

// CharacterTrackClips returns the character track's clips, or nil if the
// timeline has no character track (should not happen for a validated
// Timeline, but envelope evaluation takes the track by value, not by
// assuming Compile's internal structure).
func (t *Timeline) CharacterTrackClips() []CharacterClip {
	for _, tr := range t.Tracks {
		if ct, ok := tr.(CharacterTrack); ok {
			return ct.Clips
		}
	}
	return nil
}
