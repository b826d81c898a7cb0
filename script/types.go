// Package script defines the Script document — the human-authored intent
// description the compiler consumes — and its structural validator.
//
// Script is immutable once constructed: nothing in this package or its
// callers mutates a *Script after UnmarshalScript returns it.
package script

// Script is the top-level document produced by a Script author (or the
// scenario-migration shim, out of scope here).
type Script struct {
	Version string         `json:"version" validate:"required,eq=0.1"`
	Video   VideoConfig    `json:"video" validate:"required"`
	Cast    map[string]Cast `json:"cast"`
	Scenes  []Scene        `json:"scenes" validate:"required,min=1,dive"`
}

// VideoConfig carries the video-wide frame grid and the optional
// video-level BGM configuration that scenes may override.
type VideoConfig struct {
	Fps             float64       `json:"fps" validate:"required,gt=0"`
	Width           int           `json:"width" validate:"required,gt=0"`
	Height          int           `json:"height" validate:"required,gt=0"`
	DefaultPauseSec float64       `json:"defaultPauseSec" validate:"gte=0"`
	Bgm             *BgmConfig    `json:"bgm,omitempty"`
	AudioProfile    *AudioProfile `json:"audioProfile,omitempty"`
}

// AudioProfile describes loudness targets handed to the (out of scope)
// media-probe collaborator; the compiler passes it through untouched.
type AudioProfile struct {
	BgmTargetLufs float64 `json:"bgmTargetLufs"`
	BgmTargetLra  float64 `json:"bgmTargetLra"`
	TruePeakDb    float64 `json:"truePeakDb"`
}

// Cast describes one speaker's voice and optional asset layout.
type Cast struct {
	Voice  Voice        `json:"voice" validate:"required"`
	Assets *CastAssets  `json:"assets,omitempty"`
}

// Voice names the (external, out of scope) voice synthesis engine and the
// speaker id within it.
type Voice struct {
	Engine    string `json:"engine" validate:"required"`
	SpeakerID int    `json:"speakerId" validate:"gte=0"`
}

// CastAssets holds filesystem layout hints for a cast member's assets.
type CastAssets struct {
	BaseDir string `json:"baseDir,omitempty"`
}

// Scene is an ordered subdivision of the Script; insertion order in
// Scenes is significant and determines on-screen order.
type Scene struct {
	ID     string         `json:"id" validate:"required"`
	Style  *SceneStyle    `json:"style,omitempty"`
	Blocks []Block        `json:"blocks" validate:"required,min=1"`
}

// SceneStyle carries rendering hints (background, subtitle style) the
// compiler passes through untouched, plus the scene's BGM override.
type SceneStyle struct {
	Bg            string             `json:"bg,omitempty"`
	SubtitleStyle string             `json:"subtitleStyle,omitempty"`
	Bgm           *SceneBgmOverride  `json:"bgm,omitempty"`
}

// Block is the tagged union of block variants. Today only DialogueBlock
// is defined; UnknownBlock captures anything else so the compiler's
// dispatch can turn it into a fatal UnknownBlockType error instead of
// silently dropping it (spec §9 design note: exhaustive dispatch must
// fail loudly on an unhandled variant).
type Block interface {
	BlockType() string
}

// DialogueBlock is the only currently defined Block variant: one line of
// narrated dialogue bound to a pre-generated voice clip.
type DialogueBlock struct {
	Type      string   `json:"type" validate:"required,eq=dialogue"`
	Speaker   string   `json:"speaker" validate:"required"`
	Text      string   `json:"text" validate:"required"`
	PauseSec  *float64 `json:"pauseSec,omitempty"`
	ID        string   `json:"id,omitempty"`
	AudioKey  string   `json:"audioKey,omitempty"`
	FileName  string   `json:"fileName,omitempty"`
}

// BlockType implements Block.
func (d DialogueBlock) BlockType() string { return "dialogue" }

// UnknownBlock represents a block whose "type" this compiler does not
// recognize. It is never valid to compile — the driver turns it into a
// fatal UnknownBlockType error — but it must unmarshal successfully so
// that Script parsing itself does not conflate "structurally odd JSON"
// with "a new block variant we haven't wired a handler for yet".
type UnknownBlock struct {
	Type string
}

// BlockType implements Block.
func (u UnknownBlock) BlockType() string { return u.Type }

// BgmConfig is the video-level (or preset/default) background-music
// configuration. All fields beyond Src are optional and participate in
// the resolver's ascending-precedence merge (see package bgmconfig).
type BgmConfig struct {
	Src              string          `json:"src,omitempty"`
	Preset           string          `json:"preset,omitempty" validate:"omitempty,oneof=talk calm hype none"`
	VolumeDb         *float64        `json:"volumeDb,omitempty"`
	Volume           *float64        `json:"volume,omitempty"`
	MaxGainDb        *float64        `json:"maxGainDb,omitempty"`
	FadeInSec        *float64        `json:"fadeInSec,omitempty"`
	FadeOutSec       *float64        `json:"fadeOutSec,omitempty"`
	Loop             *bool           `json:"loop,omitempty"`
	LoopStartSec     *float64        `json:"loopStartSec,omitempty"`
	LoopEndSec       *float64        `json:"loopEndSec,omitempty"`
	LoopCrossfadeSec *float64        `json:"loopCrossfadeSec,omitempty"`
	IdleBoostDb      *float64        `json:"idleBoostDb,omitempty"`
	Ducking          *DuckingConfig  `json:"ducking,omitempty"`
}

// SceneBgmOverride has the same optional shape as BgmConfig plus the
// crossfade duration used only when a scene's src differs from the
// previous scene's.
type SceneBgmOverride struct {
	BgmConfig
	TransitionSec *float64 `json:"transitionSec,omitempty"`
}

// DuckingConfig configures automatic BGM attenuation while a speaker
// talks. Every field is optional; bgmconfig.Resolve fills unset fields
// from the DEFAULT_* constants in package bgmconfig at compile time.
type DuckingConfig struct {
	Enabled     *bool    `json:"enabled,omitempty"`
	DuckDeltaDb *float64 `json:"duckDeltaDb,omitempty"`
	DuckVolumeDb *float64 `json:"duckVolumeDb,omitempty"`
	DuckVolume  *float64 `json:"duckVolume,omitempty"`
	AttackSec   *float64 `json:"attackSec,omitempty"`
	ReleaseSec  *float64 `json:"releaseSec,omitempty"`
	MergeGapSec *float64 `json:"mergeGapSec,omitempty"`
	MinHoldSec  *float64 `json:"minHoldSec,omitempty"`
}
