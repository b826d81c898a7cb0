// Package bgmconfig resolves a scene's effective background-music settings
// by merging global defaults, a named preset, the video-level BgmConfig,
// and the scene-level override, in ascending precedence. Only the nested
// ducking object is deep-merged; every other field is a last-writer-wins
// override (spec §4.2 "Resolved BGM config").
package bgmconfig

import (
	"fmt"

	"github.com/shahulog/firstvideo/script"
)

// Default constants shared by the resolver and the volume envelope (spec
// §4.3).
const (
	DefaultBaseDb          = -12.0
	DefaultMaxGainDb       = -3.0
	DefaultIdleBoostDb     = 3.0
	DefaultDuckDeltaDb     = -8.0
	DefaultAttackSec       = 0.10
	DefaultReleaseSec      = 0.25
	DefaultMergeGapSec     = 0.35
	DefaultMinHoldSec      = 0.60
	DefaultLoopCrossfadeSec = 0.25
	DefaultFadeInSec       = 1.0
	DefaultFadeOutSec      = 1.0
	DefaultTransitionSec   = 1.0
)

// Ducking is the fully-resolved ducking sub-config. Enabled false means no
// ducking interval is ever active for the clip.
type Ducking struct {
	Enabled      bool
	DuckDeltaDb  *float64
	DuckVolumeDb *float64
	DuckVolume   *float64
	AttackSec    float64
	ReleaseSec   float64
	MergeGapSec  float64
	MinHoldSec   float64
}

// Resolved is the fully-merged BGM configuration for one scene. Fields
// that the envelope treats as optional-with-a-default stay pointers so
// "unset" remains distinguishable from "explicitly zero".
type Resolved struct {
	Src               string
	VolumeDb          *float64
	Volume            *float64
	MaxGainDb         *float64
	FadeInSec         float64
	FadeOutSec        float64
	Loop              bool
	LoopStartSec      *float64
	LoopEndSec        *float64
	LoopCrossfadeSec  float64
	IdleBoostDb       *float64
	TransitionSec     float64
	Ducking           Ducking
}

// preset carries the subset of BgmConfig fields a named preset overrides.
// Unset fields fall through to whatever the video/scene layer (or the
// global defaults) provide.
type preset struct {
	duckDeltaDb *float64
	ducking     *bool
}

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

// presets is deliberately sparse: "talk" matches the global defaults
// exactly (spec §8 E4 resolves a talk-preset scene to every DEFAULT_*
// constant unchanged), so it carries no overrides beyond confirming
// ducking is on. "none" is the named escape hatch for BGM that should
// never duck under dialogue. "calm" and "hype" are this repository's own
// tuning for ambient-wash and energetic cues respectively — nothing in the
// spec's examples exercises their exact numbers, so they are picked to be
// internally consistent with their names rather than derived from a test.
var presets = map[string]preset{
	"talk": {ducking: b(true)},
	"calm": {duckDeltaDb: f(-5.0), ducking: b(true)},
	"hype": {duckDeltaDb: f(-10.0), ducking: b(true)},
	"none": {ducking: b(false)},
}

// Resolve merges, in ascending precedence, the global defaults, the named
// preset (if any), the video-level config, and the scene override.
// src comes from the override if present, else the video config. video
// must not be nil; override may be.
func Resolve(video *script.BgmConfig, override *script.SceneBgmOverride) (Resolved, error) {
	if video == nil {
		return Resolved{}, fmt.Errorf("bgmconfig: video-level bgm config is required")
	}

	r := Resolved{
		FadeInSec:        DefaultFadeInSec,
		FadeOutSec:       DefaultFadeOutSec,
		Loop:             true,
		LoopCrossfadeSec: DefaultLoopCrossfadeSec,
		TransitionSec:    DefaultTransitionSec,
		Ducking: Ducking{
			Enabled:     true,
			AttackSec:   DefaultAttackSec,
			ReleaseSec:  DefaultReleaseSec,
			MergeGapSec: DefaultMergeGapSec,
			MinHoldSec:  DefaultMinHoldSec,
		},
	}

	presetName := video.Preset
	if override != nil && override.Preset != "" {
		presetName = override.Preset
	}
	if p, ok := presets[presetName]; ok {
		applyPreset(&r, p)
	}

	applyExplicit(&r, video)
	if override != nil {
		applyExplicit(&r, &override.BgmConfig)
		if override.TransitionSec != nil {
			r.TransitionSec = *override.TransitionSec
		}
	}

	r.Src = video.Src
	if override != nil && override.Src != "" {
		r.Src = override.Src
	}

	bakeDefaults(&r)

	return r, nil
}

// bakeDefaults fills in the DEFAULT_* constants for fields that remained
// unset after every layer was applied, so a BgmClip built from a Resolved
// config always carries explicit, self-describing values (spec §8 E4: a
// scene with no explicit overrides still emits volumeDb=-12, maxGainDb=-3,
// idleBoostDb=3, duckDeltaDb=-8 — the untouched DEFAULT_* constants).
func bakeDefaults(r *Resolved) {
	if r.VolumeDb == nil && r.Volume == nil {
		r.VolumeDb = f(DefaultBaseDb)
	}
	if r.MaxGainDb == nil {
		r.MaxGainDb = f(DefaultMaxGainDb)
	}
	if r.IdleBoostDb == nil {
		r.IdleBoostDb = f(DefaultIdleBoostDb)
	}
	if r.Ducking.Enabled && r.Ducking.DuckDeltaDb == nil && r.Ducking.DuckVolumeDb == nil && r.Ducking.DuckVolume == nil {
		r.Ducking.DuckDeltaDb = f(DefaultDuckDeltaDb)
	}
}

func applyPreset(r *Resolved, p preset) {
	if p.duckDeltaDb != nil {
		r.Ducking.DuckDeltaDb = p.duckDeltaDb
	}
	if p.ducking != nil {
		r.Ducking.Enabled = *p.ducking
	}
}

// applyExplicit overlays every explicitly-set field of cfg onto r. It is
// called once for the video-level config and, if present, once more for
// the scene override — the second call's explicit fields win, which is
// exactly last-writer-wins over explicit fields only (unset fields never
// overwrite an already-resolved value).
func applyExplicit(r *Resolved, cfg *script.BgmConfig) {
	if cfg.VolumeDb != nil {
		r.VolumeDb = cfg.VolumeDb
		r.Volume = nil
	}
	if cfg.Volume != nil {
		r.Volume = cfg.Volume
		r.VolumeDb = nil
	}
	if cfg.MaxGainDb != nil {
		r.MaxGainDb = cfg.MaxGainDb
	}
	if cfg.FadeInSec != nil {
		r.FadeInSec = *cfg.FadeInSec
	}
	if cfg.FadeOutSec != nil {
		r.FadeOutSec = *cfg.FadeOutSec
	}
	if cfg.Loop != nil {
		r.Loop = *cfg.Loop
	}
	if cfg.LoopStartSec != nil {
		r.LoopStartSec = cfg.LoopStartSec
	}
	if cfg.LoopEndSec != nil {
		r.LoopEndSec = cfg.LoopEndSec
	}
	if cfg.LoopCrossfadeSec != nil {
		r.LoopCrossfadeSec = *cfg.LoopCrossfadeSec
	}
	if cfg.IdleBoostDb != nil {
		r.IdleBoostDb = cfg.IdleBoostDb
	}

	if cfg.Ducking != nil {
		d := cfg.Ducking
		if d.Enabled != nil {
			r.Ducking.Enabled = *d.Enabled
		}
		if d.DuckDeltaDb != nil {
			r.Ducking.DuckDeltaDb = d.DuckDeltaDb
			r.Ducking.DuckVolumeDb = nil
			r.Ducking.DuckVolume = nil
		}
		if d.DuckVolumeDb != nil {
			r.Ducking.DuckVolumeDb = d.DuckVolumeDb
			r.Ducking.DuckDeltaDb = nil
			r.Ducking.DuckVolume = nil
		}
		if d.DuckVolume != nil {
			r.Ducking.DuckVolume = d.DuckVolume
			r.Ducking.DuckDeltaDb = nil
			r.Ducking.DuckVolumeDb = nil
		}
		if d.AttackSec != nil {
			r.Ducking.AttackSec = *d.AttackSec
		}
		if d.ReleaseSec != nil {
			r.Ducking.ReleaseSec = *d.ReleaseSec
		}
		if d.MergeGapSec != nil {
			r.Ducking.MergeGapSec = *d.MergeGapSec
		}
		if d.MinHoldSec != nil {
			r.Ducking.MinHoldSec = *d.MinHoldSec
		}
	}
}

// Key returns a canonical serialization of r suitable for the BGM track
// planner's "has the config changed since the last scene" comparison
// (spec §4.2 currentConfigKey). Two Resolved values with the same Key
// never need a new clip boundary between them.
func Key(r Resolved) string {
	return fmt.Sprintf(
		"%s|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%v|%t|%v|%v|%v|%v|%v|%v|%v",
		r.Src, ptrF(r.VolumeDb), ptrF(r.Volume), ptrF(r.MaxGainDb),
		r.FadeInSec, r.FadeOutSec, r.Loop, ptrF(r.LoopStartSec), ptrF(r.LoopEndSec),
		r.LoopCrossfadeSec, ptrF(r.IdleBoostDb), r.TransitionSec, r.Ducking.Enabled,
		ptrF(r.Ducking.DuckDeltaDb), ptrF(r.Ducking.DuckVolumeDb), ptrF(r.Ducking.DuckVolume),
		r.Ducking.AttackSec, r.Ducking.ReleaseSec, r.Ducking.MergeGapSec, r.Ducking.MinHoldSec,
	)
}

func ptrF(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *p)
}
