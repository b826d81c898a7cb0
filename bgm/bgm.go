// Package bgm plans the background-music track: one pass over scene spans
// that emits BgmClips with change-detection splitting, continuous
// playback offsets across splits, and crossfade transitions on source
// change (spec §4.2).
package bgm

import (
	"fmt"

	"github.com/shahulog/firstvideo/bgmconfig"
	"github.com/shahulog/firstvideo/manifest"
	"github.com/shahulog/firstvideo/script"
	"github.com/shahulog/firstvideo/timeline"
	"github.com/shahulog/firstvideo/units"
)

// SceneSpan is one scene's frame range on the Timeline, as recorded by the
// timeline compiler driver while it lays out dialogue blocks.
type SceneSpan struct {
	SceneID    string
	Start, End int
	Scene      *script.Scene
}

// Warning is a non-fatal condition surfaced to the caller instead of being
// logged directly, keeping this package pure.
type Warning struct {
	Message string
}

// Result is everything the BGM planner contributes to a Timeline.
type Result struct {
	Assets   map[string]timeline.BgmAsset
	Track    *timeline.BgmTrack // nil if the planner emitted no clips
	Warnings []Warning
}

// Plan runs the BGM track planner over sceneSpans, given the Script's
// video-level BGM config (must be non-nil; callers check
// script.Video.Bgm != nil before calling), the total frame count (used for
// the empty-script-path fallback), fps, and the two optional side tables a
// media-probe collaborator supplies.
func Plan(video *script.BgmConfig, sceneSpans []SceneSpan, totalFrames int, fps float64, durations manifest.DurationFrames, loudness manifest.LoudnessGainDb) (Result, error) {
	assets := map[string]timeline.BgmAsset{}

	if len(sceneSpans) == 0 {
		assetID := assetID(video.Src)
		registerAsset(assets, assetID, video.Src, durations, loudness)

		cfg, err := bgmconfig.Resolve(video, nil)
		if err != nil {
			return Result{}, err
		}
		clip, warn := openClip(assets, assetID, 0, totalFrames-0, cfg, fps)
		clip.FadeInFrames = fadeFrames(cfg.FadeInSec, fps)
		clip.FadeOutFrames = fadeFrames(cfg.FadeOutSec, fps)
		var warnings []Warning
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		return Result{Assets: assets, Track: &timeline.BgmTrack{Type: "bgm", Clips: []timeline.BgmClip{clip}}, Warnings: warnings}, nil
	}

	p := &planner{
		assets:             assets,
		playbackPosByAsset: map[string]int{},
		fps:                fps,
	}

	for i, span := range sceneSpans {
		var override *script.SceneBgmOverride
		if span.Scene != nil && span.Scene.Style != nil {
			override = span.Scene.Style.Bgm
		}
		cfg, err := bgmconfig.Resolve(video, override)
		if err != nil {
			return Result{}, err
		}
		a := assetID(cfg.Src)
		registerAsset(assets, a, cfg.Src, durations, loudness)

		if err := p.onScene(i == 0, i == len(sceneSpans)-1, span.Start, span.End, cfg, a, override); err != nil {
			return Result{}, err
		}
	}
	p.finish()

	if len(p.clips) == 0 {
		return Result{Assets: assets, Track: nil, Warnings: p.warnings}, nil
	}
	return Result{Assets: assets, Track: &timeline.BgmTrack{Type: "bgm", Clips: p.clips}, Warnings: p.warnings}, nil
}

type planner struct {
	assets             map[string]timeline.BgmAsset
	playbackPosByAsset map[string]int
	fps                float64

	clips      []timeline.BgmClip
	current    *timeline.BgmClip
	currentKey string
	currentAsset string
	currentCfg bgmconfig.Resolved
	warnings   []Warning
}

func (p *planner) noteWarning(w *Warning) {
	if w == nil {
		return
	}
	p.warnings = append(p.warnings, *w)
}

func (p *planner) onScene(isFirst, isLast bool, start, end int, cfg bgmconfig.Resolved, assetID string, override *script.SceneBgmOverride) error {
	key := bgmconfig.Key(cfg)

	switch {
	case p.current == nil:
		clip, warn := openClip(p.assets, assetID, start, end-start, cfg, p.fps)
		clip.FadeInFrames = fadeFrames(cfg.FadeInSec, p.fps)
		p.current = &clip
		p.noteWarning(warn)

	case key == p.currentKey:
		p.current.Duration = end - p.current.Start

	case assetID == p.currentAsset:
		p.current.Duration = start - p.current.Start
		p.playbackPosByAsset[assetID] += p.current.Duration
		p.clips = append(p.clips, *p.current)

		offset := timeline.WrapPlaybackPosition(p.playbackPosByAsset[assetID], durationPtr(p.assets[assetID]), cfg.Loop, loopStartFrames(cfg, p.fps), loopEndFrames(cfg, p.fps))
		clip, warn := openClip(p.assets, assetID, start, end-start, cfg, p.fps)
		clip.AudioOffsetFrames = &offset
		p.current = &clip
		p.noteWarning(warn)

	default:
		transitionSec := bgmconfig.DefaultTransitionSec
		if override != nil && override.TransitionSec != nil {
			transitionSec = *override.TransitionSec
		}
		transitionFrames := units.MaxFrames(units.SecondsToFrames(transitionSec, p.fps))

		p.current.Duration = start + transitionFrames - p.current.Start
		p.current.TransitionOutFrames = &transitionFrames
		p.playbackPosByAsset[p.currentAsset] += p.current.Duration
		p.clips = append(p.clips, *p.current)

		clip, warn := openClip(p.assets, assetID, start, end-start, cfg, p.fps)
		clip.TransitionInFrames = &transitionFrames
		zero := 0
		clip.AudioOffsetFrames = &zero
		p.current = &clip
		p.noteWarning(warn)
	}

	if isLast {
		p.current.FadeOutFrames = fadeFrames(cfg.FadeOutSec, p.fps)
	}

	p.currentKey = key
	p.currentAsset = assetID
	p.currentCfg = cfg
	return nil
}

func (p *planner) finish() {
	if p.current == nil {
		return
	}
	p.playbackPosByAsset[p.currentAsset] += p.current.Duration
	p.clips = append(p.clips, *p.current)
	p.current = nil
}

// openClip builds a BgmClip from the resolved config. If the clip is
// configured to loop but the referenced asset has no known duration
// (spec §7 MissingBgmDuration), looping is disabled and a Warning is
// returned instead of being logged directly.
func openClip(assets map[string]timeline.BgmAsset, assetID string, start, duration int, cfg bgmconfig.Resolved, fps float64) (timeline.BgmClip, *Warning) {
	clip := timeline.BgmClip{
		AssetID:          assetID,
		Start:            start,
		Duration:         duration,
		VolumeDb:         cfg.VolumeDb,
		Volume:           cfg.Volume,
		MaxGainDb:        cfg.MaxGainDb,
		Loop:             cfg.Loop,
		LoopStartFrames:  loopStartFrames(cfg, fps),
		LoopEndFrames:    loopEndFrames(cfg, fps),
		IdleBoostDb:      cfg.IdleBoostDb,
		FadeInFrames:     1,
		FadeOutFrames:    1,
	}

	var warn *Warning
	if clip.Loop && assets[assetID].DurationFrames == nil {
		clip.Loop = false
		warn = &Warning{Message: fmt.Sprintf("bgm asset %q has no known duration, disabling loop", assetID)}
	}

	if cfg.LoopCrossfadeSec > 0 {
		x := units.SecondsToFrames(cfg.LoopCrossfadeSec, fps)
		clip.LoopCrossfadeFrames = &x
	}
	if cfg.Ducking.Enabled || cfg.Ducking.DuckDeltaDb != nil || cfg.Ducking.DuckVolumeDb != nil || cfg.Ducking.DuckVolume != nil {
		clip.Ducking = &timeline.BgmDucking{
			Enabled:        cfg.Ducking.Enabled,
			DuckDeltaDb:    cfg.Ducking.DuckDeltaDb,
			DuckVolumeDb:   cfg.Ducking.DuckVolumeDb,
			DuckVolume:     cfg.Ducking.DuckVolume,
			AttackFrames:   units.MaxFrames(units.SecondsToFrames(cfg.Ducking.AttackSec, fps)),
			ReleaseFrames:  units.MaxFrames(units.SecondsToFrames(cfg.Ducking.ReleaseSec, fps)),
			MergeGapFrames: ptrInt(units.SecondsToFrames(cfg.Ducking.MergeGapSec, fps)),
			MinHoldFrames:  ptrInt(units.SecondsToFrames(cfg.Ducking.MinHoldSec, fps)),
		}
	}
	return clip, warn
}

func fadeFrames(sec, fps float64) int {
	return units.MaxFrames(units.SecondsToFrames(sec, fps))
}

func loopStartFrames(cfg bgmconfig.Resolved, fps float64) *int {
	if cfg.LoopStartSec == nil {
		return nil
	}
	return ptrInt(units.SecondsToFrames(*cfg.LoopStartSec, fps))
}

func loopEndFrames(cfg bgmconfig.Resolved, fps float64) *int {
	if cfg.LoopEndSec == nil {
		return nil
	}
	return ptrInt(units.SecondsToFrames(*cfg.LoopEndSec, fps))
}

func ptrInt(v int) *int { return &v }

func durationPtr(asset timeline.BgmAsset) *int { return asset.DurationFrames }

func registerAsset(assets map[string]timeline.BgmAsset, id, src string, durations manifest.DurationFrames, loudness manifest.LoudnessGainDb) {
	if _, ok := assets[id]; ok {
		return
	}
	asset := timeline.BgmAsset{Src: src}
	if d, ok := durations[id]; ok {
		asset.DurationFrames = &d
	}
	if g, ok := loudness.GainDb(id); ok {
		asset.LoudnessGainDb = &g
	}
	assets[id] = asset
}

// assetID derives a deterministic, source-stable BGM asset id from src
// using a 32-bit DJB2-style fold (spec §4.2 "any stable injective-enough
// hash is acceptable").
func assetID(src string) string {
	h := djb2(src)
	return fmt.Sprintf("bgm_%08x", h)
}

func djb2(s string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = h*33 ^ uint32(s[i])
	}
	return h
}
