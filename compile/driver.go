// Package compile implements the timeline compiler driver: the single
// pass over a Script's scenes and dialogue blocks that accumulates a frame
// cursor, dispatches each block to the dialogue rule, invokes the BGM
// planner once at the end, and assembles and validates the resulting
// Timeline (spec §4.1).
package compile

import (
	"github.com/shahulog/firstvideo/bgm"
	"github.com/shahulog/firstvideo/dialogue"
	"github.com/shahulog/firstvideo/manifest"
	"github.com/shahulog/firstvideo/script"
	"github.com/shahulog/firstvideo/timeline"
)

// Warning is a non-fatal condition surfaced from anywhere in the compile
// pass. The core never logs; cmd/compile drains these into structured log
// lines at the CLI boundary.
type Warning struct {
	Message string
}

// Options bundles the inputs beyond the Script itself: the pre-realized
// audio manifest and the two optional media-probe side tables.
type Options struct {
	Manifest       manifest.Manifest
	BgmDurations   manifest.DurationFrames
	BgmLoudnessGainDb manifest.LoudnessGainDb
}

// Compile is the sole entry point: a pure function from (validated) Script
// and Options to a validated Timeline, or a Kind-tagged Error.
func Compile(s *script.Script, opts Options) (*timeline.Timeline, []Warning, error) {
	if err := script.Validate(s); err != nil {
		return nil, nil, &Error{Kind: InvalidScript, Reason: "script failed validation", Cause: err}
	}

	binder := manifest.NewBinder(opts.Manifest)

	audioTrack := timeline.AudioTrack{Type: "audio"}
	subtitleTrack := timeline.SubtitleTrack{Type: "subtitle"}
	characterTrack := timeline.CharacterTrack{Type: "character"}
	audioAssets := map[string]timeline.AudioAsset{}

	var warnings []Warning
	var sceneSpans []bgm.SceneSpan

	cursor := 0
	globalBlockIndex := 0

	for sceneIdx := range s.Scenes {
		scene := &s.Scenes[sceneIdx]
		sceneStart := cursor

		for blockIdx, block := range scene.Blocks {
			switch b := block.(type) {
			case script.DialogueBlock:
				r := dialogue.Emit(s, b, scene.ID, blockIdx, globalBlockIndex, cursor, binder)
				audioAssets[r.AudioAssetID] = r.AudioAsset
				audioTrack.Clips = append(audioTrack.Clips, r.AudioClip)
				subtitleTrack.Clips = append(subtitleTrack.Clips, r.SubtitleClip)
				characterTrack.Clips = append(characterTrack.Clips, r.CharacterClips...)
				for _, w := range r.Warnings {
					warnings = append(warnings, Warning{Message: w.Message})
				}
				cursor += r.TotalDurationFrames

			default:
				return nil, nil, &Error{
					Kind:   UnknownBlockType,
					Reason: "scene " + scene.ID + " contains a block of unrecognized type " + block.BlockType(),
				}
			}

			globalBlockIndex++
		}

		sceneSpans = append(sceneSpans, bgm.SceneSpan{SceneID: scene.ID, Start: sceneStart, End: cursor, Scene: scene})
	}

	tl := &timeline.Timeline{
		Version: "0.1",
		Meta: timeline.Meta{
			Fps:         s.Video.Fps,
			Width:       s.Video.Width,
			Height:      s.Video.Height,
			TotalFrames: cursor,
		},
		Assets: timeline.Assets{Audio: audioAssets},
		Tracks: []timeline.Track{audioTrack, subtitleTrack, characterTrack},
	}

	if s.Video.Bgm != nil {
		result, err := bgm.Plan(s.Video.Bgm, sceneSpans, cursor, s.Video.Fps, opts.BgmDurations, opts.BgmLoudnessGainDb)
		if err != nil {
			return nil, nil, &Error{Kind: InvalidTimelineEmission, Reason: "bgm planning failed", Cause: err}
		}
		if len(result.Assets) > 0 {
			tl.Assets.Bgm = result.Assets
		}
		if result.Track != nil && len(result.Track.Clips) > 0 {
			tl.Tracks = append(tl.Tracks, *result.Track)
		}
		for _, w := range result.Warnings {
			warnings = append(warnings, Warning{Message: w.Message})
		}
	}

	if err := timeline.Validate(tl); err != nil {
		return nil, nil, &Error{Kind: InvalidTimelineEmission, Reason: "assembled timeline failed validation", Cause: err}
	}

	return tl, warnings, nil
}
