// Package dialogue implements the per-DialogueBlock rule: binding a block
// to its pre-generated voice clip, synthesizing a fallback when unbound,
// and emitting the audio/subtitle/character clips the timeline compiler
// appends to its tracks (spec §4.4).
package dialogue

import (
	"fmt"

	"github.com/shahulog/firstvideo/manifest"
	"github.com/shahulog/firstvideo/script"
	"github.com/shahulog/firstvideo/timeline"
	"github.com/shahulog/firstvideo/units"
)

// Warning is a non-fatal condition surfaced to the caller instead of being
// logged directly, keeping this package pure (spec §9 design note).
type Warning struct {
	Message string
}

// Result carries everything one DialogueBlock contributes to the Timeline.
type Result struct {
	AudioAssetID        string
	AudioAsset          timeline.AudioAsset
	AudioClip           timeline.AudioClip
	SubtitleClip        timeline.SubtitleClip
	CharacterClips      []timeline.CharacterClip
	TotalDurationFrames int
	Warnings            []Warning
}

// Emit applies the dialogue block rule for block B at scene sceneID, local
// index i, global index globalBlockIndex, starting at currentFrame, against
// the given manifest binder and the Script it belongs to (for speaker
// lookup and the video-level default pause).
func Emit(s *script.Script, b script.DialogueBlock, sceneID string, i, globalBlockIndex, currentFrame int, binder *manifest.Binder) Result {
	var warnings []Warning

	expectedAudioKey := fmt.Sprintf("%s:%d", sceneID, i)
	key := b.AudioKey
	if key == "" {
		key = expectedAudioKey
	}

	entry, bound := binder.Bind(b.FileName, key)

	fps := s.Video.Fps
	var durationFrames int
	var audioSrc string

	if bound && entry.DurationInSeconds > 0 {
		durationFrames = entry.DurationFrames(fps)
		audioSrc = entry.AudioSrc
	} else {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"dialogue block %d (scene %q): no usable manifest entry for key %q, synthesizing fallback audio", globalBlockIndex, sceneID, key)})
		durationFrames = units.SecondsToFrames(2.0, fps)
		audioSrc = fmt.Sprintf("audio/%03d.wav", globalBlockIndex+1)
	}

	pauseSec := s.Video.DefaultPauseSec
	if b.PauseSec != nil {
		pauseSec = *b.PauseSec
	}
	pauseFrames := units.SecondsToFrames(pauseSec, fps)
	totalDurationFrames := durationFrames + pauseFrames

	audioAssetID := fmt.Sprintf("audio_%03d", globalBlockIndex+1)

	characterClips := []timeline.CharacterClip{
		{Start: currentFrame, Duration: durationFrames, CharacterID: b.Speaker, State: timeline.CharacterState{IsTalking: true}},
	}
	if pauseFrames > 0 {
		characterClips = append(characterClips, timeline.CharacterClip{
			Start: currentFrame + durationFrames, Duration: pauseFrames, CharacterID: b.Speaker, State: timeline.CharacterState{IsTalking: false},
		})
	}

	if _, ok := s.ResolveSpeaker(b.Speaker); !ok {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"dialogue block %d (scene %q): speaker %q is not in cast", globalBlockIndex, sceneID, b.Speaker)})
	}

	return Result{
		AudioAssetID:        audioAssetID,
		AudioAsset:          timeline.AudioAsset{Src: audioSrc, DurationFrames: durationFrames},
		AudioClip:           timeline.AudioClip{AssetID: audioAssetID, Start: currentFrame, Duration: durationFrames},
		SubtitleClip:        timeline.SubtitleClip{Start: currentFrame, Duration: totalDurationFrames, Text: b.Text},
		CharacterClips:      characterClips,
		TotalDurationFrames: totalDurationFrames,
		Warnings:            warnings,
	}
}
