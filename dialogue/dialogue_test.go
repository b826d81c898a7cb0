package dialogue

import (
	"testing"

	"github.com/shahulog/firstvideo/manifest"
	"github.com/shahulog/firstvideo/script"
)

func testScript(fps, defaultPauseSec float64) *script.Script {
	return &script.Script{
		Version: "0.1",
		Video:   script.VideoConfig{Fps: fps, Width: 1920, Height: 1080, DefaultPauseSec: defaultPauseSec},
		Cast: map[string]script.Cast{
			"a": {Voice: script.Voice{Engine: "x", SpeakerID: 3}},
		},
	}
}

// E1: single dialogue, no pause, no BGM.
func TestEmitSingleDialogueNoPause(t *testing.T) {
	s := testScript(30, 0)
	binder := manifest.NewBinder(manifest.Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", DurationInSeconds: 1.0, SpeakerID: 3, Text: "hi"},
	})
	block := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "hi"}

	r := Emit(s, block, "s0", 0, 0, 0, binder)

	if r.AudioAssetID != "audio_001" {
		t.Errorf("audioAssetId = %q, want audio_001", r.AudioAssetID)
	}
	if r.AudioAsset.Src != "audio/001.wav" || r.AudioAsset.DurationFrames != 30 {
		t.Errorf("audioAsset = %+v, want src=audio/001.wav duration=30", r.AudioAsset)
	}
	if r.AudioClip.AssetID != "audio_001" || r.AudioClip.Start != 0 || r.AudioClip.Duration != 30 {
		t.Errorf("audioClip = %+v, want {audio_001, 0, 30}", r.AudioClip)
	}
	if r.TotalDurationFrames != 30 {
		t.Errorf("totalDurationFrames = %d, want 30", r.TotalDurationFrames)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

// E2: duplicate text, distinct audioKeys/durations; binding must be
// order-independent and must not match by text.
func TestEmitBindsByKeyNotText(t *testing.T) {
	s := testScript(30, 0)
	binder := manifest.NewBinder(manifest.Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", DurationInSeconds: 0.5, Text: "ok"},
		{AudioKey: "s0:1", AudioSrc: "audio/002.wav", DurationInSeconds: 0.7, Text: "ok"},
	})

	block0 := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "ok"}
	block1 := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "ok"}

	r0 := Emit(s, block0, "s0", 0, 0, 0, binder)
	r1 := Emit(s, block1, "s0", 1, 1, r0.TotalDurationFrames, binder)

	if r0.AudioClip.Duration != 15 {
		t.Errorf("first clip duration = %d, want 15", r0.AudioClip.Duration)
	}
	if r1.AudioClip.Duration != 21 {
		t.Errorf("second clip duration = %d, want 21", r1.AudioClip.Duration)
	}
}

// E3: missing voice, fallback.
func TestEmitFallbackOnUnboundEntry(t *testing.T) {
	s := testScript(30, 0)
	binder := manifest.NewBinder(nil)
	block := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "hi"}

	r := Emit(s, block, "s0", 0, 0, 0, binder)

	if r.AudioAsset.Src != "audio/001.wav" {
		t.Errorf("audioSrc = %q, want audio/001.wav", r.AudioAsset.Src)
	}
	if r.AudioClip.Duration != 60 {
		t.Errorf("durationFrames = %d, want 60", r.AudioClip.Duration)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", r.Warnings)
	}
}

func TestEmitPauseProducesIdleCharacterClip(t *testing.T) {
	s := testScript(30, 0.5)
	binder := manifest.NewBinder(manifest.Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", DurationInSeconds: 1.0},
	})
	block := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "hi"}

	r := Emit(s, block, "s0", 0, 0, 0, binder)

	if len(r.CharacterClips) != 2 {
		t.Fatalf("expected 2 character clips (talking + idle pause), got %d", len(r.CharacterClips))
	}
	if r.CharacterClips[0].State.IsTalking != true {
		t.Error("first character clip should be talking")
	}
	if r.CharacterClips[1].State.IsTalking != false {
		t.Error("second character clip should be idle (pause)")
	}
	if r.CharacterClips[1].Start != 30 {
		t.Errorf("idle clip start = %d, want 30 (after the 30-frame talking clip)", r.CharacterClips[1].Start)
	}
	if r.TotalDurationFrames != 45 {
		t.Errorf("totalDurationFrames = %d, want 45 (30 + 15 pause)", r.TotalDurationFrames)
	}
}

func TestEmitNoPauseProducesSingleCharacterClip(t *testing.T) {
	s := testScript(30, 0)
	binder := manifest.NewBinder(manifest.Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", DurationInSeconds: 1.0},
	})
	block := script.DialogueBlock{Type: "dialogue", Speaker: "a", Text: "hi"}

	r := Emit(s, block, "s0", 0, 0, 0, binder)

	if len(r.CharacterClips) != 1 {
		t.Fatalf("expected 1 character clip, got %d", len(r.CharacterClips))
	}
}

func TestEmitUnknownSpeakerIsWarningNotFatal(t *testing.T) {
	s := testScript(30, 0)
	binder := manifest.NewBinder(manifest.Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", DurationInSeconds: 1.0},
	})
	block := script.DialogueBlock{Type: "dialogue", Speaker: "ghost", Text: "hi"}

	r := Emit(s, block, "s0", 0, 0, 0, binder)

	if len(r.Warnings) != 1 {
		t.Fatalf("expected exactly one warning for unknown speaker, got %v", r.Warnings)
	}
	if r.CharacterClips[0].CharacterID != "ghost" {
		t.Errorf("character clip should still reference the unknown speaker id, got %q", r.CharacterClips[0].CharacterID)
	}
}
