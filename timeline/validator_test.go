package timeline

import "testing"

func baseTimeline() *Timeline {
	return &Timeline{
		Version: "0.1",
		Meta:    Meta{Fps: 30, Width: 1920, Height: 1080, TotalFrames: 60},
		Assets: Assets{
			Audio: map[string]AudioAsset{"a0": {Src: "a0.wav", DurationFrames: 60}},
		},
		Tracks: []Track{
			AudioTrack{Type: "audio", Clips: []AudioClip{{AssetID: "a0", Start: 0, Duration: 60}}},
			SubtitleTrack{Type: "subtitle", Clips: []SubtitleClip{{Start: 0, Duration: 60, Text: "hi"}}},
			CharacterTrack{Type: "character", Clips: []CharacterClip{{Start: 0, Duration: 60, CharacterID: "nova", State: CharacterState{IsTalking: true}}}},
		},
	}
}

func TestValidateAcceptsWellFormedTimeline(t *testing.T) {
	if err := Validate(baseTimeline()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsWrongTotalFrames(t *testing.T) {
	tl := baseTimeline()
	tl.Meta.TotalFrames = 61
	if err := Validate(tl); err == nil {
		t.Fatal("expected error for mismatched totalFrames")
	}
}

func TestValidateRejectsGapInAudioTrack(t *testing.T) {
	tl := baseTimeline()
	audio := tl.Tracks[0].(AudioTrack)
	audio.Clips = append(audio.Clips, AudioClip{AssetID: "a0", Start: 65, Duration: 10})
	tl.Tracks[0] = audio
	if err := Validate(tl); err == nil {
		t.Fatal("expected error for non-contiguous audio clips")
	}
}

func TestValidateRejectsDanglingAssetReference(t *testing.T) {
	tl := baseTimeline()
	audio := tl.Tracks[0].(AudioTrack)
	audio.Clips[0].AssetID = "missing"
	tl.Tracks[0] = audio
	if err := Validate(tl); err == nil {
		t.Fatal("expected error for dangling asset reference")
	}
}

func TestValidateRejectsMismatchedAudioSubtitleCounts(t *testing.T) {
	tl := baseTimeline()
	subtitle := tl.Tracks[1].(SubtitleTrack)
	subtitle.Clips = append(subtitle.Clips, SubtitleClip{Start: 60, Duration: 1, Text: "extra"})
	tl.Tracks[1] = subtitle
	tl.Meta.TotalFrames = 61
	if err := Validate(tl); err == nil {
		t.Fatal("expected error for mismatched audio/subtitle clip counts")
	}
}

func TestValidateBgmContinuitySameAsset(t *testing.T) {
	tl := baseTimeline()
	dur := 40
	tl.Assets.Bgm = map[string]BgmAsset{"bgm_x": {Src: "x.mp3", DurationFrames: &dur}}

	restartOffset := 0
	tl.Tracks = append(tl.Tracks, BgmTrack{Type: "bgm", Clips: []BgmClip{
		{AssetID: "bgm_x", Start: 0, Duration: 30, FadeInFrames: 0, FadeOutFrames: 0},
		{AssetID: "bgm_x", Start: 30, Duration: 30, AudioOffsetFrames: &restartOffset},
	}})

	if err := Validate(tl); err == nil {
		t.Fatal("expected error: second clip should resume at wrapped position 30, not restart at 0")
	}
}

func TestValidateBgmContinuitySameAssetCorrectOffset(t *testing.T) {
	tl := baseTimeline()
	dur := 40
	tl.Assets.Bgm = map[string]BgmAsset{"bgm_x": {Src: "x.mp3", DurationFrames: &dur}}

	offset30 := 30
	tl.Tracks = append(tl.Tracks, BgmTrack{Type: "bgm", Clips: []BgmClip{
		{AssetID: "bgm_x", Start: 0, Duration: 30},
		{AssetID: "bgm_x", Start: 30, Duration: 30, AudioOffsetFrames: &offset30},
	}})

	if err := Validate(tl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBgmContinuityAssetChangeRequiresTransitions(t *testing.T) {
	tl := baseTimeline()
	dur := 40
	tl.Assets.Bgm = map[string]BgmAsset{
		"bgm_x": {Src: "x.mp3", DurationFrames: &dur},
		"bgm_y": {Src: "y.mp3", DurationFrames: &dur},
	}

	tl.Tracks = append(tl.Tracks, BgmTrack{Type: "bgm", Clips: []BgmClip{
		{AssetID: "bgm_x", Start: 0, Duration: 30},
		{AssetID: "bgm_y", Start: 30, Duration: 30},
	}})

	if err := Validate(tl); err == nil {
		t.Fatal("expected error: asset change without matching transition frames")
	}
}

func TestValidateBgmContinuityAssetChangeWithMatchingTransitions(t *testing.T) {
	tl := baseTimeline()
	dur := 40
	tl.Assets.Bgm = map[string]BgmAsset{
		"bgm_x": {Src: "x.mp3", DurationFrames: &dur},
		"bgm_y": {Src: "y.mp3", DurationFrames: &dur},
	}

	transition := 15
	tl.Tracks = append(tl.Tracks, BgmTrack{Type: "bgm", Clips: []BgmClip{
		{AssetID: "bgm_x", Start: 0, Duration: 30, TransitionOutFrames: &transition},
		{AssetID: "bgm_y", Start: 30, Duration: 30, TransitionInFrames: &transition},
	}})

	if err := Validate(tl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWrapPlaybackPositionNoLoop(t *testing.T) {
	d := 100
	if got := WrapPlaybackPosition(40, &d, false, nil, nil); got != 40 {
		t.Errorf("got %d, want 40", got)
	}
	if got := WrapPlaybackPosition(140, &d, false, nil, nil); got != 100 {
		t.Errorf("got %d, want clamped 100", got)
	}
}

func TestWrapPlaybackPositionLoopWindow(t *testing.T) {
	d := 100
	start, end := 20, 80
	if got := WrapPlaybackPosition(10, &d, true, &start, &end); got != 10 {
		t.Errorf("before loop start: got %d, want 10", got)
	}
	if got := WrapPlaybackPosition(80, &d, true, &start, &end); got != 20 {
		t.Errorf("at loop end: got %d, want wrap to loop start 20", got)
	}
	if got := WrapPlaybackPosition(100, &d, true, &start, &end); got != 40 {
		t.Errorf("past loop end: got %d, want 40", got)
	}
}
