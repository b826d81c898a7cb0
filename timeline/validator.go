package timeline

// TimeRange is a half-open span of frames [Start, End).
type TimeRange struct {
	Start int
	End   int
}

func rangeOf(start, duration int) TimeRange {
	return TimeRange{Start: start, End: start + duration}
}

func (r TimeRange) Duration() int { return r.End - r.Start }

func (r TimeRange) Contains(frame int) bool {
	return frame >= r.Start && frame < r.End
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Validate enforces invariants I1-I7 (spec §3) against an assembled
// Timeline. Compile calls this as its last step before returning; it is
// exported so cmd/compile's validate-timeline subcommand and tests can run
// the same checks against a Timeline read back from disk.
func Validate(t *Timeline) error {
	if t.Meta.Fps <= 0 {
		return invalid("meta.fps must be positive, got %v", t.Meta.Fps)
	}
	if t.Meta.TotalFrames < 0 {
		return invalid("meta.totalFrames must be non-negative, got %d", t.Meta.TotalFrames)
	}

	audio, subtitle, character, bgm := tracksByKind(t)

	if err := validateAssetRanges(t); err != nil {
		return err
	}
	if err := validateContiguous("audio", clipRanges(audio)); err != nil {
		return err
	}
	if err := validateContiguous("subtitle", clipRanges(subtitle)); err != nil {
		return err
	}
	if err := validateNonOverlapping("character", clipRanges(character)); err != nil {
		return err
	}
	if err := validateTotalFrames(t, audio, subtitle, character); err != nil {
		return err
	}
	if err := validateAssetReferences(t, audio, bgm); err != nil {
		return err
	}
	if err := validateDialogueClipCounts(audio, subtitle, character); err != nil {
		return err
	}
	if err := validateBgmContinuity(t, bgm); err != nil {
		return err
	}

	return nil
}

func tracksByKind(t *Timeline) (AudioTrack, SubtitleTrack, CharacterTrack, *BgmTrack) {
	var audio AudioTrack
	var subtitle SubtitleTrack
	var character CharacterTrack
	var bgm *BgmTrack

	for _, tr := range t.Tracks {
		switch v := tr.(type) {
		case AudioTrack:
			audio = v
		case SubtitleTrack:
			subtitle = v
		case CharacterTrack:
			character = v
		case BgmTrack:
			cp := v
			bgm = &cp
		}
	}
	return audio, subtitle, character, bgm
}

// I1: every start and duration is a non-negative integer, and duration is
// strictly positive for every emitted clip. Asset-table durations (not
// clips) are allowed to be zero.
func validateAssetRanges(t *Timeline) error {
	for id, a := range t.Assets.Audio {
		if a.DurationFrames < 0 {
			return invalid("audio asset %q has negative durationFrames %d", id, a.DurationFrames)
		}
	}
	for id, a := range t.Assets.Bgm {
		if a.DurationFrames != nil && *a.DurationFrames < 0 {
			return invalid("bgm asset %q has negative durationFrames %d", id, *a.DurationFrames)
		}
	}
	return nil
}

func clipRanges(tr Track) []TimeRange {
	switch v := tr.(type) {
	case AudioTrack:
		out := make([]TimeRange, len(v.Clips))
		for i, c := range v.Clips {
			out[i] = rangeOf(c.Start, c.Duration)
		}
		return out
	case SubtitleTrack:
		out := make([]TimeRange, len(v.Clips))
		for i, c := range v.Clips {
			out[i] = rangeOf(c.Start, c.Duration)
		}
		return out
	case CharacterTrack:
		out := make([]TimeRange, len(v.Clips))
		for i, c := range v.Clips {
			out[i] = rangeOf(c.Start, c.Duration)
		}
		return out
	default:
		return nil
	}
}

func validateContiguous(trackName string, ranges []TimeRange) error {
	for i, r := range ranges {
		if r.Start < 0 {
			return invalid("%s track clip %d: negative start %d", trackName, i, r.Start)
		}
		if r.Duration() <= 0 {
			return invalid("%s track clip %d: non-positive duration %d", trackName, i, r.Duration())
		}
		if i > 0 && r.Start != ranges[i-1].End {
			return invalid("%s track clip %d: start %d does not continue from previous clip's end %d", trackName, i, r.Start, ranges[i-1].End)
		}
	}
	return nil
}

// Character clips may leave gaps, so unlike validateContiguous this does
// not require each clip to start where the previous one ended. It checks
// every consecutive pair of clips for overlap, whatever their characterId.
func validateNonOverlapping(trackName string, ranges []TimeRange) error {
	for i, r := range ranges {
		if r.Start < 0 {
			return invalid("%s track clip %d: negative start %d", trackName, i, r.Start)
		}
		if r.Duration() <= 0 {
			return invalid("%s track clip %d: non-positive duration %d", trackName, i, r.Duration())
		}
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Overlaps(ranges[i-1]) {
			return invalid("%s track clip %d overlaps clip %d", trackName, i, i-1)
		}
	}
	return nil
}

// I2: meta.totalFrames equals the frame cursor reached by the last emitted
// clip across the three always-present tracks.
func validateTotalFrames(t *Timeline, audio AudioTrack, subtitle SubtitleTrack, character CharacterTrack) error {
	end := 0
	if n := len(character.Clips); n > 0 {
		last := character.Clips[n-1]
		if e := last.Start + last.Duration; e > end {
			end = e
		}
	}
	if n := len(subtitle.Clips); n > 0 {
		last := subtitle.Clips[n-1]
		if e := last.Start + last.Duration; e > end {
			end = e
		}
	}
	if n := len(audio.Clips); n > 0 {
		last := audio.Clips[n-1]
		if e := last.Start + last.Duration; e > end {
			end = e
		}
	}
	if t.Meta.TotalFrames != end {
		return invalid("meta.totalFrames %d does not match last emitted clip end %d", t.Meta.TotalFrames, end)
	}
	return nil
}

// I4: every clip's assetId resolves to an entry in the matching asset
// table.
func validateAssetReferences(t *Timeline, audio AudioTrack, bgm *BgmTrack) error {
	for i, c := range audio.Clips {
		if _, ok := t.Assets.Audio[c.AssetID]; !ok {
			return invalid("audio clip %d references unknown asset %q", i, c.AssetID)
		}
	}
	if bgm != nil {
		for i, c := range bgm.Clips {
			if _, ok := t.Assets.Bgm[c.AssetID]; !ok {
				return invalid("bgm clip %d references unknown asset %q", i, c.AssetID)
			}
		}
	}
	return nil
}

// I5: every dialogue block contributes exactly one audio clip, one
// subtitle clip, and one or two character clips (a validated Timeline
// cannot tell which character clips belong to which block, so this checks
// the global counts the per-block rule guarantees: as many subtitle clips
// as audio clips, and at least as many character clips as audio clips).
func validateDialogueClipCounts(audio AudioTrack, subtitle SubtitleTrack, character CharacterTrack) error {
	if len(audio.Clips) != len(subtitle.Clips) {
		return invalid("audio track has %d clips but subtitle track has %d", len(audio.Clips), len(subtitle.Clips))
	}
	if len(character.Clips) < len(audio.Clips) {
		return invalid("character track has %d clips, fewer than %d dialogue blocks", len(character.Clips), len(audio.Clips))
	}
	if len(character.Clips) > 2*len(audio.Clips) {
		return invalid("character track has %d clips, more than 2x the %d dialogue blocks", len(character.Clips), len(audio.Clips))
	}
	return nil
}

// I6, I7: consecutive BGM clips against the same asset must resume
// playback from WrapPlaybackPosition of the accumulated position; clips
// that switch assets must carry matching, positive transition-out /
// transition-in frame counts.
func validateBgmContinuity(t *Timeline, bgm *BgmTrack) error {
	if bgm == nil || len(bgm.Clips) == 0 {
		return nil
	}

	posByAsset := map[string]int{}

	for i, c := range bgm.Clips {
		if c.Duration <= 0 {
			return invalid("bgm clip %d: non-positive duration %d", i, c.Duration)
		}
		if i > 0 {
			prev := bgm.Clips[i-1]
			if prev.AssetID == c.AssetID {
				if c.AudioOffsetFrames == nil {
					return invalid("bgm clip %d: missing audioOffsetFrames on same-asset continuation", i)
				}
				asset := t.Assets.Bgm[c.AssetID]
				want := WrapPlaybackPosition(posByAsset[c.AssetID], asset.DurationFrames, c.Loop, c.LoopStartFrames, c.LoopEndFrames)
				if *c.AudioOffsetFrames != want {
					return invalid("bgm clip %d: audioOffsetFrames %d, want %d (I6)", i, *c.AudioOffsetFrames, want)
				}
			} else {
				if prev.TransitionOutFrames == nil || c.TransitionInFrames == nil {
					return invalid("bgm clip %d: asset change from %q to %q missing transition frames (I7)", i, prev.AssetID, c.AssetID)
				}
				if *prev.TransitionOutFrames != *c.TransitionInFrames {
					return invalid("bgm clip %d: transitionOutFrames %d != transitionInFrames %d (I7)", i, *prev.TransitionOutFrames, *c.TransitionInFrames)
				}
				if *c.TransitionInFrames <= 0 {
					return invalid("bgm clip %d: non-positive transition frames on asset change", i)
				}
			}
		}
		posByAsset[c.AssetID] += c.Duration
	}

	return nil
}
