// Package loopseg splits one BGM clip's playback into overlapping loop
// segments with crossfade metadata, given the clip's duration, the backing
// audio file's duration, and a loop window (spec §4.6).
package loopseg

// Segment is one span of looped playback within a clip. ClipOffset and
// AudioStartFrame are both frame offsets: the former into the clip, the
// latter into the backing audio file.
type Segment struct {
	ClipOffset      int
	Duration        int
	AudioStartFrame int
	FadeInFrames    int
	FadeOutFrames   int
}

// Generate produces the segment list for a clip of clipDuration frames
// playing an audio file audioDurationFrames long, looping between
// loopStart and loopEnd (nil means "use the file boundary"), crossfading
// crossfade frames at each loop boundary (nil means no crossfade).
//
// The first segment's length is computed off the loop window's end (le'),
// not the window's length (L) — spec §9 names this asymmetry explicitly
// and instructs implementations to preserve it rather than "fix" it.
func Generate(clipDuration, audioDurationFrames int, loopStart, loopEnd, crossfade *int) []Segment {
	ls, le := effectiveWindow(audioDurationFrames, loopStart, loopEnd)
	length := le - ls

	if length <= 0 {
		dur := clipDuration
		if audioDurationFrames < dur {
			dur = audioDurationFrames
		}
		return []Segment{{ClipOffset: 0, Duration: dur, AudioStartFrame: 0, FadeInFrames: 0, FadeOutFrames: 0}}
	}

	x := 0
	if crossfade != nil {
		x = *crossfade
	}
	if half := length / 2; x > half {
		x = half
	}

	var segments []Segment
	isFirst := true
	clipOffset := 0

	for clipOffset < clipDuration {
		audioStart := ls
		segLen := length
		if isFirst {
			audioStart = 0
			segLen = le
		}

		remaining := clipDuration - clipOffset
		segDur := segLen
		if remaining < segDur {
			segDur = remaining
		}
		isLast := clipOffset+segDur >= clipDuration

		duration := segDur
		if !isLast {
			duration += x
		}
		fadeIn := 0
		if !isFirst {
			fadeIn = x
		}
		fadeOut := 0
		if !isLast {
			fadeOut = x
		}

		segments = append(segments, Segment{
			ClipOffset:      clipOffset,
			Duration:        duration,
			AudioStartFrame: audioStart,
			FadeInFrames:    fadeIn,
			FadeOutFrames:   fadeOut,
		})

		if segDur <= 0 {
			break
		}
		clipOffset += segDur
		isFirst = false
	}

	return segments
}

func effectiveWindow(audioDurationFrames int, loopStart, loopEnd *int) (int, int) {
	ls := 0
	if loopStart != nil {
		ls = *loopStart
	}
	le := audioDurationFrames
	if loopEnd != nil {
		le = *loopEnd
	}
	if le <= ls || ls < 0 || le > audioDurationFrames {
		return 0, audioDurationFrames
	}
	return ls, le
}
