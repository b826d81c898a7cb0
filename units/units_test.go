package units

import "testing"

func TestSecondsToFrames(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		fps     float64
		want    int
	}{
		{name: "exact second at 30fps", seconds: 1.0, fps: 30, want: 30},
		{name: "rounds up a fraction of a frame", seconds: 1.001, fps: 30, want: 31},
		{name: "zero seconds", seconds: 0, fps: 30, want: 0},
		{name: "zero fps", seconds: 1.0, fps: 0, want: 0},
		{name: "negative seconds", seconds: -1.0, fps: 30, want: 0},
		{name: "half second at 30fps", seconds: 0.5, fps: 30, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsToFrames(tt.seconds, tt.fps); got != tt.want {
				t.Errorf("SecondsToFrames(%v, %v) = %d, want %d", tt.seconds, tt.fps, got, tt.want)
			}
		})
	}
}

func TestDbGainRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		db   float64
	}{
		{name: "zero dB is unity gain", db: 0},
		{name: "default base dB", db: -12},
		{name: "default max gain dB", db: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain := DbToGain(tt.db)
			back := GainToDb(gain)
			if diff := back - tt.db; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("round trip mismatch: db=%v gain=%v back=%v", tt.db, gain, back)
			}
		})
	}

	if got := DbToGain(0); got != 1.0 {
		t.Errorf("DbToGain(0) = %v, want 1.0", got)
	}
}

func TestClampDb(t *testing.T) {
	tests := []struct {
		name string
		db   float64
		want float64
	}{
		{name: "within range", db: -12, want: -12},
		{name: "below floor", db: -100, want: MinDb},
		{name: "above ceiling", db: 20, want: MaxDb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDb(tt.db); got != tt.want {
				t.Errorf("ClampDb(%v) = %v, want %v", tt.db, got, tt.want)
			}
		})
	}
}

func TestMaxFrames(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		want   int
	}{
		{name: "positive stays", frames: 5, want: 5},
		{name: "zero floors to one", frames: 0, want: 1},
		{name: "negative floors to one", frames: -3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxFrames(tt.frames); got != tt.want {
				t.Errorf("MaxFrames(%d) = %d, want %d", tt.frames, got, tt.want)
			}
		})
	}
}
