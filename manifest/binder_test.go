package manifest

import "testing"

func TestBinderBindsByKeyNotText(t *testing.T) {
	m := Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/001.wav", Text: "ok", DurationInSeconds: 0.5},
		{AudioKey: "s0:1", AudioSrc: "audio/002.wav", Text: "ok", DurationInSeconds: 0.7},
	}

	tests := []struct {
		name     string
		key      string
		wantSrc  string
		wantSecs float64
	}{
		{name: "first duplicate-text entry binds by its own key", key: "s0:0", wantSrc: "audio/001.wav", wantSecs: 0.5},
		{name: "second duplicate-text entry binds by its own key", key: "s0:1", wantSrc: "audio/002.wav", wantSecs: 0.7},
	}

	b := NewBinder(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := b.Bind("", tt.key)
			if !ok {
				t.Fatalf("expected bind to succeed for key %q", tt.key)
			}
			if e.AudioSrc != tt.wantSrc || e.DurationInSeconds != tt.wantSecs {
				t.Errorf("bind(%q) = %+v, want src=%s secs=%v", tt.key, e, tt.wantSrc, tt.wantSecs)
			}
		})
	}
}

func TestBinderOrderIndependence(t *testing.T) {
	forward := NewBinder(Manifest{
		{AudioKey: "s0:0", AudioSrc: "a.wav", DurationInSeconds: 1},
		{AudioKey: "s0:1", AudioSrc: "b.wav", DurationInSeconds: 2},
	})
	reversed := NewBinder(Manifest{
		{AudioKey: "s0:1", AudioSrc: "b.wav", DurationInSeconds: 2},
		{AudioKey: "s0:0", AudioSrc: "a.wav", DurationInSeconds: 1},
	})

	for _, key := range []string{"s0:0", "s0:1"} {
		a, _ := forward.Bind("", key)
		b, _ := reversed.Bind("", key)
		if a != b {
			t.Errorf("bind(%q) depends on manifest order: %+v vs %+v", key, a, b)
		}
	}
}

func TestBinderFileNameMatchTakesPrecedence(t *testing.T) {
	b := NewBinder(Manifest{
		{AudioKey: "s0:0", AudioSrc: "audio/custom_001.wav", DurationInSeconds: 1},
		{AudioKey: "other", AudioSrc: "audio/other.wav", DurationInSeconds: 2},
	})

	e, ok := b.Bind("custom_001", "does-not-exist")
	if !ok {
		t.Fatal("expected fileName substring match to bind")
	}
	if e.AudioKey != "s0:0" {
		t.Errorf("expected s0:0, got %s", e.AudioKey)
	}
}

func TestBinderUnbound(t *testing.T) {
	b := NewBinder(nil)
	if _, ok := b.Bind("", "s0:0"); ok {
		t.Fatal("expected unbound lookup to miss")
	}
}
