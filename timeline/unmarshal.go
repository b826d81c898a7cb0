package timeline

import (
	"encoding/json"
	"fmt"
)

// timelineAlias lets Timeline unmarshal its scalar fields normally while
// Tracks is handled separately as raw JSON — the same tagged-union
// approach package script uses for Block.
type timelineAlias struct {
	Version string            `json:"version"`
	Meta    Meta              `json:"meta"`
	Assets  Assets            `json:"assets"`
	Tracks  []json.RawMessage `json:"tracks"`
}

type trackTypeProbe struct {
	Type string `json:"type"`
}

// UnmarshalJSON dispatches each raw track on its "type" discriminator.
// Compile never round-trips a Timeline through JSON itself (it builds one
// directly in memory) — this exists for external consumers such as
// cmd/compile's validate-timeline subcommand and for tests that assert on
// serialized output.
func (t *Timeline) UnmarshalJSON(data []byte) error {
	var alias timelineAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}

	t.Version = alias.Version
	t.Meta = alias.Meta
	t.Assets = alias.Assets
	t.Tracks = make([]Track, 0, len(alias.Tracks))

	for i, raw := range alias.Tracks {
		track, err := unmarshalTrack(raw)
		if err != nil {
			return fmt.Errorf("timeline: track %d: %w", i, err)
		}
		t.Tracks = append(t.Tracks, track)
	}

	return nil
}

func unmarshalTrack(raw json.RawMessage) (Track, error) {
	var probe trackTypeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("reading track type: %w", err)
	}

	switch probe.Type {
	case "audio":
		var tr AudioTrack
		if err := json.Unmarshal(raw, &tr); err != nil {
			return nil, err
		}
		return tr, nil
	case "subtitle":
		var tr SubtitleTrack
		if err := json.Unmarshal(raw, &tr); err != nil {
			return nil, err
		}
		return tr, nil
	case "character":
		var tr CharacterTrack
		if err := json.Unmarshal(raw, &tr); err != nil {
			return nil, err
		}
		return tr, nil
	case "bgm":
		var tr BgmTrack
		if err := json.Unmarshal(raw, &tr); err != nil {
			return nil, err
		}
		return tr, nil
	default:
		return nil, fmt.Errorf("unknown track type %q", probe.Type)
	}
}
