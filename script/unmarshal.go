package script

import (
	"encoding/json"
	"fmt"
)

// sceneAlias lets Scene unmarshal its own fields normally while Blocks is
// handled separately as raw JSON so the Block tagged union can dispatch on
// its "type" discriminator.
type sceneAlias struct {
	ID     string            `json:"id"`
	Style  *SceneStyle       `json:"style,omitempty"`
	Blocks []json.RawMessage `json:"blocks"`
}

// UnmarshalJSON dispatches each raw block on its "type" discriminator.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var alias sceneAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("script: scene: %w", err)
	}

	s.ID = alias.ID
	s.Style = alias.Style
	s.Blocks = make([]Block, 0, len(alias.Blocks))

	for i, raw := range alias.Blocks {
		block, err := unmarshalBlock(raw)
		if err != nil {
			return fmt.Errorf("script: scene %q block %d: %w", alias.ID, i, err)
		}
		s.Blocks = append(s.Blocks, block)
	}

	return nil
}

type blockTypeProbe struct {
	Type string `json:"type"`
}

func unmarshalBlock(raw json.RawMessage) (Block, error) {
	var probe blockTypeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("reading block type: %w", err)
	}

	switch probe.Type {
	case "dialogue":
		var d DialogueBlock
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("reading dialogue block: %w", err)
		}
		return d, nil
	default:
		return UnknownBlock{Type: probe.Type}, nil
	}
}

// UnmarshalScript parses a Script document from JSON and runs structural
// validation (spec §7 InvalidScript) before returning it. Callers never
// see a Script that failed validation.
func UnmarshalScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &InvalidScriptError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}
