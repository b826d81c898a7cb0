package script

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator is shared across calls rather than constructed per call.
var structValidator = validator.New()

// InvalidScriptError is spec §7 error kind 1: a structural violation that
// aborts compilation before any clip is emitted.
type InvalidScriptError struct {
	Reason string
}

func (e *InvalidScriptError) Error() string {
	return fmt.Sprintf("invalid script: %s", e.Reason)
}

// Validate runs the full structural check a Script must pass before the
// compiler is allowed to see it: tag-expressible constraints on the
// top-level shapes, then hand-written traversal of scenes and blocks for
// constraints a struct tag cannot express (cross-field, per-union-member,
// per-element-of-a-slice-of-interfaces checks).
func Validate(s *Script) error {
	if err := structValidator.Struct(s); err != nil {
		return &InvalidScriptError{Reason: describeValidationError(err)}
	}

	if err := structValidator.Struct(&s.Video); err != nil {
		return &InvalidScriptError{Reason: describeValidationError(err)}
	}

	for name, member := range s.Cast {
		if err := structValidator.Struct(&member); err != nil {
			return &InvalidScriptError{Reason: fmt.Sprintf("cast %q: %s", name, describeValidationError(err))}
		}
	}

	seenSceneIDs := make(map[string]bool, len(s.Scenes))
	for i, scene := range s.Scenes {
		if scene.ID == "" {
			return &InvalidScriptError{Reason: fmt.Sprintf("scene %d: missing id", i)}
		}
		if seenSceneIDs[scene.ID] {
			return &InvalidScriptError{Reason: fmt.Sprintf("scene %d: duplicate scene id %q", i, scene.ID)}
		}
		seenSceneIDs[scene.ID] = true

		if len(scene.Blocks) == 0 {
			return &InvalidScriptError{Reason: fmt.Sprintf("scene %q: has no blocks", scene.ID)}
		}

		for j, block := range scene.Blocks {
			dialogue, ok := block.(DialogueBlock)
			if !ok {
				// UnknownBlock is not a script-validation failure: the
				// spec treats an unrecognized block type as a distinct,
				// fatal *compile*-time error (UnknownBlockType), not a
				// schema violation caught here.
				continue
			}
			if err := structValidator.Struct(&dialogue); err != nil {
				return &InvalidScriptError{Reason: fmt.Sprintf("scene %q block %d: %s", scene.ID, j, describeValidationError(err))}
			}
		}
	}

	if s.Video.Bgm != nil {
		if err := validateBgmConfig(s.Video.Bgm); err != nil {
			return &InvalidScriptError{Reason: fmt.Sprintf("video bgm: %v", err)}
		}
	}
	for _, scene := range s.Scenes {
		if scene.Style == nil || scene.Style.Bgm == nil {
			continue
		}
		if err := validateBgmConfig(&scene.Style.Bgm.BgmConfig); err != nil {
			return &InvalidScriptError{Reason: fmt.Sprintf("scene %q bgm override: %v", scene.ID, err)}
		}
	}

	return nil
}

// validateBgmConfig checks the handful of BgmConfig constraints a struct
// tag cannot express cleanly because every field is an optional pointer
// (tags on a *float64 only fire when the pointer is non-nil, which is
// exactly what we want, but `oneof` across two mutually-exclusive
// pointer fields needs hand code).
func validateBgmConfig(cfg *BgmConfig) error {
	if cfg.VolumeDb != nil && cfg.Volume != nil {
		return fmt.Errorf("volumeDb and volume are mutually exclusive")
	}
	if cfg.Volume != nil && (*cfg.Volume < 0 || *cfg.Volume > 1) {
		return fmt.Errorf("volume %v out of range [0,1]", *cfg.Volume)
	}
	if cfg.LoopStartSec != nil && cfg.LoopEndSec != nil && *cfg.LoopStartSec >= *cfg.LoopEndSec {
		return fmt.Errorf("loopStartSec %v must be less than loopEndSec %v", *cfg.LoopStartSec, *cfg.LoopEndSec)
	}
	if cfg.Ducking != nil {
		set := 0
		if cfg.Ducking.DuckDeltaDb != nil {
			set++
		}
		if cfg.Ducking.DuckVolumeDb != nil {
			set++
		}
		if cfg.Ducking.DuckVolume != nil {
			set++
		}
		if set > 1 {
			return fmt.Errorf("ducking: at most one of duckDeltaDb/duckVolumeDb/duckVolume may be set")
		}
	}
	return nil
}

func describeValidationError(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}
