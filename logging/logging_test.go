package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDrainWarningsWritesOneLinePerMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "compile")

	DrainWarnings(log, "run-1", []string{"first warning", "second warning"})

	out := buf.String()
	if !strings.Contains(out, "first warning") || !strings.Contains(out, "second warning") {
		t.Errorf("expected both warnings in output, got %q", out)
	}
	if strings.Count(out, "run-1") != 2 {
		t.Errorf("expected runId on both lines, got %q", out)
	}
}

func TestNewTaggedWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "bgm")
	log.Info().Msg("hello")

	if !strings.Contains(buf.String(), "bgm") {
		t.Errorf("expected component tag in output, got %q", buf.String())
	}
}
