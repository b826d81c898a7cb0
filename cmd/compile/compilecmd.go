package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shahulog/firstvideo/compile"
	"github.com/shahulog/firstvideo/logging"
	"github.com/shahulog/firstvideo/manifest"
	"github.com/shahulog/firstvideo/script"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a Script JSON file into a Timeline JSON file",
	Long: `Read a Script document, an optional voice manifest, and optional BGM
duration/loudness side tables from disk; run the timeline compiler; write
the resulting Timeline as JSON.

Example:
compile compile --script story.json --manifest manifest.json -o story.timeline.json`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("script", "", "path to the Script JSON file (required)")
	compileCmd.Flags().String("manifest", "", "path to the voice manifest JSON file (optional)")
	compileCmd.Flags().String("bgm-durations", "", "path to a JSON object mapping bgm asset id to duration in frames (optional)")
	compileCmd.Flags().String("bgm-loudness", "", "path to a JSON object mapping bgm asset id to loudness gain in dB (optional)")
	compileCmd.Flags().StringP("output", "o", "", "output filename (defaults to compile_<unixtime>.timeline.json)")
	compileCmd.MarkFlagRequired("script")
}

func runCompile(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	log := logging.New("cmd.compile").With().Str("runId", runID).Logger()

	scriptPath, _ := cmd.Flags().GetString("script")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	bgmDurationsPath, _ := cmd.Flags().GetString("bgm-durations")
	bgmLoudnessPath, _ := cmd.Flags().GetString("bgm-loudness")
	output, _ := cmd.Flags().GetString("output")

	scriptData, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading script file %q: %w", scriptPath, err)
	}
	s, err := script.UnmarshalScript(scriptData)
	if err != nil {
		log.Error().Err(err).Msg("script failed validation")
		return err
	}

	var opts compile.Options

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return fmt.Errorf("reading manifest file %q: %w", manifestPath, err)
		}
		if err := json.Unmarshal(data, &opts.Manifest); err != nil {
			return fmt.Errorf("parsing manifest file %q: %w", manifestPath, err)
		}
	}

	if bgmDurationsPath != "" {
		data, err := os.ReadFile(bgmDurationsPath)
		if err != nil {
			return fmt.Errorf("reading bgm-durations file %q: %w", bgmDurationsPath, err)
		}
		var durations manifest.DurationFrames
		if err := json.Unmarshal(data, &durations); err != nil {
			return fmt.Errorf("parsing bgm-durations file %q: %w", bgmDurationsPath, err)
		}
		opts.BgmDurations = durations
	}

	if bgmLoudnessPath != "" {
		data, err := os.ReadFile(bgmLoudnessPath)
		if err != nil {
			return fmt.Errorf("reading bgm-loudness file %q: %w", bgmLoudnessPath, err)
		}
		var loudness manifest.LoudnessGainDb
		if err := json.Unmarshal(data, &loudness); err != nil {
			return fmt.Errorf("parsing bgm-loudness file %q: %w", bgmLoudnessPath, err)
		}
		opts.BgmLoudnessGainDb = loudness
	}

	tl, warnings, err := compile.Compile(s, opts)
	if err != nil {
		log.Error().Err(err).Msg("compile failed")
		return err
	}

	messages := make([]string, len(warnings))
	for i, w := range warnings {
		messages[i] = w.Message
	}
	logging.DrainWarnings(log, runID, messages)

	filename := output
	if filename == "" {
		filename = fmt.Sprintf("compile_%d.timeline.json", time.Now().Unix())
	}

	out, err := json.MarshalIndent(tl, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding timeline: %w", err)
	}
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return fmt.Errorf("writing timeline file %q: %w", filename, err)
	}

	log.Info().Str("output", filename).Int("totalFrames", tl.Meta.TotalFrames).Msg("compiled timeline")
	fmt.Printf("Compiled timeline written to %s\n", filename)
	return nil
}
