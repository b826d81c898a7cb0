package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shahulog/firstvideo/logging"
	"github.com/shahulog/firstvideo/script"
	"github.com/shahulog/firstvideo/timeline"
)

var validateScriptCmd = &cobra.Command{
	Use:   "validate-script <script.json>",
	Short: "Validate a Script JSON file without compiling it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := uuid.NewString()
		log := logging.New("cmd.validate-script").With().Str("runId", runID).Logger()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading script file %q: %w", args[0], err)
		}
		if _, err := script.UnmarshalScript(data); err != nil {
			log.Error().Err(err).Msg("script is invalid")
			return err
		}
		log.Info().Msg("script is valid")
		fmt.Println("OK")
		return nil
	},
}

var validateTimelineCmd = &cobra.Command{
	Use:   "validate-timeline <timeline.json>",
	Short: "Validate a Timeline JSON file against the I1-I7 invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := uuid.NewString()
		log := logging.New("cmd.validate-timeline").With().Str("runId", runID).Logger()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading timeline file %q: %w", args[0], err)
		}

		var tl timeline.Timeline
		if err := tl.UnmarshalJSON(data); err != nil {
			log.Error().Err(err).Msg("timeline is malformed")
			return err
		}
		if err := timeline.Validate(&tl); err != nil {
			log.Error().Err(err).Msg("timeline is invalid")
			return err
		}
		log.Info().Msg("timeline is valid")
		fmt.Println("OK")
		return nil
	},
}
