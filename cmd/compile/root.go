package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compiles a narrated-video Script into a frame-precise Timeline",
	Long: `compile turns a Script document (scenes of narrated dialogue, optional
background music configuration) into a Timeline document: an integer-frame
editing plan an external renderer can play back directly.

Use 'compile compile --help', 'compile validate-script --help', or
'compile validate-timeline --help' to see each subcommand's flags.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateScriptCmd)
	rootCmd.AddCommand(validateTimelineCmd)
}
