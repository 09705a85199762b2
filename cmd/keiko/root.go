package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keiko",
		Short: "Keiko - multi-turn conversation evaluation harness",
		Long: `Keiko evaluates optimization artifacts (prompts, skills) by driving
simulated multi-turn conversations against them and grading the resulting
transcripts with an LLM judge.

It emits exactly one metric line on stdout for the outer optimization loop;
everything else is diagnostic output on stderr.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// API keys may live in a .env file; absence is fine.
		_ = godotenv.Load()

		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
