// Command geneva-demo restores the original_source/examples/GSimpleEA demo
// (SPEC_FULL §4.13): a cobra root command with a "parabola" subcommand
// (spec §8 scenario 1) and a "resume" subcommand that restarts an
// interrupted run from a checkpoint (spec §8 scenario 4), wiring config,
// population, report, metrics and checkpoint together end to end.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "geneva-demo",
		Short: "Demo driver for the geneva evolutionary optimization core",
	}
	root.AddCommand(newParabolaCmd(&logger))
	root.AddCommand(newResumeCmd(&logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
