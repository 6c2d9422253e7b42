package cli

import (
	"github.com/spf13/cobra"

	"go-avril/sequencer"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	PieceOptions
	Limit int
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the piece's MIDI events without playing them",
		Long: `Compose the configured piece and print its events, one per line, as the
delay in milliseconds since the previous event followed by the event.

An endless piece needs --limit.

Example:
  avril dump --limit 40
  avril dump --seed "paper lantern" --phrases 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "stop after this many events, 0 for all")

	return cmd
}

func runDump(cmd *cobra.Command, opts *DumpOptions) error {
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must not be negative")
	}
	cfg, err := opts.load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	opts.apply(cmd, cfg)

	piece, err := sequencer.Compose(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compose", err)
	}
	if piece.Length == 0 && opts.Limit == 0 {
		return NewExitError(ExitCommandError, "piece is endless: set --limit or --phrases")
	}

	if err := sequencer.Dump(cmd.OutOrStdout(), piece.Events, opts.Limit); err != nil {
		return WrapExitError(ExitFailure, "failed to write events", err)
	}
	return nil
}
