package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go-avril/midi"
)

// NewPortsCommand creates the ports command.
func NewPortsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI output ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			defer midi.CloseDriver()

			names, err := midi.OutPortNames(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list ports", err)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no MIDI output ports")
				return nil
			}
			for i, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, name)
			}
			return nil
		},
	}
}
