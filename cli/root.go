// Package cli implements the avril command line.
package cli

import (
	"github.com/spf13/cobra"

	"go-avril/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string // config file; empty means the default location
}

// NewRootCommand creates the root command for the avril CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "avril",
		Short: "avril - generative two-voice MIDI melodies",
		Long: `Plays endlessly varying melodies on a MIDI synthesizer.

Each voice takes a seeded random walk through a musical key, loops a short
phrase of it a few times, then walks somewhere new. The same seed always
plays the same piece.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (default ~/.config/go-avril/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewPortsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// load reads the config named by --config, or the default one.
func (o *RootOptions) load() (*config.Config, error) {
	if o.Config != "" {
		return config.LoadFile(o.Config)
	}
	return config.Load()
}

// configPath is where config commands read and write.
func (o *RootOptions) configPath() (string, error) {
	if o.Config != "" {
		return o.Config, nil
	}
	return config.ConfigPath()
}

// PieceOptions overrides the composition settings of the config file.
type PieceOptions struct {
	Seed    string
	Phrases int
}

func (p *PieceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.Seed, "seed", "s", "", "seed phrase (overrides config)")
	cmd.Flags().IntVar(&p.Phrases, "phrases", 0, "phrases to play, 0 for endless (overrides config)")
}

func (p *PieceOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("seed") {
		cfg.Seed = p.Seed
	}
	if cmd.Flags().Changed("phrases") {
		cfg.Phrases = p.Phrases
	}
}
