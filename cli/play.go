package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-avril/debug"
	"go-avril/midi"
	"go-avril/sequencer"
	"go-avril/theme"
	"go-avril/tui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	PieceOptions
	Port     string
	TUI      bool
	Palette  string
	DebugLog bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the piece on a MIDI output",
		Long: `Compose the configured piece and play it in real time on the first MIDI
output port whose name starts with the configured prefix.

Ctrl-C (or q in the TUI) stops playback and silences the synth.

Example:
  avril play
  avril play --seed "paper lantern" --phrases 0 --tui
  avril play --port "Midi Through" -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "output port name prefix (overrides config)")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "show a now-playing view")
	cmd.Flags().StringVar(&opts.Palette, "palette", "", "GIMP palette for the TUI")
	cmd.Flags().BoolVar(&opts.DebugLog, "debug-log", false, "log every event to ~/.config/go-avril/debug.log")

	return cmd
}

func runPlay(cmd *cobra.Command, opts *PlayOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	opts.apply(cmd, cfg)
	if cmd.Flags().Changed("port") {
		cfg.Output.PortPrefix = opts.Port
	}

	piece, err := sequencer.Compose(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compose", err)
	}

	th := theme.Default()
	if opts.Palette != "" {
		palette, err := theme.LoadGPL(opts.Palette)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load palette", err)
		}
		th = theme.New(palette)
	}

	// the TUI owns the terminal, so logs only go to the file
	logOpts := debug.Options{Console: !opts.TUI, Verbose: opts.Verbose}
	if opts.DebugLog {
		if logOpts.File, err = debug.LogPath(); err != nil {
			return WrapExitError(ExitCommandError, "failed to locate debug log", err)
		}
	}
	logger, closeLog, err := debug.New(logOpts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open log", err)
	}
	defer closeLog()

	// Setup signal handling for graceful shutdown
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	out, err := midi.OpenOutput(ctx, cfg.Output.PortPrefix)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open MIDI output", err)
	}
	defer midi.CloseDriver()
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warn("error closing output", zap.Error(err))
		}
	}()

	logger.Info("playing",
		zap.String("port", out.Name()),
		zap.String("seed", piece.Seed),
		zap.Stringer("tonic", piece.Key.Tonic()),
		zap.String("scale", piece.Key.Scale().Name()),
		zap.Duration("length", piece.Length),
	)

	if opts.TUI {
		err = playWithTUI(ctx, cancel, out, logger, piece, th)
	} else {
		err = sequencer.NewPlayer(out, sequencer.WithLogger(logger)).Play(ctx, piece.Events)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "playback failed", err)
	}
	return nil
}

func playWithTUI(ctx context.Context, cancel context.CancelFunc, sink sequencer.Sink, logger *zap.Logger, piece *sequencer.Piece, th *theme.Theme) error {
	status := make(chan sequencer.Status, 64)
	done := make(chan error, 1)
	player := sequencer.NewPlayer(sink, sequencer.WithLogger(logger), sequencer.WithStatus(status))
	go func() {
		done <- player.Play(ctx, piece.Events)
	}()

	final, err := tea.NewProgram(tui.NewModel(piece, th, status, done, cancel), tea.WithAltScreen()).Run()
	if m, ok := final.(tui.Model); ok && m.Finished() {
		return m.Err()
	}

	// the program quit before the player did
	cancel()
	playErr := <-done
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return playErr
}
