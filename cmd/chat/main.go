package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"geminichat/internal/logging"
	"geminichat/internal/tui"
	"geminichat/internal/widget"
)

type options struct {
	relayURL    string
	timestamps  bool
	themeToggle bool
	timeout     time.Duration
	logLevel    string
	logFile     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "chat",
		Short:         "Terminal chat widget for the Gemini relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	defaultURL := os.Getenv("RELAY_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}

	f := cmd.Flags()
	f.StringVar(&opts.relayURL, "url", defaultURL, "Base URL of the relay service")
	f.BoolVar(&opts.timestamps, "timestamps", true, "Show HH:MM under each message")
	f.BoolVar(&opts.themeToggle, "theme-toggle", true, "Enable ctrl+t dark/light toggle")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Per-request timeout (0 disables)")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (default: discard)")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	// The terminal belongs to the UI; logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		w = f
	}
	logging.Setup(w, opts.logLevel, false)

	session := widget.NewSession(widget.Options{
		ShowTimestamps: opts.timestamps,
		ThemeToggle:    opts.themeToggle,
		RequestTimeout: opts.timeout,
	})
	transport := widget.NewHTTPTransport(opts.relayURL, nil)

	log.Info().Str("relay", opts.relayURL).Msg("Starting chat")

	p := tea.NewProgram(tui.New(ctx, session, transport), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("Chat UI stopped")
		return errors.Wrap(err, "run chat UI")
	}
	return nil
}

// execute reports failures on stderr directly; run redirects the global
// logger away from the terminal.
func execute(ctx context.Context, args []string, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "chat: %v\n", err)
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
