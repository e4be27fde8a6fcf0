// Package ui launches the terminal user interface.
package ui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/config"
	"tableflip.dev/taskdeck/pkg/logging"
	"tableflip.dev/taskdeck/pkg/remote"
	teaui "tableflip.dev/taskdeck/pkg/tui/app"
)

// ErrNotTerminal is returned when stdout cannot host the UI.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

// UI runs the board against the configured server.
type UI struct {
	Config *config.Config
	// Watch reloads loop timings when the config file changes.
	Watch bool
}

// Do runs the program until the user quits or ctx is done.
func (u *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	cfg := u.Config

	log, err := logging.File(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := remote.New(cfg.URL, remote.WithTimeout(cfg.Timeout), remote.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("starting ui", zap.String("url", client.BaseURL()), zap.Int("fps", cfg.FPS))

	p := teaui.NewProgram(app.New(client), teaui.Options{
		FrameInterval:   cfg.FrameInterval(),
		RefreshInterval: cfg.Refresh,
		HelpStyle:       helpStyle(),
		Context:         ctx,
	}, tea.WithContext(ctx))

	if u.Watch {
		config.Watch(func(next *config.Config, err error) {
			if err != nil {
				log.Warn("config reload failed", zap.Error(err))
				return
			}
			p.Send(teaui.ConfigChangedMsg{
				FrameInterval:   next.FrameInterval(),
				RefreshInterval: next.Refresh,
			})
		})
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// helpStyle picks the glamour style for the terminal background. It must run
// before the program takes over the terminal.
func helpStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
