package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/pflag"

	"racer/internal/config"
	"racer/internal/desktop"
	"racer/internal/game"
	"racer/internal/logging"
	"racer/internal/track"
	"racer/internal/tuner"
)

// defaultLogFile receives the log while the tuning panel owns the terminal.
const defaultLogFile = "racer.log"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	dir, _ := fs.GetString("config-dir")
	cfg, err := config.Load(dir, fs)
	if err != nil {
		return err
	}

	console := io.Writer(os.Stderr)
	logFile := cfg.LogFile
	if cfg.Tuner.Enabled {
		console = io.Discard
		if logFile == "" {
			logFile = filepath.Join(dir, defaultLogFile)
		}
	}
	var file io.Writer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		file = f
	}
	log := logging.New(cfg.LogLevel, console, file)

	tr := track.LoadOrFallback(cfg.Track.Visual, cfg.Track.Mask, cfg.Track.Width, cfg.Track.Height, log)
	presets, err := cfg.Presets()
	if err != nil {
		return err
	}
	tuning := game.NewTuning(cfg.Physics.WallStickiness, cfg.Physics.WallBounceFactor)
	race := game.NewRace(tr, tuning, presets, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	if cfg.Tuner.Enabled {
		screen, err := tuner.Open()
		if err != nil {
			log.Warn().Err(err).Msg("Tuner unavailable, continuing without the panel")
		} else {
			panel := tuner.New(screen, race, log)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := panel.Run(ctx); errors.Is(err, tuner.ErrInterrupted) {
					log.Info().Msg("Interrupted from the tuning panel")
					cancel()
				}
			}()
		}
	}

	err = desktop.Run(ctx, cfg, race, log)
	cancel()
	wg.Wait()
	return err
}
