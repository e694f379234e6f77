package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
	"codeberg.org/miketth/audiodeck/pkg/deck"
	"codeberg.org/miketth/audiodeck/pkg/hotkey"
	"codeberg.org/miketth/audiodeck/pkg/pulse"
	jsonstore "codeberg.org/miketth/audiodeck/pkg/settingsstore/json"
	"codeberg.org/miketth/audiodeck/pkg/settingsstore/memory"
	"codeberg.org/miketth/audiodeck/pkg/settingsstore/sqlite"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	socketPath := flag.String("socket", "", "deck daemon socket (defaults to $DECKD_SOCKET)")
	storeKind := flag.String("store", "sqlite", "settings store backend: sqlite, json, memory or none")
	pactlPath := flag.String("pactl-path", "pactl", "path to the pactl binary")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := deck.Connect(*socketPath)
	if err != nil {
		return fmt.Errorf("connect to deck daemon: %w", err)
	}
	defer client.Close()

	provider := pulse.NewProvider(*pactlPath, log)
	injector := hotkey.NewInjector(log)

	errChan := make(chan error, 4)
	var wg sync.WaitGroup

	store, err := newStore(ctx, *storeKind, log, errChan, &wg)
	if err != nil {
		return fmt.Errorf("create settings store: %w", err)
	}

	plugin := audiodeck.New(provider, injector, client, store, log)

	log.Info("started audiodeck")

	wg.Add(3)

	go func() {
		defer wg.Done()
		err := plugin.ProcessEvents(ctx, client)
		if err != nil {
			errChan <- fmt.Errorf("process events: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := provider.Subscribe(ctx, plugin.OnDefaultDeviceChanged)
		if err != nil {
			errChan <- fmt.Errorf("watch default devices: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

func newStore(ctx context.Context, kind string, log *zap.SugaredLogger, errChan chan<- error, wg *sync.WaitGroup) (audiodeck.SettingsStore, error) {
	switch kind {
	case "none":
		return nil, nil

	case "memory":
		return memory.NewStore(), nil

	case "json":
		dir, err := getDataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}

		store, err := jsonstore.NewStore(filepath.Join(dir, "settings.json"))
		if err != nil {
			return nil, fmt.Errorf("create json store: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.SaveLooper(ctx)
			if err != nil {
				errChan <- fmt.Errorf("save settings: %w", err)
			}
		}()

		return store, nil

	case "sqlite":
		dir, err := getDataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}

		return sqlite.NewStore(filepath.Join(dir, "settings.db"), log)
	}

	return nil, fmt.Errorf("unknown store backend: %q", kind)
}

func getDataDir() (string, error) {
	dir := filepath.Join(xdg.DataHome, "audiodeck")
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", fmt.Errorf("create audiodeck data dir: %w", err)
	}

	return dir, nil
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	// set funky message
	_, _ = daemon.SdNotify(false, "STATUS=Wildly switching audio devices! 🔊")

	// notify watchdog
	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
