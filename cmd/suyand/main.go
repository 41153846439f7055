// suyand is the server half of the split-process input method: it
// owns the composition engine, the candidate window, the session
// registry, and the clipboard history subsystem, and exposes them to
// per-process client shims over a named pipe.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suyan/internal/candidatewindow"
	"suyan/internal/caret"
	"suyan/internal/clipboard"
	"suyan/internal/config"
	"suyan/internal/engine"
	"suyan/internal/ipc"
	"suyan/internal/logging"
	"suyan/internal/registry"
	"suyan/internal/tray"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "suyand:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = "both"
	logCfg.FilePath = cfg.LogPath
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	store := config.NewStore(config.ConfigPath(), cfg)

	sessions := registry.New()
	eng := engine.NewFake()

	d := &daemon{
		cfg:      store,
		sessions: sessions,
		engine:   eng,
		window:   candidatewindow.New(),
		locator:  caret.NewPlatformLocator(),
		logger:   logger,
		log:      logger.Logger,
	}

	if cfg.Clipboard.Enabled {
		if err := d.startClipboard(cfg); err != nil {
			logger.Warn("clipboard subsystem disabled", "error", err)
		}
	}

	server, err := d.startIPCServer()
	if err != nil {
		return fmt.Errorf("start ipc server: %w", err)
	}
	d.server = server

	go d.runTray()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("suyand started")
	<-ctx.Done()
	logger.Info("suyand shutting down")

	return d.shutdown()
}

// daemon holds every long-lived subsystem suyand owns. A single
// instance is created in run() and torn down in shutdown().
type daemon struct {
	cfg       *config.Store
	sessions  *registry.Registry
	engine    engine.Engine
	window    *candidatewindow.Window
	locator   *caret.Locator
	server    *ipc.Server
	clipCtl   *clipboard.Controller
	clipStore *clipboard.Store
	tray      *tray.Tray
	logger    *logging.Logger
	log       *slog.Logger
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func (d *daemon) startClipboard(cfg *config.Config) error {
	store, err := clipboard.Open(cfg.DatabasePath, nowMillis)
	if err != nil {
		return fmt.Errorf("open clipboard store: %w", err)
	}
	d.clipStore = store

	images, err := clipboard.OpenImageStore(config.SuYanDir())
	if err != nil {
		store.Close()
		return fmt.Errorf("open image store: %w", err)
	}

	ctlCfg := clipboard.DefaultControllerConfig()
	ctlCfg.RetentionPolicy = clipboard.RetentionPolicy{
		MaxAgeDays: cfg.Clipboard.MaxAgeDays,
		MaxCount:   cfg.Clipboard.MaxCount,
	}

	ctl := clipboard.NewController(clipboard.NewTextAccessor(), store, images, ctlCfg, d.log)
	ctl.Start()
	d.clipCtl = ctl
	return nil
}

func (d *daemon) startIPCServer() (*ipc.Server, error) {
	serverCfg := ipc.DefaultServerConfig()
	serverCfg.Listen = ipc.Listen
	serverCfg.Logger = d.logger

	handler := newSessionHandler(d.sessions, d.engine, d.window, d.locator, d.cfg, d.log)
	server := ipc.NewServer(serverCfg, handler)
	if err := server.Start(); err != nil {
		return nil, err
	}
	return server, nil
}

func (d *daemon) runTray() {
	d.tray = tray.New(tray.Icons{}, tray.Callbacks{
		Exit: func() {
			if d.server != nil {
				d.server.Stop()
			}
			os.Exit(0)
		},
	}, d.log)
	d.tray.Run()
}

func (d *daemon) shutdown() error {
	if d.server != nil {
		if err := d.server.Stop(); err != nil {
			d.log.Warn("stop ipc server", "error", err)
		}
	}
	if d.clipCtl != nil {
		d.clipCtl.Stop()
	}
	if d.clipStore != nil {
		d.clipStore.Close()
	}
	if d.tray != nil {
		d.tray.Quit()
	}
	return nil
}
