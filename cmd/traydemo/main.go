//go:build windows

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/windows"

	"wintray/icon"
	"wintray/logger"
	"wintray/menu"
	"wintray/tray"
	"wintray/win32"
)

var version = "dev" // Set at build time via -ldflags "-X main.version=version"

type action int

const (
	actCopyStatus action = iota
	actToggleNotify
	actAbout
	actQuit
)

var actionNames = map[action]string{
	actCopyStatus:   "copy_status",
	actToggleNotify: "toggle_notifications",
	actAbout:        "about",
	actQuit:         "quit",
}

func (a action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

type demoApp struct {
	tray     *tray.Tray[action]
	quit     context.CancelFunc
	caption  string
	menuIcon *icon.Icon
	notify   bool
	handlers map[action]func()
}

func (d *demoApp) menu() menu.Menu[action] {
	check := menu.CheckOff
	if d.notify {
		check = menu.CheckOn
	}
	return menu.Menu[action]{Items: []menu.Item[action]{
		menu.Button[action]{Name: d.caption, Signal: actAbout, Disabled: true},
		menu.Separator[action]{},
		menu.Button[action]{Name: "Copy status", Signal: actCopyStatus, Icon: d.menuIcon},
		menu.Button[action]{Name: "Notifications", Signal: actToggleNotify, Check: check},
		menu.Submenu[action]{Name: "Help", Icon: d.menuIcon, Items: []menu.Item[action]{
			menu.Button[action]{Name: "About", Signal: actAbout},
		}},
		menu.Separator[action]{},
		menu.Button[action]{Name: "Quit", Signal: actQuit},
	}}
}

func (d *demoApp) handle(a action) {
	slog.Debug("menu activation", "action", a.String())
	activations.WithLabelValues(a.String()).Inc()
	if handler, ok := d.handlers[a]; ok {
		handler()
	}
}

func (d *demoApp) onCopyStatus() {
	status := fmt.Sprintf("%s | %s", d.caption, time.Now().Format(time.RFC3339))
	if win32.MessageBox("Status (OK to copy):", status, win32.MB_OKCANCEL) == win32.IDOK {
		if err := win32.SetClipboard(status); err != nil {
			slog.Warn("failed to set clipboard", "error", err)
		}
	}
}

func (d *demoApp) onToggleNotify() {
	d.notify = !d.notify
	if err := d.tray.SetMenu(d.menu()); err != nil {
		slog.Warn("failed to rebuild menu", "error", err)
	}
}

func (d *demoApp) onAbout() {
	win32.MessageBox("About", "wintray demo "+version, win32.MB_OK|win32.MB_ICONINFORMATION)
}

// loadTrayIcon picks the taskbar icon: an .ico file is loaded natively,
// any other image is decoded and converted, and the stock application icon
// is the fallback.
func loadTrayIcon(cfg *config) (windows.Handle, func(), error) {
	noop := func() {}
	if cfg.IconPath == "" {
		h, err := win32.LoadDefaultIcon()
		return h, noop, err
	}
	if strings.EqualFold(filepath.Ext(cfg.IconPath), ".ico") {
		h, err := win32.LoadIconFile(cfg.IconPath)
		if err != nil {
			return 0, noop, err
		}
		return h, func() { win32.DestroyIcon(h) }, nil
	}
	ic, err := icon.FromFile(cfg.IconPath)
	if err != nil {
		return 0, noop, err
	}
	h, err := win32.IconFromImage(ic.RGBA(win32.SmallIconSize()))
	if err != nil {
		return 0, noop, err
	}
	return h, func() { win32.DestroyIcon(h) }, nil
}

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		win32.MessageBox("Error:", err.Error(), win32.MB_ICONERROR)
		return
	}
	logger.SetDefault("traydemo", version, cfg.LogLevel)

	if err := win32.SetProcessSystemDpiAware(); err != nil {
		slog.Warn("failed to set DPI awareness", "error", err)
	}

	caption, err := osCaption()
	if err != nil {
		slog.Warn("failed to query OS caption", "error", err)
		caption = "Windows"
	}

	hicon, releaseIcon, err := loadTrayIcon(cfg)
	if err != nil {
		win32.MessageBox("Error:", err.Error(), win32.MB_ICONERROR)
		return
	}
	defer releaseIcon()

	d := &demoApp{caption: caption, notify: true}
	if cfg.IconPath != "" {
		if ic, err := icon.FromFile(cfg.IconPath); err == nil {
			d.menuIcon = ic
		}
	}

	t, err := tray.New(tray.Options[action]{
		Tooltip: cfg.Tooltip,
		Icon:    hicon,
		Menu:    d.menu(),
	})
	if err != nil {
		win32.MessageBox("Error:", err.Error(), win32.MB_ICONERROR)
		return
	}
	defer t.Close()
	d.tray = t

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.quit = cancel
	d.handlers = map[action]func(){
		actCopyStatus:   d.onCopyStatus,
		actToggleNotify: d.onToggleNotify,
		actAbout:        d.onAbout,
		actQuit:         cancel,
	}

	slog.Info("tray demo running", "version", version, "os", caption)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return serveMetrics(ctx, cfg.MetricsAddr) })
	}
	if cfg.PipeName != "" {
		g.Go(func() error { return servePipe(ctx, cfg.PipeName, d) })
	}
	g.Go(func() error {
		for {
			select {
			case a := <-t.Signals():
				d.handle(a)
			case <-ctx.Done():
				return nil
			}
		}
	})
	if err := g.Wait(); err != nil {
		slog.Error("tray demo exited with error", "error", err)
		os.Exit(1)
	}
}
