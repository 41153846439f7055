// Package tray wires a system tray icon exposing the same actions as
// the original Qt tray menu: toggle Chinese/English, open settings,
// show about, and quit — reimplemented on fyne.io/systray instead of
// QSystemTrayIcon/QMenu, with plain callbacks in place of Qt signals.
package tray

import (
	"log/slog"

	"fyne.io/systray"

	"suyan/internal/inputsession"
)

// Callbacks are invoked as the corresponding menu items are clicked.
// Any may be nil to omit that action.
type Callbacks struct {
	ToggleMode   func()
	OpenSettings func()
	ShowAbout    func()
	Exit         func()
}

// Icons supplies the raw icon bytes shown for each input mode; tray
// never embeds image assets itself.
type Icons struct {
	Chinese []byte
	English []byte
}

// Tray owns the systray lifecycle. Run blocks until Quit is called (or
// the process receives the OS tray-quit action), so callers start it
// on its own goroutine.
type Tray struct {
	icons     Icons
	callbacks Callbacks
	log       *slog.Logger

	toggleItem *systray.MenuItem
}

// New creates a Tray; call Run to start it.
func New(icons Icons, callbacks Callbacks, logger *slog.Logger) *Tray {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tray{icons: icons, callbacks: callbacks, log: logger}
}

// Run blocks on systray.Run, building the menu in onReady and cleaning
// up in onExit. Call this from its own goroutine; call Quit to stop.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit asks systray to tear down, which returns control from Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// UpdateIcon switches the tray icon to reflect the active input mode.
func (t *Tray) UpdateIcon(mode inputsession.Mode) {
	if mode == inputsession.ModeEnglish || mode == inputsession.ModeTempEnglish {
		systray.SetIcon(t.icons.English)
		if t.toggleItem != nil {
			t.toggleItem.SetTitle("Switch to Chinese")
		}
		return
	}
	systray.SetIcon(t.icons.Chinese)
	if t.toggleItem != nil {
		t.toggleItem.SetTitle("Switch to English")
	}
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icons.Chinese)
	systray.SetTooltip("SuYan Input Method")

	t.toggleItem = systray.AddMenuItem("Switch to English", "Toggle input mode")
	settingsItem := systray.AddMenuItem("Settings...", "Open settings")
	aboutItem := systray.AddMenuItem("About SuYan", "Show about dialog")
	systray.AddSeparator()
	exitItem := systray.AddMenuItem("Exit", "Quit suyand")

	go func() {
		for {
			select {
			case <-t.toggleItem.ClickedCh:
				t.dispatch(t.callbacks.ToggleMode)
			case <-settingsItem.ClickedCh:
				t.dispatch(t.callbacks.OpenSettings)
			case <-aboutItem.ClickedCh:
				t.dispatch(t.callbacks.ShowAbout)
			case <-exitItem.ClickedCh:
				t.dispatch(t.callbacks.Exit)
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) dispatch(fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("tray callback panicked", "recovered", r)
		}
	}()
	fn()
}

func (t *Tray) onExit() {
	t.log.Info("tray exiting")
}
