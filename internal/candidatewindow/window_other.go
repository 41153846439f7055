//go:build !windows

package candidatewindow

// platformPin is a no-op outside Windows: the development gio window
// is an ordinary decorated-less window, since only the real Windows
// TSF target needs the non-activating/topmost/tool-window treatment.
func platformPin(title string) {}
