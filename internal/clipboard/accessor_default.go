package clipboard

import (
	"errors"

	atotto "github.com/atotto/clipboard"
)

// errNoContent signals the clipboard holds nothing new or unsupported;
// Monitor.poll treats it the same as ContentUnknown.
var errNoContent = errors.New("clipboard: no content")

// textAccessor is the default Accessor: it reads clipboard text through
// atotto/clipboard, which wraps the native clipboard API on every
// platform suyand targets. It never sees image data — a build with a
// platform-specific accessor (not wired by default) can report
// ContentImage instead.
type textAccessor struct{}

// NewTextAccessor returns the cross-platform text-only Accessor used
// by cmd/suyand unless a richer platform accessor is configured.
func NewTextAccessor() Accessor {
	return textAccessor{}
}

func (textAccessor) Read() (Content, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return Content{}, err
	}
	if text == "" {
		return Content{}, errNoContent
	}
	return Content{Type: ContentText, Data: []byte(text), Format: "text/plain"}, nil
}
