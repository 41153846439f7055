package clipboard

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, acc Accessor) (*Controller, *Store) {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "clip.db"), func() int64 { return time.Now().UnixMilli() })
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	images, err := OpenImageStore(t.TempDir())
	require.NoError(t, err)

	cfg := DefaultControllerConfig()
	cfg.PollInterval = 5 * time.Millisecond
	cfg.RetentionEvery = 0

	c := NewController(acc, store, images, cfg, nil)
	return c, store
}

func TestControllerPersistsTextContent(t *testing.T) {
	acc := &fakeAccessor{seq: []Content{{Type: ContentText, Data: []byte("copied text")}}}
	c, store := newTestController(t, acc)

	c.Start()
	defer c.Stop()

	require.Eventually(t, func() bool {
		n, err := store.RecordCount()
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)

	records, err := store.GetAllRecords(10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "copied text", records[0].Content)
}

func TestControllerPasteBackUpdatesLastUsed(t *testing.T) {
	acc := &fakeAccessor{seq: []Content{{Type: ContentText, Data: []byte("x")}}}
	c, store := newTestController(t, acc)

	res, err := store.AddRecord(Record{Type: ContentText, Content: "existing", ContentHash: "h"})
	require.NoError(t, err)
	before, err := store.GetRecord(res.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	rec, err := c.PasteBack(res.ID)
	require.NoError(t, err)
	require.Equal(t, "existing", rec.Content)

	after, err := store.GetRecord(res.ID)
	require.NoError(t, err)
	require.Greater(t, after.LastUsedAt, before.LastUsedAt)
}

func TestControllerPasteBackMissingRecordErrors(t *testing.T) {
	acc := &fakeAccessor{seq: []Content{{Type: ContentText, Data: []byte("x")}}}
	c, _ := newTestController(t, acc)

	_, err := c.PasteBack(999)
	require.Error(t, err)
}
