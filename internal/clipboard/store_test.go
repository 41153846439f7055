package clipboard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *int64) {
	t.Helper()
	clock := int64(1_000)
	path := filepath.Join(t.TempDir(), "clipboard.db")
	s, err := Open(path, func() int64 { return clock })
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &clock
}

func TestAddRecordInsertsNew(t *testing.T) {
	s, _ := newTestStore(t)

	res, err := s.AddRecord(Record{Type: ContentText, Content: "hello", ContentHash: "h1"})
	require.NoError(t, err)
	require.True(t, res.IsNew)
	require.NotZero(t, res.ID)

	got, err := s.GetRecord(res.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)
}

func TestAddRecordDedupsByHash(t *testing.T) {
	s, clock := newTestStore(t)

	first, err := s.AddRecord(Record{Type: ContentText, Content: "dup", ContentHash: "same"})
	require.NoError(t, err)

	*clock = 2_000
	second, err := s.AddRecord(Record{Type: ContentText, Content: "dup", ContentHash: "same"})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.False(t, second.IsNew)

	rec, err := s.GetRecord(first.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2_000, rec.LastUsedAt)
}

func TestFindByHashMissingReturnsNil(t *testing.T) {
	s, _ := newTestStore(t)
	got, err := s.FindByHash("does-not-exist")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSearchTextFindsMatchingRecord(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddRecord(Record{Type: ContentText, Content: "the quick brown fox", ContentHash: "a"})
	require.NoError(t, err)
	_, err = s.AddRecord(Record{Type: ContentText, Content: "lazy dog", ContentHash: "b"})
	require.NoError(t, err)

	results, err := s.SearchText("quick", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "the quick brown fox", results[0].Content)
}

func TestDeleteExpiredRecordsByCount(t *testing.T) {
	s, clock := newTestStore(t)
	for i := 0; i < 5; i++ {
		*clock++
		_, err := s.AddRecord(Record{Type: ContentText, Content: "x", ContentHash: string(rune('a' + i))})
		require.NoError(t, err)
	}

	deleted, err := s.DeleteExpiredRecords(RetentionPolicy{MaxCount: 3})
	require.NoError(t, err)
	require.Len(t, deleted, 2)

	remaining, err := s.RecordCount()
	require.NoError(t, err)
	require.EqualValues(t, 3, remaining)
}

func TestDeleteExpiredRecordsByAge(t *testing.T) {
	s, clock := newTestStore(t)
	_, err := s.AddRecord(Record{Type: ContentText, Content: "old", ContentHash: "old"})
	require.NoError(t, err)

	*clock += 10 * 24 * 60 * 60 * 1000
	_, err = s.AddRecord(Record{Type: ContentText, Content: "new", ContentHash: "new"})
	require.NoError(t, err)

	deleted, err := s.DeleteExpiredRecords(RetentionPolicy{MaxAgeDays: 5})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.Equal(t, "old", deleted[0].Content)
}

func TestDeleteExpiredRecordsIntersectsAgeAndCount(t *testing.T) {
	s, clock := newTestStore(t)

	a, err := s.AddRecord(Record{Type: ContentText, Content: "old-stale", ContentHash: "a"})
	require.NoError(t, err)
	b, err := s.AddRecord(Record{Type: ContentText, Content: "old-recent", ContentHash: "b"})
	require.NoError(t, err)

	*clock += 10 * 24 * 60 * 60 * 1000 // past the 5-day age cutoff
	_, err = s.AddRecord(Record{Type: ContentText, Content: "new-1", ContentHash: "c"})
	require.NoError(t, err)
	*clock++
	_, err = s.AddRecord(Record{Type: ContentText, Content: "new-2", ContentHash: "d"})
	require.NoError(t, err)
	*clock++
	_, err = s.AddRecord(Record{Type: ContentText, Content: "new-3", ContentHash: "e"})
	require.NoError(t, err)

	// touching b makes it the most-recently-used record despite being
	// old: it must survive a MaxCount=3 cut even though it's also
	// old-expired, since only the intersection of both conditions
	// should be deleted.
	*clock++
	require.NoError(t, s.UpdateLastUsedTime(b.ID))

	deleted, err := s.DeleteExpiredRecords(RetentionPolicy{MaxAgeDays: 5, MaxCount: 3})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.Equal(t, a.ID, deleted[0].ID)

	remaining, err := s.RecordCount()
	require.NoError(t, err)
	require.EqualValues(t, 4, remaining)
}

func TestClearAllRemovesEverything(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddRecord(Record{Type: ContentText, Content: "x", ContentHash: "x"})
	require.NoError(t, err)

	deleted, err := s.ClearAll()
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	count, err := s.RecordCount()
	require.NoError(t, err)
	require.Zero(t, count)
}
