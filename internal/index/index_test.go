// If you are AI: This file tests keyframe index building, lookup and freshness.
package index

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flvkit/internal/core/protocol/flv"

	"github.com/stretchr/testify/require"
)

// writeSample writes a container with keyframes at 0, 1000 and 2000 ms.
func writeSample(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	w := flv.NewWriter(&buf)
	require.NoError(t, w.WriteHeader(flv.NewHeader(false, true)))
	for _, tag := range []*flv.Tag{
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x01, 0xaa}),
		flv.NewTag(flv.TagTypeVideo, 500, []byte{0x27, 0x01, 0xbb}),
		flv.NewTag(flv.TagTypeVideo, 1000, []byte{0x17, 0x01, 0xcc}),
		flv.NewTag(flv.TagTypeVideo, 1500, []byte{0x27, 0x01}),
		flv.NewTag(flv.TagTypeVideo, 2000, []byte{0x17, 0x01}),
	} {
		require.NoError(t, w.WriteTag(tag))
	}
	path := filepath.Join(dir, "kf.flv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

// newIndex opens an index in a temp dir.
func newIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestScan(t *testing.T) {
	path := writeSample(t, t.TempDir())
	entries, err := Scan(path)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Timestamp: 0, Offset: 13},
		{Timestamp: 1000, Offset: 13 + 2*(11+3+4)},
		{Timestamp: 2000, Offset: 13 + 4*(11+3+4) - 1},
	}, entries)
}

func TestBuildAndLookup(t *testing.T) {
	ix := newIndex(t)
	path := writeSample(t, t.TempDir())

	_, err := ix.Lookup(path, 0)
	require.ErrorIs(t, err, ErrNotIndexed)
	require.False(t, ix.Fresh(path))

	entries, err := ix.Build(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.True(t, ix.Fresh(path))

	cases := []struct {
		ms   uint32
		want uint32
	}{
		{0, 0}, {999, 0}, {1000, 1000}, {1700, 1000}, {2000, 2000}, {90000, 2000},
	}
	for _, tc := range cases {
		e, err := ix.Lookup(path, tc.ms)
		require.NoError(t, err)
		require.Equal(t, tc.want, e.Timestamp, "lookup %d", tc.ms)
	}

	stored, err := ix.Entries(path)
	require.NoError(t, err)
	require.Equal(t, entries, stored)
}

func TestLookupBeforeFirstKeyframe(t *testing.T) {
	ix := newIndex(t)
	require.NoError(t, ix.store("late.flv", nil, []Entry{{Timestamp: 500, Offset: 13}}))
	_, err := ix.Lookup("late.flv", 100)
	require.ErrorIs(t, err, ErrNoKeyframe)
}

func TestEnsureRebuildsStale(t *testing.T) {
	ix := newIndex(t)
	dir := t.TempDir()
	path := writeSample(t, dir)
	require.NoError(t, ix.Ensure(path))
	require.True(t, ix.Fresh(path))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	require.False(t, ix.Fresh(path))
	require.NoError(t, ix.Ensure(path))
	require.True(t, ix.Fresh(path))

	require.Error(t, ix.Ensure(filepath.Join(dir, "missing.flv")))
}
