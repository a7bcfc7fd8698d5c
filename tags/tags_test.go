package tags_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-kill/lyrtag/tags"
)

func TestCanRead(t *testing.T) {
	t.Parallel()

	assert.True(t, tags.CanRead("a.mp3"))
	assert.True(t, tags.CanRead("a.MP3"))
	assert.True(t, tags.CanRead("/some/dir/a.Mp3"))
	assert.False(t, tags.CanRead("a.flac"))
	assert.False(t, tags.CanRead("a.mp3.bak"))
	assert.False(t, tags.CanRead("amp3"))
}

func TestReadUntagged(t *testing.T) {
	t.Parallel()

	path := newMP3(t)
	f, err := tags.Read(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, tags.Metadata{}, f.Metadata())
	assert.Empty(t, f.Read(tags.Lyrics))
}

func TestReadWriteRoundTrip(t *testing.T) {
	t.Parallel()

	path := newMP3(t)

	f, err := tags.Read(path)
	require.NoError(t, err)
	f.Write(tags.Title, "Imagine")
	f.Write(tags.Artist, "John Lennon")
	f.Write(tags.Album, "Imagine")
	f.Write(tags.AlbumArtist, "John Lennon")
	f.Write(tags.Lyrics, "Imagine there's no heaven\nIt's easy if you try")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = tags.Read(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, tags.Metadata{
		Title:       "Imagine",
		Artist:      "John Lennon",
		Album:       "Imagine",
		AlbumArtist: "John Lennon",
	}, f.Metadata())
	assert.Equal(t, "Imagine there's no heaven\nIt's easy if you try", f.Read(tags.Lyrics))
}

func TestWriteLyricsReplaces(t *testing.T) {
	t.Parallel()

	path := newMP3(t)

	writeLyrics := func(text string) {
		f, err := tags.Read(path)
		require.NoError(t, err)
		f.Write(tags.Lyrics, text)
		require.NoError(t, f.Save())
		require.NoError(t, f.Close())
	}

	writeLyrics("old lyrics")
	writeLyrics("new lyrics")

	f, err := tags.Read(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "new lyrics", f.Read(tags.Lyrics))
}

func TestWriteEmptyClears(t *testing.T) {
	t.Parallel()

	path := newMP3(t)

	f, err := tags.Read(path)
	require.NoError(t, err)
	f.Write(tags.Lyrics, "some lyrics")
	f.Write(tags.Title, "Imagine")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = tags.Read(path)
	require.NoError(t, err)
	f.Write(tags.Lyrics, "")
	f.Write(tags.Title, "")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = tags.Read(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Empty(t, f.Read(tags.Lyrics))
	assert.Empty(t, f.Read(tags.Title))
}

func TestSaveFailureLeavesFileUntouched(t *testing.T) {
	t.Parallel()
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	path := newMP3(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := tags.Read(path)
	require.NoError(t, err)
	defer f.Close()
	f.Write(tags.Lyrics, "some lyrics")

	// saving writes a sibling temp file, so a read-only dir fails the save
	dir := filepath.Dir(path)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	require.ErrorIs(t, f.Save(), tags.ErrWrite)

	require.NoError(t, os.Chmod(dir, 0o755))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.mp3")
	data := append([]byte("ID3\x03\x00\x00\xff\xff\xff\xff"), make([]byte, 32)...)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := tags.Read(path)
	require.ErrorIs(t, err, tags.ErrUnreadableTag)
}

func TestReadMissing(t *testing.T) {
	t.Parallel()

	_, err := tags.Read(filepath.Join(t.TempDir(), "nope.mp3"))
	require.ErrorIs(t, err, tags.ErrUnreadableTag)
}

func newMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	data := append([]byte{0xff, 0xfb, 0x90, 0x44}, make([]byte, 412)...)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
