// tags wraps bogem/id3v2 to read and write the ID3v2 frames we care about
package tags

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

var (
	ErrUnreadableTag = errors.New("unreadable tag container")
	ErrWrite         = errors.New("error writing tags")
)

// Frame IDs, per https://id3.org/id3v2.3.0#Declared_ID3v2_frames
const (
	Title       = "TIT2"
	Artist      = "TPE1"
	Album       = "TALB"
	AlbumArtist = "TPE2"
	Lyrics      = "USLT"
)

const usltDescription = "Unsynchronised lyrics/text transcription"

func CanRead(absPath string) bool {
	return strings.EqualFold(filepath.Ext(absPath), ".mp3")
}

// Metadata holds the identification frames of a track. Absent frames are
// empty strings.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
}

type File struct {
	path string
	tag  *id3v2.Tag
}

func Read(path string) (*File, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableTag, err)
	}
	return &File{path: path, tag: tag}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Read(id string) string {
	switch id {
	case Lyrics:
		for _, frame := range f.tag.GetFrames(f.tag.CommonID(usltDescription)) {
			if uslt, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok {
				return uslt.Lyrics
			}
		}
		return ""
	default:
		return f.tag.GetTextFrame(id).Text
	}
}

func (f *File) Metadata() Metadata {
	return Metadata{
		Title:       f.Read(Title),
		Artist:      f.Read(Artist),
		Album:       f.Read(Album),
		AlbumArtist: f.Read(AlbumArtist),
	}
}

func (f *File) Write(id string, value string) {
	switch id {
	case Lyrics:
		f.tag.DeleteFrames(f.tag.CommonID(usltDescription))
		if value == "" {
			return
		}
		f.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            value,
		})
	default:
		f.tag.DeleteFrames(id)
		if value == "" {
			return
		}
		f.tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
	}
}

// Save rewrites the file in place, leaving it untouched on failure. The
// underlying library writes a sibling temp file and renames it over the
// original.
func (f *File) Save() error {
	if err := f.tag.Save(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (f *File) Close() error {
	return f.tag.Close()
}
