package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sig-kill/lyrtag/tags"
)

func main() {
	var errs []error
	for _, path := range os.Args[1:] {
		f, err := tags.Read(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}

		fmt.Printf("%s\tTitle\t%s\n", path, f.Read(tags.Title))
		fmt.Printf("%s\tArtist\t%s\n", path, f.Read(tags.Artist))
		fmt.Printf("%s\tAlbum\t%s\n", path, f.Read(tags.Album))
		fmt.Printf("%s\tAlbumArtist\t%s\n", path, f.Read(tags.AlbumArtist))
		fmt.Printf("%s\tLyrics\t%q\n", path, f.Read(tags.Lyrics))

		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
			continue
		}
	}

	if err := errors.Join(errs...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
