package lyrtag

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/sig-kill/lyrtag/lyrics"
	"github.com/sig-kill/lyrtag/tags"
)

type Status string

const (
	StatusWritten         Status = "written"
	StatusSkippedExisting Status = "skipped-existing"
	StatusNotFound        Status = "not-found"
	StatusFailed          Status = "failed"
)

// Outcome is the terminal state of one track's run. Err is set only for
// StatusFailed, Source only for StatusWritten.
type Outcome struct {
	Path   string
	Status Status
	Source string
	Err    error
}

type Summary struct {
	Written         int
	SkippedExisting int
	NotFound        int
	Failed          int
}

func (s *Summary) Add(o Outcome) {
	switch o.Status {
	case StatusWritten:
		s.Written++
	case StatusSkippedExisting:
		s.SkippedExisting++
	case StatusNotFound:
		s.NotFound++
	case StatusFailed:
		s.Failed++
	}
}

func (s Summary) Total() int {
	return s.Written + s.SkippedExisting + s.NotFound + s.Failed
}

type Config struct {
	Sources    lyrics.MultiSource
	Normalizer lyrics.Normalizer
	Overwrite  bool
	Workers    int
}

// FindTracks expands roots into the list of MP3 paths to process. A root may
// be a single file or a directory, which is walked recursively.
func FindTracks(roots ...string) ([]string, error) {
	var paths []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat root: %w", err)
		}
		if !info.IsDir() {
			if !tags.CanRead(root) {
				return nil, fmt.Errorf("%q is not an mp3", root)
			}
			paths = append(paths, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if tags.CanRead(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", root, err)
		}
	}
	return paths, nil
}

// ProcessTracks runs the per-track pipeline over paths with a bounded pool of
// cfg.Workers workers. Every path gets exactly one Outcome, failures included.
func ProcessTracks(ctx context.Context, cfg *Config, paths []string) ([]Outcome, Summary) {
	outcomes := make([]Outcome, len(paths))

	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = ProcessTrack(ctx, cfg, path)
			return nil
		})
	}
	_ = g.Wait()

	var summary Summary
	for _, o := range outcomes {
		summary.Add(o)
	}
	return outcomes, summary
}

// ProcessTree is ProcessTracks over the tracks found under roots.
func ProcessTree(ctx context.Context, cfg *Config, roots ...string) ([]Outcome, Summary, error) {
	paths, err := FindTracks(roots...)
	if err != nil {
		return nil, Summary{}, err
	}
	outcomes, summary := ProcessTracks(ctx, cfg, paths)
	return outcomes, summary, nil
}

func ProcessTrack(ctx context.Context, cfg *Config, path string) Outcome {
	outcome := processTrack(ctx, cfg, path)
	switch outcome.Status {
	case StatusWritten:
		slog.InfoContext(ctx, "wrote lyrics", "path", path, "source", outcome.Source)
	case StatusSkippedExisting:
		slog.DebugContext(ctx, "lyrics already present", "path", path)
	case StatusNotFound:
		slog.InfoContext(ctx, "no lyrics found", "path", path)
	case StatusFailed:
		slog.ErrorContext(ctx, "processing track", "path", path, "err", outcome.Err)
	}
	return outcome
}

func processTrack(ctx context.Context, cfg *Config, path string) Outcome {
	f, err := tags.Read(path)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Err: fmt.Errorf("read tags: %w", err)}
	}
	defer f.Close()

	// don't bother the sources for tracks we'd skip anyway
	if !cfg.Overwrite && f.Read(tags.Lyrics) != "" {
		return Outcome{Path: path, Status: StatusSkippedExisting}
	}

	md := f.Metadata()
	queries := lyrics.Variants(md.Artist, md.Title, md.AlbumArtist, md.Album)

	lyricData, src, err := cfg.Sources.SearchQueries(ctx, queries)
	if errors.Is(err, lyrics.ErrLyricsNotFound) {
		return Outcome{Path: path, Status: StatusNotFound}
	}
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Err: fmt.Errorf("search lyrics: %w", err)}
	}

	lyricData = cfg.Normalizer.Normalize(lyricData)
	if lyricData == "" {
		return Outcome{Path: path, Status: StatusNotFound}
	}

	f.Write(tags.Lyrics, lyricData)
	if err := f.Save(); err != nil {
		return Outcome{Path: path, Status: StatusFailed, Err: fmt.Errorf("save: %w", err)}
	}
	return Outcome{Path: path, Status: StatusWritten, Source: fmt.Sprint(src)}
}
