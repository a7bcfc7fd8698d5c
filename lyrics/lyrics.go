package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/sig-kill/lyrtag/clientutil"
)

var ErrLyricsNotFound = errors.New("lyrics not found")

type Source interface {
	Search(ctx context.Context, artist, song string) (string, error)
}

// Query is a single (artist, song) lookup. Either field may be empty, sources
// accept partial queries.
type Query struct {
	Artist string
	Song   string
}

// Variants expands a base query with album-level alternatives, in the order
// the lookups should be attempted. Duplicates are dropped.
func Variants(artist, song, altArtist, altSong string) []Query {
	queries := []Query{{artist, song}}
	if altArtist != "" {
		queries = append(queries, Query{altArtist, song})
	}
	if altSong != "" {
		queries = append(queries, Query{artist, altSong})
	}
	if altArtist != "" && altSong != "" {
		queries = append(queries, Query{altArtist, altSong})
	}

	var out []Query
	seen := map[Query]struct{}{}
	for _, q := range queries {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// MultiSource tries each source in order, exhausting all queries against one
// source before moving to the next. An error from a non-final source falls
// through to the next source; an error from the final source surfaces.
type MultiSource []Source

func (ms MultiSource) Search(ctx context.Context, artist, song string) (string, error) {
	lyricData, _, err := ms.SearchQueries(ctx, []Query{{artist, song}})
	return lyricData, err
}

func (ms MultiSource) SearchQueries(ctx context.Context, queries []Query) (string, Source, error) {
	var finalErr error
	for i, src := range ms {
		for _, q := range queries {
			lyricData, err := src.Search(ctx, q.Artist, q.Song)
			if err != nil && !errors.Is(err, ErrLyricsNotFound) {
				if i == len(ms)-1 {
					finalErr = err
				}
				continue
			}
			if lyricData != "" {
				return lyricData, src, nil
			}
		}
	}
	if finalErr != nil {
		return "", nil, finalErr
	}
	return "", nil, ErrLyricsNotFound
}

func (ms MultiSource) String() string {
	var names []string
	for _, src := range ms {
		names = append(names, fmt.Sprint(src))
	}
	return strings.Join(names, ", ")
}

var geniusBaseURL = `https://api.genius.com`
var geniusSelectContent = cascadia.MustCompile(`div[class^="Lyrics__Container-"]`)

// Genius looks up songs through the Genius search API, then pulls the lyrics
// text out of the song page, since the API itself doesn't serve lyrics.
type Genius struct {
	Token     string
	BaseURL   string
	RateLimit time.Duration

	initOnce   sync.Once
	HTTPClient *http.Client
}

func (g *Genius) Search(ctx context.Context, artist, song string) (string, error) {
	g.initOnce.Do(func() {
		if g.BaseURL == "" {
			g.BaseURL = geniusBaseURL
		}
		g.HTTPClient = clientutil.Wrap(g.HTTPClient, clientutil.Chain(
			clientutil.WithRateLimit(g.RateLimit),
		))
	})

	if g.Token == "" {
		return "", ErrLyricsNotFound
	}

	url, _ := url.Parse(g.BaseURL)
	url = url.JoinPath("search")
	url.RawQuery = "q=" + queryEscape(song+" "+artist)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	req.Header.Set("Authorization", "Bearer "+g.Token)
	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("req search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("genius returned non 2xx: %w", StatusError(resp.StatusCode))
	}

	var sr geniusSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(sr.Response.Hits) == 0 || sr.Response.Hits[0].Result.URL == "" {
		return "", ErrLyricsNotFound
	}

	return g.searchPage(ctx, sr.Response.Hits[0].Result.URL)
}

func (g *Genius) searchPage(ctx context.Context, pageURL string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("req page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", ErrLyricsNotFound
	}

	node, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	var out strings.Builder
	iterText(cascadia.Query(node, geniusSelectContent), func(s string) {
		out.WriteString(s + "\n")
	})
	if out.Len() == 0 {
		return "", ErrLyricsNotFound
	}
	return out.String(), nil
}

func (g *Genius) String() string { return "genius" }

type geniusSearchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL       string `json:"url"`
				FullTitle string `json:"full_title"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

var lyricsOVHBaseURL = `https://api.lyrics.ovh/v1`

type LyricsOVH struct {
	BaseURL   string
	RateLimit time.Duration

	initOnce   sync.Once
	HTTPClient *http.Client
}

func (o *LyricsOVH) Search(ctx context.Context, artist, song string) (string, error) {
	o.initOnce.Do(func() {
		if o.BaseURL == "" {
			o.BaseURL = lyricsOVHBaseURL
		}
		o.HTTPClient = clientutil.Wrap(o.HTTPClient, clientutil.Chain(
			clientutil.WithRateLimit(o.RateLimit),
		))
	})

	url, _ := url.Parse(o.BaseURL)
	url = url.JoinPath(artist, song)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("req lyrics: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrLyricsNotFound
	case resp.StatusCode/100 != 2:
		return "", fmt.Errorf("lyrics.ovh returned non 2xx: %w", StatusError(resp.StatusCode))
	}

	var lr struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if lr.Lyrics == "" {
		return "", ErrLyricsNotFound
	}
	return lr.Lyrics, nil
}

func (o *LyricsOVH) String() string { return "lyrics.ovh" }

type StatusError int

func (se StatusError) Error() string {
	return strconv.Itoa(int(se))
}

func queryEscape(s string) string {
	return url.QueryEscape(strings.TrimSpace(s))
}

func iterText(n *html.Node, f func(string)) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		f(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		iterText(c, f)
	}
}
