package lyrics

import (
	"regexp"
	"strings"
)

// langMarkerExpr matches the "eng||" style language prefixes some sources
// leave at the start of a line.
var langMarkerExpr = regexp.MustCompile(`(?i)^\W*[a-z]{2,3}\s*\|\|`)

// Normalizer strips source boilerplate from raw lyrics text. The rule lists
// are data so they can follow the sources when their formatting changes.
// Normalize is idempotent.
type Normalizer struct {
	// DropContaining drops any line containing one of these, case-insensitively.
	DropContaining []string
	// CutAtPrefixes stops processing at the first line starting with one of
	// these, case-insensitively.
	CutAtPrefixes []string
}

func DefaultNormalizer() Normalizer {
	return Normalizer{
		DropContaining: []string{
			"contributors",
			"translations",
			"paroles de la chanson",
		},
		CutAtPrefixes: []string{
			"you might also like",
		},
	}
}

func (n Normalizer) Normalize(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		// markers can stack, keep stripping until the line settles
		for {
			stripped := strings.TrimSpace(langMarkerExpr.ReplaceAllString(line, ""))
			if stripped == line {
				break
			}
			line = stripped
		}

		lower := strings.ToLower(line)
		if containsAny(lower, n.DropContaining) {
			continue
		}
		if hasAnyPrefix(lower, n.CutAtPrefixes) {
			break
		}
		lines = append(lines, line)
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	// runs of three or more blank lines become one
	var out []string
	var blanks int
	for _, line := range lines {
		if line == "" {
			blanks++
			continue
		}
		switch {
		case blanks >= 3:
			out = append(out, "")
		case blanks > 0:
			for range blanks {
				out = append(out, "")
			}
		}
		blanks = 0
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
