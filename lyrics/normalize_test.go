package lyrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sig-kill/lyrtag/lyrics"
)

func TestNormalizeLanguageMarkers(t *testing.T) {
	t.Parallel()

	n := lyrics.DefaultNormalizer()

	assert.Equal(t, "Imagine there's no heaven",
		n.Normalize("eng||\nImagine there's no heaven"))
	assert.Equal(t, "Imagine there's no heaven",
		n.Normalize("fr|| Imagine there's no heaven"))
	assert.Equal(t, "Imagine there's no heaven",
		n.Normalize("((spa||Imagine there's no heaven"))
	assert.Equal(t, "Imagine there's no heaven",
		n.Normalize("eng || Imagine there's no heaven"))

	// markers can stack
	assert.Equal(t, "Imagine there's no heaven",
		n.Normalize("eng||fra||Imagine there's no heaven"))
	assert.Equal(t, "hello",
		n.Normalize("((eng||spa||hello"))

	// four letters isn't a language code
	assert.Equal(t, "abcd||keep me",
		n.Normalize("abcd||keep me"))
}

func TestNormalizeBoilerplate(t *testing.T) {
	t.Parallel()

	n := lyrics.DefaultNormalizer()

	raw := "42 Contributors\nParoles de la chanson Imagine\nImagine all the people\nLivin' life in peace\nYou might also like\nSee Upcoming Pop Shows"
	assert.Equal(t, "Imagine all the people\nLivin' life in peace", n.Normalize(raw))

	raw = "Translations available\nhello"
	assert.Equal(t, "hello", n.Normalize(raw))
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	n := lyrics.DefaultNormalizer()

	assert.Equal(t, "a\nb", n.Normalize("\n\n  a  \nb\n\n\n"))

	// a run of three or more blank lines collapses to one, two stay two
	assert.Equal(t, "a\n\nb", n.Normalize("a\n\n\n\nb"))
	assert.Equal(t, "a\n\n\nb", n.Normalize("a\n\n\nb"))

	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("\n \n\t\n"))
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	n := lyrics.DefaultNormalizer()

	for _, raw := range []string{
		"",
		"eng||\nImagine there's no heaven\n\n\n\nAbove us, only sky\n",
		"eng||fra||Imagine there's no heaven",
		"((eng||spa||hello",
		"eng ||deu ||hello",
		"42 Contributors\nhello\n\nworld\nYou might also like\njunk",
		"plain\ntext\nwith\nno\nboilerplate",
		" \n\n\n \n",
	} {
		once := n.Normalize(raw)
		assert.Equal(t, once, n.Normalize(once), "input %q", raw)
	}
}

func TestNormalizeCustomRules(t *testing.T) {
	t.Parallel()

	n := lyrics.Normalizer{
		DropContaining: []string{"advert"},
		CutAtPrefixes:  []string{"-- end --"},
	}

	raw := "keep\nan Advert line\nalso keep\n-- End -- of lyrics\ndropped"
	assert.Equal(t, "keep\nalso keep", n.Normalize(raw))

	// contributor lines survive without the default rules
	var bare lyrics.Normalizer
	assert.Equal(t, "42 Contributors\nhello", bare.Normalize("42 Contributors\nhello"))
}
