package social

import (
	"strings"
)

// DefaultMinQueryLength is the length in runes under which a query is
// considered too unspecific to search.
const DefaultMinQueryLength = 200

// StripNonBMP removes characters outside the Unicode Basic Multilingual
// Plane, such as emoji, from post text.
func StripNonBMP(text string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}

		return r
	}, text)
}

// BuildQuery builds the search query for a post: the network site
// restriction followed by the post text with non BMP characters removed.
func (n *Network) BuildQuery(text string) string {
	text = StripNonBMP(text)

	if n.SiteQuery == "" {
		return text
	}

	return n.SiteQuery + " " + text
}
