package crawl

import "github.com/PuerkitoBio/purell"

// normalizeFlags is the purell flag set used for visited-set identity.
// Fragments are removed so URLs differing only by fragment are duplicates.
const normalizeFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagRemoveDefaultPort |
	purell.FlagRemoveFragment |
	purell.FlagDecodeUnnecessaryEscapes |
	purell.FlagSortQuery |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveDotSegments

// NormalizeURL returns the canonical form of a URL used for frontier
// deduplication and skip lists.
func NormalizeURL(rawURL string) (string, error) {
	return purell.NormalizeURLString(rawURL, normalizeFlags)
}
