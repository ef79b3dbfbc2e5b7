package domain

import "strings"

// Biography is structured encyclopedia content for an author.
type Biography struct {
	// Title is the canonical article title the content came from.
	Title string

	// Extract is the summary text.
	Extract string

	// URL points at the full article, when the source provides one.
	URL string
}

// BiographyLookupTag describes how (or whether) a biography was resolved.
type BiographyLookupTag string

const (
	// BiographyDirect means the summary-by-title lookup succeeded.
	BiographyDirect BiographyLookupTag = "summary"

	// BiographyViaSearch means the full-text search fallback resolved
	// the article.
	BiographyViaSearch BiographyLookupTag = "search"

	// BiographyNotFound means every strategy ran and found nothing.
	BiographyNotFound BiographyLookupTag = "not-found"

	// BiographyLookupError means a strategy failed for a non-404 reason
	// and no later strategy recovered.
	BiographyLookupError BiographyLookupTag = "lookup-error"
)

// BiographyResult is the tagged outcome of a lookup. Failures are results,
// not errors, so the caller can render a graceful empty state.
type BiographyResult struct {
	Found     bool
	Tag       BiographyLookupTag
	Biography *Biography
}

// honorificPrefixes and honorificSuffixes are stripped from author names
// before encyclopedia lookup.
var honorificPrefixes = []string{
	"dr.", "dr", "mr.", "mr", "mrs.", "mrs", "ms.", "ms",
	"prof.", "prof", "sir", "dame", "lord", "lady", "rev.", "rev",
}

var honorificSuffixes = []string{
	"jr.", "jr", "sr.", "sr", "ii", "iii", "iv", "phd", "ph.d.", "esq.", "esq",
}

// NormalizeAuthorName strips common honorific prefixes and suffixes and
// collapses surrounding whitespace. The middle of the name is untouched.
func NormalizeAuthorName(name string) string {
	fields := strings.Fields(name)

	for len(fields) > 1 && isHonorific(fields[0], honorificPrefixes) {
		fields = fields[1:]
	}

	for len(fields) > 1 && isHonorific(fields[len(fields)-1], honorificSuffixes) {
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " ")
}

func isHonorific(word string, table []string) bool {
	lowered := strings.ToLower(strings.TrimSuffix(word, ","))
	for _, h := range table {
		if lowered == h {
			return true
		}
	}

	return false
}
