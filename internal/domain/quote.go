// Package domain contains core business entities and rules.
package domain

// Quote is a quotation paired with its author.
// It is an immutable value; identity is the text+author pair.
type Quote struct {
	// Text is the body of the quote.
	Text string

	// Author is who said or wrote the quote.
	Author string
}

// Valid reports whether the quote has both a text and an author.
// Provider items that fail this check are discarded.
func (q Quote) Valid() bool {
	return q.Text != "" && q.Author != ""
}

// SourceTag identifies which retrieval tier produced a quote.
// It is returned to clients via the X-Quote-Source response header.
type SourceTag string

const (
	// SourceAPI means the quote came from a fresh provider fetch.
	SourceAPI SourceTag = "zen-api"

	// SourceCollection means the quote came from the in-memory cache.
	SourceCollection SourceTag = "collection"

	// SourceFallbackRateLimited means the provider answered 429 and no
	// cached batch was available.
	SourceFallbackRateLimited SourceTag = "fallback-rate-limited"

	// SourceFallbackAPIError means the provider failed or returned a
	// malformed batch and no cached batch was available.
	SourceFallbackAPIError SourceTag = "fallback-api-error"

	// SourceFallbackError means an unexpected failure was caught at the
	// outer boundary of quote retrieval.
	SourceFallbackError SourceTag = "fallback-error"
)

// FallbackQuotes is the static last-resort quote table, consulted only
// when neither the provider nor the cache can produce a quote.
var FallbackQuotes = []Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "The journey of a thousand miles begins with one step.", Author: "Lao Tzu"},
	{Text: "What we think, we become.", Author: "Buddha"},
	{Text: "He who has a why to live can bear almost any how.", Author: "Friedrich Nietzsche"},
	{Text: "The unexamined life is not worth living.", Author: "Socrates"},
	{Text: "Turn your wounds into wisdom.", Author: "Oprah Winfrey"},
}
