package dto

import (
	"time"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
)

// QuoteResponse is the wire shape for a served quote.
type QuoteResponse struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// NewQuoteResponse converts a domain quote to its wire shape.
func NewQuoteResponse(q domain.Quote) *QuoteResponse {
	return &QuoteResponse{Quote: q.Text, Author: q.Author}
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Quote string `json:"quote" validate:"required,notempty,max=1000"`
}

// AnalyzeResponse carries the mood classification and the derived theming
// palette. Clients that only care about the pair ignore the palette.
type AnalyzeResponse struct {
	Mood    string         `json:"mood"`
	Color   string         `json:"color"`
	Palette domain.Palette `json:"palette"`
}

// NewAnalyzeResponse builds the analyze wire shape from a mood result.
func NewAnalyzeResponse(result domain.MoodResult) *AnalyzeResponse {
	return &AnalyzeResponse{
		Mood:    string(result.Mood),
		Color:   result.Color,
		Palette: domain.DerivePalette(result.Color),
	}
}

// JournalSaveRequest is the body of POST /api/journal. Any client-supplied
// savedAt is ignored; the store stamps it server-side.
type JournalSaveRequest struct {
	Quote  string `json:"quote" validate:"required,notempty"`
	Author string `json:"author" validate:"required,notempty"`
}

// JournalEntryResponse is one element of the GET /api/journal listing.
type JournalEntryResponse struct {
	ID      string    `json:"_id"`
	Quote   string    `json:"quote"`
	Author  string    `json:"author"`
	SavedAt time.Time `json:"savedAt"`
}

// NewJournalEntryResponse converts a domain entry to its wire shape.
func NewJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:      e.ID,
		Quote:   e.Quote.Text,
		Author:  e.Quote.Author,
		SavedAt: e.SavedAt,
	}
}

// JournalSaveResponse is the 201 body of POST /api/journal.
type JournalSaveResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// BiographyResponse is the body of GET /api/authors/:name. Lookup failures
// are shaped as found=false results, never error statuses.
type BiographyResponse struct {
	Found   bool   `json:"found"`
	Source  string `json:"source"`
	Title   string `json:"title,omitempty"`
	Extract string `json:"extract,omitempty"`
	URL     string `json:"url,omitempty"`
}

// NewBiographyResponse converts a lookup result to its wire shape.
func NewBiographyResponse(result domain.BiographyResult) *BiographyResponse {
	resp := &BiographyResponse{
		Found:  result.Found,
		Source: string(result.Tag),
	}

	if result.Biography != nil {
		resp.Title = result.Biography.Title
		resp.Extract = result.Biography.Extract
		resp.URL = result.Biography.URL
	}

	return resp
}
