// Package mocks provides hand-written testify mocks for the ports
// interfaces. Used by application and handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// MockQuoteProvider is a mock implementation of ports.QuoteProvider.
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) FetchQuotes(ctx context.Context, limit int) ([]domain.Quote, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Quote), args.Error(1)
}

// MockMoodAnalyzer is a mock implementation of ports.MoodAnalyzer.
type MockMoodAnalyzer struct {
	mock.Mock
}

func (m *MockMoodAnalyzer) AnalyzeMood(ctx context.Context, text string) (domain.MoodResult, error) {
	args := m.Called(ctx, text)

	return args.Get(0).(domain.MoodResult), args.Error(1)
}

// MockJournalStore is a mock implementation of ports.JournalStore.
type MockJournalStore struct {
	mock.Mock
}

func (m *MockJournalStore) List(ctx context.Context, q ports.JournalQuery) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalStore) Save(ctx context.Context, quote domain.Quote) (*domain.JournalEntry, error) {
	args := m.Called(ctx, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalStore) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockBiographyClient is a mock implementation of ports.BiographyClient.
type MockBiographyClient struct {
	mock.Mock
}

func (m *MockBiographyClient) SummaryByTitle(ctx context.Context, title string) (*domain.Biography, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Biography), args.Error(1)
}

func (m *MockBiographyClient) SearchTitle(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)

	return args.String(0), args.Error(1)
}
