package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/mocks"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

const validEntryID = "507f1f77bcf86cd799439011"

func TestJournalList(t *testing.T) {
	entries := []domain.JournalEntry{
		{ID: validEntryID, Quote: domain.Quote{Text: "saved", Author: "someone"}, SavedAt: time.Now()},
	}

	store := new(mocks.MockJournalStore)
	store.On("List", mock.Anything, ports.JournalQuery{Limit: 20}).Return(entries, nil)

	s := NewJournalService(JournalServiceConfig{Store: store})

	got, err := s.List(context.Background(), ports.JournalQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestJournalSave(t *testing.T) {
	quote := domain.Quote{Text: "worth keeping", Author: "someone"}
	entry := &domain.JournalEntry{ID: validEntryID, Quote: quote, SavedAt: time.Now()}

	store := new(mocks.MockJournalStore)
	store.On("Save", mock.Anything, quote).Return(entry, nil)

	s := NewJournalService(JournalServiceConfig{Store: store})

	got, err := s.Save(context.Background(), quote)
	require.NoError(t, err)
	assert.Equal(t, validEntryID, got.ID)
}

func TestJournalSave_RejectsIncompleteQuote(t *testing.T) {
	store := new(mocks.MockJournalStore)
	s := NewJournalService(JournalServiceConfig{Store: store})

	_, err := s.Save(context.Background(), domain.Quote{Text: "no author"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestJournalRemove(t *testing.T) {
	store := new(mocks.MockJournalStore)
	store.On("Remove", mock.Anything, validEntryID).Return(nil)

	s := NewJournalService(JournalServiceConfig{Store: store})

	err := s.Remove(context.Background(), validEntryID)
	assert.NoError(t, err)
}

func TestJournalRemove_MalformedIDNeverReachesStore(t *testing.T) {
	store := new(mocks.MockJournalStore)
	s := NewJournalService(JournalServiceConfig{Store: store})

	for _, id := range []string{"", "not-hex", "507f1f77bcf86cd79943901", validEntryID + "0"} {
		err := s.Remove(context.Background(), id)
		require.Error(t, err, "id %q", id)
		assert.True(t, domain.IsValidation(err), "id %q", id)
	}

	store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestJournalRemove_MissingEntry(t *testing.T) {
	store := new(mocks.MockJournalStore)
	store.On("Remove", mock.Anything, validEntryID).
		Return(domain.NewNotFoundError("journal entry", validEntryID))

	s := NewJournalService(JournalServiceConfig{Store: store})

	err := s.Remove(context.Background(), validEntryID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestJournal_NilStoreIsNotConfigured(t *testing.T) {
	s := NewJournalService(JournalServiceConfig{})

	_, err := s.List(context.Background(), ports.JournalQuery{})
	assert.True(t, domain.IsNotConfigured(err))

	_, err = s.Save(context.Background(), domain.Quote{Text: "q", Author: "a"})
	assert.True(t, domain.IsNotConfigured(err))

	err = s.Remove(context.Background(), validEntryID)
	assert.True(t, domain.IsNotConfigured(err))
}
