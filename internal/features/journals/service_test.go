package journals

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// fakeStore keeps journals in memory per user, mirroring the keyed-upsert
// semantics of the real repository.
type fakeStore struct {
	journals map[string]map[int64]Journal
}

func newFakeStore(userIDs ...string) *fakeStore {
	s := &fakeStore{journals: make(map[string]map[int64]Journal)}
	for _, id := range userIDs {
		s.journals[id] = make(map[int64]Journal)
	}
	return s
}

func (s *fakeStore) UpsertJournal(ctx context.Context, userID string, journal Journal) error {
	entries, ok := s.journals[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	entries[journal.JournalDate] = journal
	return nil
}

func (s *fakeStore) FindJournal(ctx context.Context, userID string, journalDate int64) (*Journal, error) {
	entries, ok := s.journals[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	journal, ok := entries[journalDate]
	if !ok {
		return nil, fmt.Errorf("journal %d: %w", journalDate, apperrors.ErrNotFound)
	}
	return &journal, nil
}

func (s *fakeStore) SetJournalImage(ctx context.Context, userID string, journalDate int64, image []byte) error {
	entries, ok := s.journals[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	journal, ok := entries[journalDate]
	if !ok {
		return fmt.Errorf("journal %d: %w", journalDate, apperrors.ErrNotFound)
	}
	journal.JournalImage = image
	entries[journalDate] = journal
	return nil
}

func TestRegister_CreatesEntry(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	journal, err := svc.Register(context.Background(), "user@example.com", &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "Today was great!",
		JournalCategory:    CategoryDaily,
		JournalWeather:     "Sunny",
	})
	require.NoError(t, err)
	require.Equal(t, int64(946684800000), journal.JournalDate)
	require.Equal(t, "Today was great!", journal.MainJournalContent)

	stored, err := svc.Get(context.Background(), "user@example.com", 946684800000)
	require.NoError(t, err)
	require.Equal(t, CategoryDaily, stored.JournalCategory)
}

func TestRegister_SameDateReplacesEntry(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "user@example.com", &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "first draft",
		JournalCategory:    CategoryDaily,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "user@example.com", &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "final version",
		JournalCategory:    CategoryEmotion,
	})
	require.NoError(t, err)

	require.Len(t, store.journals["user@example.com"], 1)
	stored, err := svc.Get(context.Background(), "user@example.com", 946684800000)
	require.NoError(t, err)
	require.Equal(t, "final version", stored.MainJournalContent)
	require.Equal(t, CategoryEmotion, stored.JournalCategory)
}

func TestRegister_UnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "ghost@example.com", &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "hello",
		JournalCategory:    CategoryDaily,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGet_MissingEntry(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	_, err := svc.Get(context.Background(), "user@example.com", 12345)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttachPicture(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "user@example.com", &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "with photo",
		JournalCategory:    CategoryTravel,
	})
	require.NoError(t, err)

	err = svc.AttachPicture(context.Background(), "user@example.com", 946684800000, []byte{0xFF, 0xD8})
	require.NoError(t, err)

	stored, err := svc.Get(context.Background(), "user@example.com", 946684800000)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8}, stored.JournalImage)
}

func TestAttachPicture_MissingEntry(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	err := svc.AttachPicture(context.Background(), "user@example.com", 12345, []byte{0x01})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttachPicture_EmptyImage(t *testing.T) {
	store := newFakeStore("user@example.com")
	svc := NewService(store)

	err := svc.AttachPicture(context.Background(), "user@example.com", 946684800000, nil)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestValidateRegisterJournal(t *testing.T) {
	valid := &RegisterJournalRequest{
		JournalDate:        946684800000,
		MainJournalContent: "content",
		JournalCategory:    CategoryThanks,
	}
	require.NoError(t, ValidateRegisterJournal(valid))

	noDate := *valid
	noDate.JournalDate = 0
	require.Error(t, ValidateRegisterJournal(&noDate))

	noContent := *valid
	noContent.MainJournalContent = ""
	require.Error(t, ValidateRegisterJournal(&noContent))

	badCategory := *valid
	badCategory.JournalCategory = "GROCERY_LIST"
	require.Error(t, ValidateRegisterJournal(&badCategory))
}
