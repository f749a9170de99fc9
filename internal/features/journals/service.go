package journals

import (
	"context"
	"fmt"

	"github.com/mptsix/todaydiary/internal/pkg/logger"
	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// Store is the slice of the user store the journal service needs. The user
// document owns the embedded journal list; all mutations here are keyed,
// server-side updates so concurrent edits to different dates never overwrite
// each other through a whole-document rewrite.
type Store interface {
	UpsertJournal(ctx context.Context, userID string, journal Journal) error
	FindJournal(ctx context.Context, userID string, journalDate int64) (*Journal, error)
	SetJournalImage(ctx context.Context, userID string, journalDate int64, image []byte) error
}

// Service implements journal registration, lookup, and photo attachment for
// the authenticated user.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates or replaces the caller's entry for the request's
// journalDate and returns the stored entry. There is no distinct "entry
// already exists" error: edits reuse this path and the latest write wins.
func (s *Service) Register(ctx context.Context, userID string, req *RegisterJournalRequest) (*Journal, error) {
	journal := Journal{
		JournalDate:        req.JournalDate,
		MainJournalContent: req.MainJournalContent,
		JournalLocation:    req.JournalLocation,
		JournalCategory:    req.JournalCategory,
		JournalWeather:     req.JournalWeather,
	}

	if err := s.store.UpsertJournal(ctx, userID, journal); err != nil {
		return nil, fmt.Errorf("register journal for %s: %w", userID, err)
	}

	logger.Debug("journal upserted: user=%s date=%d category=%s", userID, journal.JournalDate, journal.JournalCategory)
	return &journal, nil
}

// Get returns the caller's entry for the given date.
func (s *Service) Get(ctx context.Context, userID string, journalDate int64) (*Journal, error) {
	journal, err := s.store.FindJournal(ctx, userID, journalDate)
	if err != nil {
		return nil, fmt.Errorf("get journal %d for %s: %w", journalDate, userID, err)
	}
	return journal, nil
}

// AttachPicture replaces the image payload of the entry identified by
// journalDate. The entry must already exist.
func (s *Service) AttachPicture(ctx context.Context, userID string, journalDate int64, image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("empty image payload: %w", apperrors.ErrBadRequest)
	}

	if err := s.store.SetJournalImage(ctx, userID, journalDate, image); err != nil {
		return fmt.Errorf("attach picture to journal %d for %s: %w", journalDate, userID, err)
	}

	logger.Debug("journal picture stored: user=%s date=%d size=%d", userID, journalDate, len(image))
	return nil
}
