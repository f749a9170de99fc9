package journals

import "errors"

// ValidateRegisterJournal checks a create/edit payload beyond binding tags.
func ValidateRegisterJournal(req *RegisterJournalRequest) error {
	if req.JournalDate <= 0 {
		return errors.New("journalDate must be a positive epoch timestamp")
	}
	if req.MainJournalContent == "" {
		return errors.New("mainJournalContent is required")
	}
	if !req.JournalCategory.Valid() {
		return errors.New("journalCategory is not a known category")
	}
	return nil
}
