package journals

// JournalCategory enumerates the fixed set of diary entry categories.
type JournalCategory string

const (
	CategoryAchievement JournalCategory = "ACHIEVEMENT_JOURNAL"
	CategoryThanks      JournalCategory = "THANKS_JOURNAL"
	CategoryEmotion     JournalCategory = "EMOTION_JOURNAL"
	CategoryDaily       JournalCategory = "DAILY_JOURNAL"
	CategoryTravel      JournalCategory = "TRAVEL_JOURNAL"
)

// AllCategories is the full enumeration, in presentation order. Category
// counts in the sealed profile cover every value here, zeros included.
var AllCategories = []JournalCategory{
	CategoryAchievement,
	CategoryThanks,
	CategoryEmotion,
	CategoryDaily,
	CategoryTravel,
}

// Valid reports whether c is one of the enumerated categories.
func (c JournalCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Journal is one diary entry, embedded in its owner's user document.
// JournalDate (epoch millis) is the entry's identity key within that user:
// at most one entry exists per distinct date value.
type Journal struct {
	JournalDate        int64           `bson:"journalDate" json:"journalDate" example:"946684800000"`
	MainJournalContent string          `bson:"mainJournalContent" json:"mainJournalContent" example:"Today was great!"`
	JournalLocation    string          `bson:"journalLocation" json:"journalLocation" example:"37.5665, 126.9780"`
	JournalCategory    JournalCategory `bson:"journalCategory" json:"journalCategory" example:"ACHIEVEMENT_JOURNAL"`
	JournalWeather     string          `bson:"journalWeather" json:"journalWeather" example:"Sunny"`
	JournalImage       []byte          `bson:"journalImage,omitempty" json:"journalImage,omitempty" swaggerignore:"true"`
}

// JournalSealed is the trimmed entry view used by the sealed profile:
// content and timestamp only, never the image payload.
type JournalSealed struct {
	MainJournalContent string `bson:"mainJournalContent" json:"mainJournalContent"`
	JournalDate        int64  `bson:"journalDate" json:"journalDate"`
}

// RegisterJournalRequest is the payload for creating or editing an entry.
// Create and edit share the same keyed-upsert path: the latest write for a
// journalDate always wins.
type RegisterJournalRequest struct {
	JournalDate        int64           `json:"journalDate" binding:"required"`
	MainJournalContent string          `json:"mainJournalContent" binding:"required"`
	JournalLocation    string          `json:"journalLocation"`
	JournalCategory    JournalCategory `json:"journalCategory" binding:"required"`
	JournalWeather     string          `json:"journalWeather"`
}

// JournalResponse wraps the stored entry returned after registration.
type JournalResponse struct {
	RegisteredJournal Journal `json:"registeredJournal"`
}
