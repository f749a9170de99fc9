package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mptsix/todaydiary/internal/features/journals"
)

// RoleUser is the default role assigned at registration.
const RoleUser = "ROLE_USER"

// User is the single document stored per account. Profile fields,
// credentials, the embedded journal list and the follow list all live
// together; journal entries are unique by journalDate within the document.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// Natural key used for login and as token subject. Immutable after
	// registration.
	UserID       string `bson:"userId" json:"userId"`
	UserPassword string `bson:"userPassword" json:"-"`
	// Optional secondary credential, checked independently at login.
	AuxiliaryPassword string `bson:"auxiliaryPassword,omitempty" json:"-"`

	UserName             string `bson:"userName" json:"userName"`
	UserDateOfBirth      string `bson:"userDateOfBirth" json:"userDateOfBirth"`
	UserPasswordQuestion string `bson:"userPasswordQuestion" json:"-"`
	UserPasswordAnswer   string `bson:"userPasswordAnswer" json:"-"`

	Roles []string `bson:"roles" json:"roles"`

	ProfilePictureURL string `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	ProfilePictureID  string `bson:"profilePictureId,omitempty" json:"-"`

	JournalData []journals.Journal `bson:"journalData" json:"journalData,omitempty"`
	FollowList  []string           `bson:"followList" json:"followList,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Follows reports whether this user's follow list contains targetID.
func (u *User) Follows(targetID string) bool {
	for _, id := range u.FollowList {
		if id == targetID {
			return true
		}
	}
	return false
}

// UserRegisterRequest is the registration payload. UserID doubles as the
// login identifier and is expected to be an email address.
type UserRegisterRequest struct {
	UserID               string `json:"userId" binding:"required"`
	UserPassword         string `json:"userPassword" binding:"required"`
	UserName             string `json:"userName" binding:"required"`
	UserDateOfBirth      string `json:"userDateOfBirth"`
	UserPasswordQuestion string `json:"userPasswordQuestion"`
	UserPasswordAnswer   string `json:"userPasswordAnswer"`
}

// UserRegisterResponse returns the registered natural key.
type UserRegisterResponse struct {
	RegisteredID string `json:"registeredId"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	UserID       string `json:"userId" binding:"required"`
	UserPassword string `json:"userPassword" binding:"required"`
}

// LoginResponse carries the issued identity token.
type LoginResponse struct {
	UserToken string `json:"userToken"`
}

// PasswordChangeRequest carries the current credential and its replacement.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserFiltered is one row of a follow listing or a name search: identity
// fields plus whether the caller follows that user.
type UserFiltered struct {
	UserName                 string `json:"userName"`
	UserID                   string `json:"userId"`
	IsUserFollowedTargetUser bool   `json:"isUserFollowedTargetUser"`
}

// JournalCategoryCount pairs one category with the caller's entry count.
type JournalCategoryCount struct {
	Category journals.JournalCategory `json:"category"`
	Count    int                      `json:"count"`
}

// UserSealed is the read-only profile summary: identity, per-category entry
// counts over the full category enumeration, and the most recent entries
// (content and timestamp only).
type UserSealed struct {
	UserID              string                   `json:"userId"`
	UserName            string                   `json:"userName"`
	JournalCategoryList []JournalCategoryCount   `json:"journalCategoryList"`
	JournalList         []journals.JournalSealed `json:"journalList"`
}

// ProfilePictureResponse returns the hosted avatar location after upload.
type ProfilePictureResponse struct {
	ProfilePictureURL string `json:"profilePictureUrl"`
}
