package users

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/mptsix/todaydiary/internal/features/journals"
	"github.com/mptsix/todaydiary/internal/pkg/cloudinary"
	"github.com/mptsix/todaydiary/internal/pkg/logger"
	"github.com/mptsix/todaydiary/internal/pkg/token"
	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// sealedJournalLimit caps how many recent entries a sealed profile carries.
const sealedJournalLimit = 20

// Store is what the user service needs from persistence.
type Store interface {
	Save(ctx context.Context, user *User) (*User, error)
	FindByUserID(ctx context.Context, userID string) (*User, error)
	FindAllByUserName(ctx context.Context, userName string) ([]User, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	CountJournalsByCategory(ctx context.Context, userID string, category journals.JournalCategory) (int, error)
	RecentJournals(ctx context.Context, userID string, limit int) ([]journals.JournalSealed, error)
	Remove(ctx context.Context, userID string) error
	AddFollow(ctx context.Context, userID, targetID string) error
	RemoveFollow(ctx context.Context, userID, targetID string) error
	SetPassword(ctx context.Context, userID, newPassword string) error
	SetProfilePicture(ctx context.Context, userID, url, publicID string) error
}

type Service struct {
	store  Store
	tokens *token.Provider
	// media is nil when no image hosting is configured; profile picture
	// uploads then fail, everything else works.
	media *cloudinary.Service
}

func NewService(store Store, tokens *token.Provider, media *cloudinary.Service) *Service {
	return &Service{store: store, tokens: tokens, media: media}
}

// Register creates an account when the requested userId is free.
func (s *Service) Register(ctx context.Context, req *UserRegisterRequest) (*UserRegisterResponse, error) {
	exists, err := s.store.ExistsByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user id %s taken: %w", req.UserID, apperrors.ErrConflict)
	}

	user := &User{
		UserID:               req.UserID,
		UserPassword:         req.UserPassword,
		UserName:             req.UserName,
		UserDateOfBirth:      req.UserDateOfBirth,
		UserPasswordQuestion: req.UserPasswordQuestion,
		UserPasswordAnswer:   req.UserPasswordAnswer,
		Roles:                []string{RoleUser},
	}

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	return &UserRegisterResponse{RegisteredID: saved.UserID}, nil
}

// Login verifies credentials and issues a token. An unknown userId surfaces
// as not found; a known userId with a wrong password as forbidden.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.store.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if !credentialMatches(user, req.UserPassword) {
		return nil, fmt.Errorf("wrong password for %s: %w", req.UserID, apperrors.ErrForbidden)
	}

	issued, err := s.tokens.Issue(user.UserID, user.Roles)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{UserToken: issued}, nil
}

// credentialMatches accepts the primary password or, when set, the auxiliary
// one. Each is checked on its own; the auxiliary credential is a full
// alternative, not a second factor.
func credentialMatches(user *User, password string) bool {
	if password == user.UserPassword {
		return true
	}
	return user.AuxiliaryPassword != "" && password == user.AuxiliaryPassword
}

// ChangePassword swaps the primary credential after re-verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID string, req *PasswordChangeRequest) error {
	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if req.CurrentPassword != user.UserPassword {
		return fmt.Errorf("current password mismatch for %s: %w", userID, apperrors.ErrForbidden)
	}

	return s.store.SetPassword(ctx, userID, req.NewPassword)
}

// RemoveAccount deletes the user document and, best effort, the hosted
// avatar. Followers keep a dangling id in their lists; listings skip it.
func (s *Service) RemoveAccount(ctx context.Context, userID string) error {
	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, userID); err != nil {
		return err
	}

	if s.media != nil && user.ProfilePictureID != "" {
		if err := s.media.Delete(ctx, user.ProfilePictureID); err != nil {
			logger.Warn("failed to delete avatar %s for removed user %s: %v", user.ProfilePictureID, userID, err)
		}
	}

	return nil
}

// Follow adds targetID to the caller's follow list. The target must exist;
// following twice is a no-op.
func (s *Service) Follow(ctx context.Context, userID, targetID string) error {
	if _, err := s.store.FindByUserID(ctx, targetID); err != nil {
		return err
	}
	return s.store.AddFollow(ctx, userID, targetID)
}

// Unfollow removes targetID from the caller's follow list. Unfollowing
// someone not followed is a no-op.
func (s *Service) Unfollow(ctx context.Context, userID, targetID string) error {
	return s.store.RemoveFollow(ctx, userID, targetID)
}

// GetFollowingUsers resolves the caller's follow list into filtered rows.
// Followed users that no longer exist are skipped.
func (s *Service) GetFollowingUsers(ctx context.Context, userID string) ([]UserFiltered, error) {
	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	following := make([]UserFiltered, 0, len(user.FollowList))
	for _, targetID := range user.FollowList {
		target, err := s.store.FindByUserID(ctx, targetID)
		if err != nil {
			logger.Warn("followed user %s no longer exists, skipping: %v", targetID, err)
			continue
		}
		following = append(following, UserFiltered{
			UserName:                 target.UserName,
			UserID:                   target.UserID,
			IsUserFollowedTargetUser: true,
		})
	}

	return following, nil
}

// SearchUsersByName returns every user whose display name matches, each
// annotated with whether the caller already follows them.
func (s *Service) SearchUsersByName(ctx context.Context, userID, targetName string) ([]UserFiltered, error) {
	caller, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.FindAllByUserName(ctx, targetName)
	if err != nil {
		return nil, err
	}

	filtered := make([]UserFiltered, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, UserFiltered{
			UserName:                 match.UserName,
			UserID:                   match.UserID,
			IsUserFollowedTargetUser: caller.Follows(match.UserID),
		})
	}

	return filtered, nil
}

// GetSealedUser builds the read-only profile summary: per-category entry
// counts over every category, zeros included, plus the newest entries.
func (s *Service) GetSealedUser(ctx context.Context, userID string) (*UserSealed, error) {
	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make([]JournalCategoryCount, 0, len(journals.AllCategories))
	for _, category := range journals.AllCategories {
		count, err := s.store.CountJournalsByCategory(ctx, userID, category)
		if err != nil {
			return nil, err
		}
		counts = append(counts, JournalCategoryCount{Category: category, Count: count})
	}

	recent, err := s.store.RecentJournals(ctx, userID, sealedJournalLimit)
	if err != nil {
		return nil, err
	}

	return &UserSealed{
		UserID:              user.UserID,
		UserName:            user.UserName,
		JournalCategoryList: counts,
		JournalList:         recent,
	}, nil
}

// UploadProfilePicture hosts the image and records its location, then
// removes the previous asset best effort.
func (s *Service) UploadProfilePicture(ctx context.Context, userID string, file multipart.File, filename string) (*ProfilePictureResponse, error) {
	if s.media == nil {
		return nil, fmt.Errorf("image hosting not configured: %w", apperrors.ErrInternal)
	}

	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.media.UploadImage(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetProfilePicture(ctx, userID, uploaded.URL, uploaded.PublicID); err != nil {
		return nil, err
	}

	if user.ProfilePictureID != "" {
		if err := s.media.Delete(ctx, user.ProfilePictureID); err != nil {
			logger.Warn("failed to delete previous avatar %s for user %s: %v", user.ProfilePictureID, userID, err)
		}
	}

	return &ProfilePictureResponse{ProfilePictureURL: uploaded.URL}, nil
}

// EnsureDemoUser registers the demo account if it does not exist yet.
func (s *Service) EnsureDemoUser(ctx context.Context, userID, password string) error {
	_, err := s.Register(ctx, &UserRegisterRequest{
		UserID:       userID,
		UserPassword: password,
		UserName:     "Demo User",
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		return err
	}
	return nil
}
