package users

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mptsix/todaydiary/internal/features/journals"
	"github.com/mptsix/todaydiary/internal/pkg/token"
	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// memStore is an in-memory Store with the same error semantics as the
// Mongo-backed repository.
type memStore struct {
	users map[string]*User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*User)}
}

func (s *memStore) Save(ctx context.Context, user *User) (*User, error) {
	if user.JournalData == nil {
		user.JournalData = []journals.Journal{}
	}
	if user.FollowList == nil {
		user.FollowList = []string{}
	}
	s.users[user.UserID] = user
	return user, nil
}

func (s *memStore) FindByUserID(ctx context.Context, userID string) (*User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *memStore) FindAllByUserName(ctx context.Context, userName string) ([]User, error) {
	matches := []User{}
	for _, user := range s.users {
		if user.UserName == userName {
			matches = append(matches, *user)
		}
	}
	return matches, nil
}

func (s *memStore) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	_, ok := s.users[userID]
	return ok, nil
}

func (s *memStore) CountJournalsByCategory(ctx context.Context, userID string, category journals.JournalCategory) (int, error) {
	user, ok := s.users[userID]
	if !ok {
		return 0, nil
	}
	count := 0
	for _, journal := range user.JournalData {
		if journal.JournalCategory == category {
			count++
		}
	}
	return count, nil
}

func (s *memStore) RecentJournals(ctx context.Context, userID string, limit int) ([]journals.JournalSealed, error) {
	user, ok := s.users[userID]
	if !ok {
		return []journals.JournalSealed{}, nil
	}
	entries := append([]journals.Journal(nil), user.JournalData...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].JournalDate > entries[j].JournalDate
	})
	sealed := []journals.JournalSealed{}
	for i, journal := range entries {
		if i >= limit {
			break
		}
		sealed = append(sealed, journals.JournalSealed{
			MainJournalContent: journal.MainJournalContent,
			JournalDate:        journal.JournalDate,
		})
	}
	return sealed, nil
}

func (s *memStore) Remove(ctx context.Context, userID string) error {
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("remove user %s affected 0 documents: %w", userID, apperrors.ErrInternal)
	}
	delete(s.users, userID)
	return nil
}

func (s *memStore) AddFollow(ctx context.Context, userID, targetID string) error {
	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	if !user.Follows(targetID) {
		user.FollowList = append(user.FollowList, targetID)
	}
	return nil
}

func (s *memStore) RemoveFollow(ctx context.Context, userID, targetID string) error {
	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	kept := user.FollowList[:0]
	for _, id := range user.FollowList {
		if id != targetID {
			kept = append(kept, id)
		}
	}
	user.FollowList = kept
	return nil
}

func (s *memStore) SetPassword(ctx context.Context, userID, newPassword string) error {
	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	user.UserPassword = newPassword
	return nil
}

func (s *memStore) SetProfilePicture(ctx context.Context, userID, url, publicID string) error {
	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	user.ProfilePictureURL = url
	user.ProfilePictureID = publicID
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, token.NewProvider("test-secret", 1), nil)
}

func register(t *testing.T, svc *Service, userID, password, userName string) {
	t.Helper()
	_, err := svc.Register(context.Background(), &UserRegisterRequest{
		UserID:       userID,
		UserPassword: password,
		UserName:     userName,
	})
	require.NoError(t, err)
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	registered, err := svc.Register(context.Background(), &UserRegisterRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "testPassword!",
		UserName:     "KangDroid",
	})
	require.NoError(t, err)
	require.Equal(t, "kangdroid@example.com", registered.RegisteredID)
	require.Equal(t, []string{RoleUser}, store.users["kangdroid@example.com"].Roles)
}

func TestRegister_DuplicateID(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	_, err := svc.Register(context.Background(), &UserRegisterRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "other",
		UserName:     "Someone Else",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	login, err := svc.Login(context.Background(), &LoginRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "testPassword!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.UserToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	_, err := svc.Login(context.Background(), &LoginRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "wrong",
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Login(context.Background(), &LoginRequest{
		UserID:       "nobody@example.com",
		UserPassword: "whatever",
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLogin_AuxiliaryPassword(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")
	store.users["kangdroid@example.com"].AuxiliaryPassword = "backupPass"

	login, err := svc.Login(context.Background(), &LoginRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "backupPass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.UserToken)
}

func TestChangePassword(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	err := svc.ChangePassword(context.Background(), "kangdroid@example.com", &PasswordChangeRequest{
		CurrentPassword: "testPassword!",
		NewPassword:     "newPassword!",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "newPassword!",
	})
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	err := svc.ChangePassword(context.Background(), "kangdroid@example.com", &PasswordChangeRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newPassword!",
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRemoveAccount(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "kangdroid@example.com", "testPassword!", "KangDroid")

	require.NoError(t, svc.RemoveAccount(context.Background(), "kangdroid@example.com"))

	_, err := svc.Login(context.Background(), &LoginRequest{
		UserID:       "kangdroid@example.com",
		UserPassword: "testPassword!",
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveAccount_UnknownUser(t *testing.T) {
	svc := newTestService(newMemStore())

	err := svc.RemoveAccount(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFollow_AndList(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	register(t, svc, "b@example.com", "pass", "Bob")

	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))

	following, err := svc.GetFollowingUsers(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "b@example.com", following[0].UserID)
	require.Equal(t, "Bob", following[0].UserName)
	require.True(t, following[0].IsUserFollowedTargetUser)
}

func TestFollow_Idempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	register(t, svc, "b@example.com", "pass", "Bob")

	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))
	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))

	require.Equal(t, []string{"b@example.com"}, store.users["a@example.com"].FollowList)
}

func TestFollow_UnknownTarget(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")

	err := svc.Follow(context.Background(), "a@example.com", "ghost@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Empty(t, store.users["a@example.com"].FollowList)
}

func TestUnfollow(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	register(t, svc, "b@example.com", "pass", "Bob")
	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))

	require.NoError(t, svc.Unfollow(context.Background(), "a@example.com", "b@example.com"))
	require.Empty(t, store.users["a@example.com"].FollowList)

	// unfollowing someone not followed is a no-op
	require.NoError(t, svc.Unfollow(context.Background(), "a@example.com", "b@example.com"))
}

func TestGetFollowingUsers_SkipsRemovedUsers(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	register(t, svc, "b@example.com", "pass", "Bob")
	register(t, svc, "c@example.com", "pass", "Carol")
	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))
	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "c@example.com"))

	require.NoError(t, svc.RemoveAccount(context.Background(), "b@example.com"))

	following, err := svc.GetFollowingUsers(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "c@example.com", following[0].UserID)
}

func TestSearchUsersByName(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	register(t, svc, "b@example.com", "pass", "Bob")
	register(t, svc, "b2@example.com", "pass", "Bob")
	require.NoError(t, svc.Follow(context.Background(), "a@example.com", "b@example.com"))

	matches, err := svc.SearchUsersByName(context.Background(), "a@example.com", "Bob")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	followed := map[string]bool{}
	for _, match := range matches {
		followed[match.UserID] = match.IsUserFollowedTargetUser
	}
	require.True(t, followed["b@example.com"])
	require.False(t, followed["b2@example.com"])
}

func TestSearchUsersByName_NoMatches(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")

	matches, err := svc.SearchUsersByName(context.Background(), "a@example.com", "Nobody")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestGetSealedUser(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")
	store.users["a@example.com"].JournalData = []journals.Journal{
		{JournalDate: 100, MainJournalContent: "oldest", JournalCategory: journals.CategoryDaily},
		{JournalDate: 300, MainJournalContent: "newest", JournalCategory: journals.CategoryDaily},
		{JournalDate: 200, MainJournalContent: "middle", JournalCategory: journals.CategoryAchievement},
	}

	sealed, err := svc.GetSealedUser(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", sealed.UserID)
	require.Equal(t, "Alice", sealed.UserName)

	// counts cover every category, zeros included
	require.Len(t, sealed.JournalCategoryList, len(journals.AllCategories))
	counts := map[journals.JournalCategory]int{}
	for _, entry := range sealed.JournalCategoryList {
		counts[entry.Category] = entry.Count
	}
	require.Equal(t, 2, counts[journals.CategoryDaily])
	require.Equal(t, 1, counts[journals.CategoryAchievement])
	require.Equal(t, 0, counts[journals.CategoryTravel])

	// recent entries come newest first, trimmed to content and date
	require.Len(t, sealed.JournalList, 3)
	require.Equal(t, "newest", sealed.JournalList[0].MainJournalContent)
	require.Equal(t, int64(300), sealed.JournalList[0].JournalDate)
	require.Equal(t, "oldest", sealed.JournalList[2].MainJournalContent)
}

func TestUploadProfilePicture_NoMediaConfigured(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	register(t, svc, "a@example.com", "pass", "Alice")

	_, err := svc.UploadProfilePicture(context.Background(), "a@example.com", nil, "avatar.png")
	require.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestEnsureDemoUser(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	require.NoError(t, svc.EnsureDemoUser(context.Background(), "demo@todaydiary.local", "demoPass"))
	require.Contains(t, store.users, "demo@todaydiary.local")

	// second run finds the account already present and stays quiet
	require.NoError(t, svc.EnsureDemoUser(context.Background(), "demo@todaydiary.local", "demoPass"))
}
