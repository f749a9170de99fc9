package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mptsix/todaydiary/internal/features/journals"
	apperrors "github.com/mptsix/todaydiary/pkg/errors"
)

// Repository is the user store: one document per userId, holding the
// embedded journal list and follow list. Journal and follow mutations are
// targeted server-side updates, never whole-document rewrites, so two
// concurrent edits to different journal dates cannot overwrite each other.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and ensures indexes.
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userName", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Save inserts or replaces the document identified by user.UserID and
// returns the stored representation.
func (r *Repository) Save(ctx context.Context, user *User) (*User, error) {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.JournalData == nil {
		user.JournalData = []journals.Journal{}
	}
	if user.FollowList == nil {
		user.FollowList = []string{}
	}

	result, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"userId": user.UserID},
		user,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

// FindByUserID returns the single document for userID.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*User, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

// FindByUserName returns the single document whose display name matches.
// Display names are unique by convention only; when several match, the
// first one wins.
func (r *Repository) FindByUserName(ctx context.Context, userName string) (*User, error) {
	return r.findOne(ctx, bson.M{"userName": userName})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %v: %w", filter, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// FindAllByUserName returns every document matching the display name, used
// for search rather than identity lookup. Zero matches is not an error.
func (r *Repository) FindAllByUserName(ctx context.Context, userName string) ([]User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userName": userName})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// ExistsByUserID is the explicit existence predicate used by registration.
func (r *Repository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type categoryCountResult struct {
	CategoryCount int `bson:"categoryCount"`
}

// CountJournalsByCategory counts the user's embedded entries matching the
// category via match, unwind, match, count. Returns 0 when nothing matches.
func (r *Repository) CountJournalsByCategory(ctx context.Context, userID string, category journals.JournalCategory) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$unwind", Value: "$journalData"}},
		{{Key: "$match", Value: bson.M{"journalData.journalCategory": category}}},
		{{Key: "$count", Value: "categoryCount"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []categoryCountResult
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].CategoryCount, nil
}

// Remove deletes exactly one document. Anything other than one deletion is a
// consistency violation, since userId carries a unique index.
func (r *Repository) Remove(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount != 1 {
		return fmt.Errorf("remove user %s affected %d documents: %w", userID, result.DeletedCount, apperrors.ErrInternal)
	}
	return nil
}

// journalUpsertPipeline builds the single-stage pipeline update that drops
// any entry sharing the new entry's journalDate and appends the new one. The
// whole replacement happens in one UpdateOne: a failure leaves the existing
// entry untouched, and two concurrent upserts for the same date serialize
// into exactly one surviving entry.
func journalUpsertPipeline(journal journals.Journal) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"journalData": bson.M{"$concatArrays": bson.A{
				bson.M{"$filter": bson.M{
					"input": "$journalData",
					"as":    "entry",
					"cond":  bson.M{"$ne": bson.A{"$$entry.journalDate", journal.JournalDate}},
				}},
				// $literal keeps the stored entry from being parsed as an
				// aggregation expression.
				bson.A{bson.M{"$literal": journal}},
			}},
			"updatedAt": "$$NOW",
		}}},
	}
}

// UpsertJournal replaces any entry with the same journalDate and appends the
// new one, keyed entirely on the server side in a single atomic update.
func (r *Repository) UpsertJournal(ctx context.Context, userID string, journal journals.Journal) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, journalUpsertPipeline(journal))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

type journalProjection struct {
	JournalData []journals.Journal `bson:"journalData"`
}

// FindJournal returns the user's entry for journalDate.
func (r *Repository) FindJournal(ctx context.Context, userID string, journalDate int64) (*journals.Journal, error) {
	filter := bson.M{
		"userId":                  userID,
		"journalData.journalDate": journalDate,
	}
	opts := options.FindOne().SetProjection(bson.M{"journalData.$": 1})

	var doc journalProjection
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("journal %d for user %s: %w", journalDate, userID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if len(doc.JournalData) == 0 {
		return nil, fmt.Errorf("journal %d for user %s: %w", journalDate, userID, apperrors.ErrNotFound)
	}

	return &doc.JournalData[0], nil
}

// SetJournalImage replaces the image payload of the matching entry in place.
func (r *Repository) SetJournalImage(ctx context.Context, userID string, journalDate int64, image []byte) error {
	filter := bson.M{
		"userId":                  userID,
		"journalData.journalDate": journalDate,
	}
	update := bson.M{"$set": bson.M{
		"journalData.$.journalImage": image,
		"updatedAt":                  time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("journal %d for user %s: %w", journalDate, userID, apperrors.ErrNotFound)
	}
	return nil
}

// RecentJournals returns up to limit entries, newest first, trimmed to
// content and timestamp.
func (r *Repository) RecentJournals(ctx context.Context, userID string, limit int) ([]journals.JournalSealed, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$unwind", Value: "$journalData"}},
		{{Key: "$sort", Value: bson.M{"journalData.journalDate": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"_id":                0,
			"mainJournalContent": "$journalData.mainJournalContent",
			"journalDate":        "$journalData.journalDate",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []journals.JournalSealed
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []journals.JournalSealed{}
	}
	return entries, nil
}

// AddFollow adds targetID to the user's follow list with set semantics:
// following twice leaves a single entry.
func (r *Repository) AddFollow(ctx context.Context, userID, targetID string) error {
	return r.updateFollowList(ctx, userID, bson.M{"$addToSet": bson.M{"followList": targetID}})
}

// RemoveFollow removes targetID from the user's follow list.
func (r *Repository) RemoveFollow(ctx context.Context, userID, targetID string) error {
	return r.updateFollowList(ctx, userID, bson.M{"$pull": bson.M{"followList": targetID}})
}

func (r *Repository) updateFollowList(ctx context.Context, userID string, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// SetPassword overwrites the stored primary credential.
func (r *Repository) SetPassword(ctx context.Context, userID, newPassword string) error {
	return r.setFields(ctx, userID, bson.M{"userPassword": newPassword})
}

// SetProfilePicture stores the hosted avatar location.
func (r *Repository) SetProfilePicture(ctx context.Context, userID, url, publicID string) error {
	return r.setFields(ctx, userID, bson.M{
		"profilePictureUrl": url,
		"profilePictureId":  publicID,
	})
}

func (r *Repository) setFields(ctx context.Context, userID string, fields bson.M) error {
	fields["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
