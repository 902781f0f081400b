package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gochat/internal/common"
	"gochat/internal/dbmongo"
)

//go:generate mockgen -source=profile_repository.go -destination=mocks/mock_profile_repository.go -package=mocks

type ProfileRepository interface {
	FindActive(ctx context.Context, id primitive.ObjectID) (*Profile, error)
	Profiles(ctx context.Context, ids []primitive.ObjectID, search string) (map[primitive.ObjectID]*Profile, error)
	ProfilePictures(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

type profileRepository struct {
	users  *mongo.Collection
	albums *mongo.Collection
}

func NewProfileRepository(mc *dbmongo.MongoClient) ProfileRepository {
	return &profileRepository{
		users:  mc.Collection(dbmongo.UsersCollection),
		albums: mc.Collection(dbmongo.AlbumsCollection),
	}
}

// FindActive returns the user unless it is missing or deleted.
func (r *profileRepository) FindActive(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	var p Profile
	err := r.users.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &p, nil
}

// Profiles loads users by id. A non-empty search keeps only users whose full name contains it, case-insensitively.
func (r *profileRepository) Profiles(ctx context.Context, ids []primitive.ObjectID, search string) (map[primitive.ObjectID]*Profile, error) {
	out := make(map[primitive.ObjectID]*Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	if search != "" {
		filter["full_name"] = primitive.Regex{Pattern: common.EscapeRegex(search), Options: "i"}
	}

	cursor, err := r.users.Find(ctx, filter, options.Find().SetProjection(bson.M{"full_name": 1, "is_deleted": 1, "is_blocked_by_admin": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	var profiles []*Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

// ProfilePictures returns the path of each user's most recent image album entry.
func (r *profileRepository) ProfilePictures(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": bson.M{"$in": ids}, "album_type": string(common.MediaFileTypeImage)}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{"_id": "$user_id", "path": bson.M{"$first": "$album_path"}}}},
	}
	cursor, err := r.albums.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profile pictures: %w", err)
	}
	var rows []struct {
		UserID primitive.ObjectID `bson:"_id"`
		Path   string             `bson:"path"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode profile pictures: %w", err)
	}
	for _, row := range rows {
		out[row.UserID] = row.Path
	}
	return out, nil
}
