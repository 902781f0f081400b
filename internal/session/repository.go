package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gochat/internal/dbmongo"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

type Repository interface {
	Create(ctx context.Context, s *Session) error
	LoggedInByDevice(ctx context.Context, deviceToken string) ([]*Session, error)
	ByAccessToken(ctx context.Context, accessToken string) (*Session, error)
	Rotate(ctx context.Context, id primitive.ObjectID, oldHash string, r Rotation) (bool, error)
	RevokeDevice(ctx context.Context, deviceToken string) ([]*Session, error)
	Logout(ctx context.Context, userID primitive.ObjectID, deviceToken string) ([]*Session, error)
	LogoutAll(ctx context.Context, userID primitive.ObjectID) ([]*Session, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)

	BindSocket(ctx context.Context, sessionID, userID primitive.ObjectID, socketID string) (*Session, error)
	ClearSocket(ctx context.Context, socketID string) (*Session, error)
	CountLive(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountViewing(ctx context.Context, userID, roomID primitive.ObjectID) (int64, error)
	SetViewing(ctx context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) (bool, error)
	OnlineUsers(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	PushTokens(ctx context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error)
}

type mongoRepository struct {
	sessions *mongo.Collection
	now      func() time.Time
}

func NewRepository(mc *dbmongo.MongoClient) Repository {
	return &mongoRepository{
		sessions: mc.Collection(dbmongo.SessionsCollection),
		now:      time.Now,
	}
}

// liveFilter matches sessions with an open connection.
func liveFilter() bson.M {
	return bson.M{"is_active": true, "socket_id": bson.M{"$ne": nil}}
}

func (r *mongoRepository) Create(ctx context.Context, s *Session) error {
	now := r.now()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	if _, err := r.sessions.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]*Session, error) {
	cursor, err := r.sessions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	var out []*Session
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out, nil
}

func (r *mongoRepository) LoggedInByDevice(ctx context.Context, deviceToken string) ([]*Session, error) {
	return r.find(ctx, bson.M{"device_token": deviceToken, "is_login": true})
}

func (r *mongoRepository) ByAccessToken(ctx context.Context, accessToken string) (*Session, error) {
	var s Session
	err := r.sessions.FindOne(ctx, bson.M{"access_token": accessToken, "is_login": true}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}
	return &s, nil
}

// Rotate swaps the credentials only if the stored hash is still oldHash, so a token rotates at most once.
func (r *mongoRepository) Rotate(ctx context.Context, id primitive.ObjectID, oldHash string, rot Rotation) (bool, error) {
	res, err := r.sessions.UpdateOne(ctx,
		bson.M{"_id": id, "refresh_token_hash": oldHash, "is_login": true},
		bson.M{"$set": bson.M{
			"access_token":             rot.AccessToken,
			"access_token_id":          rot.AccessTokenID,
			"access_token_expires_at":  rot.AccessTokenExpiresAt,
			"refresh_token_hash":       rot.RefreshTokenHash,
			"refresh_token_expires_at": rot.RefreshTokenExpiresAt,
			"updated_at":               r.now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to rotate session: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

// logout flips every matching logged-in session off and returns what was logged out.
func (r *mongoRepository) logout(ctx context.Context, filter bson.M) ([]*Session, error) {
	filter["is_login"] = true
	sessions, err := r.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	_, err = r.sessions.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{
			"is_login":        false,
			"is_active":       false,
			"viewing_room_id": nil,
			"updated_at":      r.now(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log out sessions: %w", err)
	}
	return sessions, nil
}

func (r *mongoRepository) RevokeDevice(ctx context.Context, deviceToken string) ([]*Session, error) {
	return r.logout(ctx, bson.M{"device_token": deviceToken})
}

func (r *mongoRepository) Logout(ctx context.Context, userID primitive.ObjectID, deviceToken string) ([]*Session, error) {
	return r.logout(ctx, bson.M{"user_id": userID, "device_token": deviceToken})
}

func (r *mongoRepository) LogoutAll(ctx context.Context, userID primitive.ObjectID) ([]*Session, error) {
	return r.logout(ctx, bson.M{"user_id": userID})
}

func (r *mongoRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.sessions.UpdateMany(ctx,
		bson.M{"is_login": true, "refresh_token_expires_at": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"is_login": false, "is_active": false, "viewing_room_id": nil, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return res.ModifiedCount, nil
}

// BindSocket attaches the socket to the logged-in session the connection authenticated with and
// returns the session as it was, so a socket it replaced can be closed. It returns nil when the
// session is gone or logged out.
func (r *mongoRepository) BindSocket(ctx context.Context, sessionID, userID primitive.ObjectID, socketID string) (*Session, error) {
	var before Session
	err := r.sessions.FindOneAndUpdate(ctx,
		bson.M{"_id": sessionID, "user_id": userID, "is_login": true},
		bson.M{"$set": bson.M{"socket_id": socketID, "is_active": true, "updated_at": r.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket: %w", err)
	}
	return &before, nil
}

// ClearSocket detaches the socket and returns the session as it was. It returns nil when
// no session holds the socket, which makes a second call for the same socket a no-op.
func (r *mongoRepository) ClearSocket(ctx context.Context, socketID string) (*Session, error) {
	var before Session
	err := r.sessions.FindOneAndUpdate(ctx,
		bson.M{"socket_id": socketID},
		bson.M{"$set": bson.M{"socket_id": nil, "viewing_room_id": nil, "is_active": false, "updated_at": r.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear socket: %w", err)
	}
	return &before, nil
}

func (r *mongoRepository) CountLive(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := liveFilter()
	filter["user_id"] = userID
	n, err := r.sessions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count live sessions: %w", err)
	}
	return n, nil
}

func (r *mongoRepository) CountViewing(ctx context.Context, userID, roomID primitive.ObjectID) (int64, error) {
	filter := liveFilter()
	filter["user_id"] = userID
	filter["viewing_room_id"] = roomID
	n, err := r.sessions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count viewing sessions: %w", err)
	}
	return n, nil
}

func (r *mongoRepository) SetViewing(ctx context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) (bool, error) {
	filter := liveFilter()
	filter["user_id"] = userID
	filter["socket_id"] = socketID
	res, err := r.sessions.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"viewing_room_id": roomID, "updated_at": r.now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to set viewing room: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoRepository) OnlineUsers(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	filter := liveFilter()
	filter["user_id"] = bson.M{"$in": userIDs}
	values, err := r.sessions.Distinct(ctx, "user_id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query online users: %w", err)
	}
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			out[id] = true
		}
	}
	return out, nil
}

// PushTokens returns the distinct device tokens of the users' logged-in sessions. When skipViewing
// is set, tokens of devices that have that room open on a live connection are left out.
func (r *mongoRepository) PushTokens(ctx context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	values, err := r.sessions.Distinct(ctx, "device_token", bson.M{
		"user_id":      bson.M{"$in": userIDs},
		"is_login":     true,
		"device_token": bson.M{"$nin": bson.A{"", nil}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}

	skip := map[string]bool{}
	if skipViewing != nil {
		filter := liveFilter()
		filter["user_id"] = bson.M{"$in": userIDs}
		filter["viewing_room_id"] = *skipViewing
		viewing, err := r.sessions.Distinct(ctx, "device_token", filter)
		if err != nil {
			return nil, fmt.Errorf("failed to query viewing devices: %w", err)
		}
		for _, v := range viewing {
			if token, ok := v.(string); ok {
				skip[token] = true
			}
		}
	}

	tokens := make([]string, 0, len(values))
	for _, v := range values {
		token, ok := v.(string)
		if !ok || skip[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
