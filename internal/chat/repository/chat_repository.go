package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gochat/internal/chat"
	"gochat/internal/common"
	"gochat/internal/dbmongo"
)

type RoomRepository interface {
	GetOrCreate(ctx context.Context, pairKey string, participants []primitive.ObjectID, requester primitive.ObjectID) (*chat.Room, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*chat.Room, error)
	ListVisible(ctx context.Context, viewer primitive.ObjectID) ([]*chat.Room, error)
	AddHidden(ctx context.Context, roomID, userID primitive.ObjectID) error
	ClearHidden(ctx context.Context, roomID primitive.ObjectID) error
}

type MessageRepository interface {
	Insert(ctx context.Context, msg *chat.Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*chat.Message, error)
	UpdateBody(ctx context.Context, id, sender primitive.ObjectID, body string) (*chat.Message, error)
	MarkDeletedForEveryone(ctx context.Context, id, sender primitive.ObjectID) (*chat.Message, error)
	Hide(ctx context.Context, id, userID primitive.ObjectID) error
	HideAllInRoom(ctx context.Context, roomID, userID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, roomID, reader primitive.ObjectID) (int64, error)
	LatestID(ctx context.Context, roomID primitive.ObjectID) (primitive.ObjectID, error)
	ListVisible(ctx context.Context, roomID, viewer primitive.ObjectID, skip, limit int64) ([]*chat.Message, error)
	RoomStats(ctx context.Context, viewer primitive.ObjectID, roomIDs []primitive.ObjectID) (map[primitive.ObjectID]*chat.RoomStats, error)
}

var errRoomNotFound = common.NotFound("Chat room not found")

type roomRepo struct {
	rooms *mongo.Collection
	now   func() time.Time
}

func NewRoomRepository(mc *dbmongo.MongoClient) RoomRepository {
	return &roomRepo{rooms: mc.Collection(dbmongo.RoomsCollection), now: time.Now}
}

// GetOrCreate upserts the live room of the pair and takes requester out of hidden_by in the same write.
// Two concurrent first calls race on the unique pair index; the loser retries without upsert.
func (r *roomRepo) GetOrCreate(ctx context.Context, pairKey string, participants []primitive.ObjectID, requester primitive.ObjectID) (*chat.Room, error) {
	now := r.now()
	filter := bson.M{"pair_key": pairKey, "is_deleted": false}
	update := bson.M{
		"$pull": bson.M{"hidden_by": requester},
		"$set":  bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"participants": participants,
			"created_by":   requester,
			"created_at":   now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var room chat.Room
	err := r.rooms.FindOneAndUpdate(ctx, filter, update, opts).Decode(&room)
	if mongo.IsDuplicateKeyError(err) {
		err = r.rooms.FindOneAndUpdate(ctx, filter, update, opts.SetUpsert(false)).Decode(&room)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get or create room: %w", err)
	}
	return &room, nil
}

func (r *roomRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*chat.Room, error) {
	var room chat.Room
	err := r.rooms.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (r *roomRepo) ListVisible(ctx context.Context, viewer primitive.ObjectID) ([]*chat.Room, error) {
	cursor, err := r.rooms.Find(ctx, bson.M{
		"participants": viewer,
		"is_deleted":   false,
		"hidden_by":    bson.M{"$ne": viewer},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	var rooms []*chat.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepo) AddHidden(ctx context.Context, roomID, userID primitive.ObjectID) error {
	_, err := r.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$addToSet": bson.M{"hidden_by": userID}, "$set": bson.M{"updated_at": r.now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to hide room: %w", err)
	}
	return nil
}

func (r *roomRepo) ClearHidden(ctx context.Context, roomID primitive.ObjectID) error {
	_, err := r.rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$set": bson.M{"hidden_by": bson.A{}, "updated_at": r.now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to unhide room: %w", err)
	}
	return nil
}

var errMessageNotFound = common.NotFound("Message not found")

type messageRepo struct {
	messages *mongo.Collection
	now      func() time.Time
}

func NewMessageRepository(mc *dbmongo.MongoClient) MessageRepository {
	return &messageRepo{messages: mc.Collection(dbmongo.MessagesCollection), now: time.Now}
}

// visibleFilter selects the messages of a room the viewer can see.
func visibleFilter(roomID, viewer primitive.ObjectID) bson.M {
	return bson.M{
		"room_id":              roomID,
		"deleted_for_everyone": false,
		"hidden_by":            bson.M{"$ne": viewer},
		"$or": bson.A{
			bson.M{"sender_id": viewer},
			bson.M{"receiver_id": viewer},
		},
	}
}

func (r *messageRepo) Insert(ctx context.Context, msg *chat.Message) error {
	now := r.now()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = now
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *messageRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*chat.Message, error) {
	var msg chat.Message
	err := r.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &msg, nil
}

func (r *messageRepo) findOneAndSet(ctx context.Context, filter bson.M, set bson.M) (*chat.Message, error) {
	set["updated_at"] = r.now()
	var msg chat.Message
	err := r.messages.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return &msg, nil
}

// UpdateBody edits a message that still belongs to sender and was not deleted for everyone.
func (r *messageRepo) UpdateBody(ctx context.Context, id, sender primitive.ObjectID, body string) (*chat.Message, error) {
	return r.findOneAndSet(ctx,
		bson.M{"_id": id, "sender_id": sender, "deleted_for_everyone": false},
		bson.M{"body": body, "is_edited": true},
	)
}

func (r *messageRepo) MarkDeletedForEveryone(ctx context.Context, id, sender primitive.ObjectID) (*chat.Message, error) {
	return r.findOneAndSet(ctx,
		bson.M{"_id": id, "sender_id": sender},
		bson.M{"deleted_for_everyone": true},
	)
}

func (r *messageRepo) Hide(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.messages.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"hidden_by": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to hide message: %w", err)
	}
	return nil
}

func (r *messageRepo) HideAllInRoom(ctx context.Context, roomID, userID primitive.ObjectID) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		visibleFilter(roomID, userID),
		bson.M{"$addToSet": bson.M{"hidden_by": userID}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to hide room messages: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, roomID, reader primitive.ObjectID) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		bson.M{"room_id": roomID, "receiver_id": reader, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return res.ModifiedCount, nil
}

// LatestID returns the id of the newest message in the room regardless of visibility,
// or NilObjectID for an empty room.
func (r *messageRepo) LatestID(ctx context.Context, roomID primitive.ObjectID) (primitive.ObjectID, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.messages.FindOne(ctx, bson.M{"room_id": roomID},
		options.FindOne().
			SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetProjection(bson.M{"_id": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, nil
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to find latest message: %w", err)
	}
	return doc.ID, nil
}

func (r *messageRepo) ListVisible(ctx context.Context, roomID, viewer primitive.ObjectID, skip, limit int64) ([]*chat.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.messages.Find(ctx, visibleFilter(roomID, viewer), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	messages := []*chat.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// RoomStats groups the viewer's visible messages per room into the newest message and the unread count.
func (r *messageRepo) RoomStats(ctx context.Context, viewer primitive.ObjectID, roomIDs []primitive.ObjectID) (map[primitive.ObjectID]*chat.RoomStats, error) {
	out := make(map[primitive.ObjectID]*chat.RoomStats, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"room_id":              bson.M{"$in": roomIDs},
			"deleted_for_everyone": false,
			"hidden_by":            bson.M{"$ne": viewer},
			"$or": bson.A{
				bson.M{"sender_id": viewer},
				bson.M{"receiver_id": viewer},
			},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$room_id",
			"last_id":      bson.M{"$first": "$_id"},
			"last_body":    bson.M{"$first": "$body"},
			"last_kind":    bson.M{"$first": "$kind"},
			"last_sent_at": bson.M{"$first": "$sent_at"},
			"unread_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$receiver_id", viewer}},
					bson.M{"$eq": bson.A{"$is_read", false}},
				}},
				1,
				0,
			}}},
		}}},
	}

	cursor, err := r.messages.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate room stats: %w", err)
	}
	var stats []*chat.RoomStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode room stats: %w", err)
	}
	for _, s := range stats {
		out[s.RoomID] = s
	}
	return out, nil
}
