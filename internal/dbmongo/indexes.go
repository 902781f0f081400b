package dbmongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexModels lists the indexes each collection needs. The unique partial index on
// chat_rooms.pair_key is what keeps one live room per unordered participant pair.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		SessionsCollection: {
			{Keys: bson.D{{Key: "device_token", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "socket_id", Value: 1}}},
			{Keys: bson.D{{Key: "access_token", Value: 1}}},
			{Keys: bson.D{{Key: "is_login", Value: 1}, {Key: "refresh_token_expires_at", Value: 1}}},
		},
		RoomsCollection: {
			{
				Keys: bson.D{{Key: "pair_key", Value: 1}},
				Options: options.Index().
					SetName("uniq_live_pair").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"is_deleted": false}),
			},
			{Keys: bson.D{{Key: "participants", Value: 1}}},
		},
		MessagesCollection: {
			{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "sent_at", Value: -1}}},
			{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}},
		},
		AlbumsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "album_type", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
}

// EnsureIndexes creates missing indexes; existing identical indexes are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range IndexModels() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		log.Debug().Str("collection", collection).Strs("indexes", names).Msg("indexes ensured")
	}
	return nil
}
