package dbmongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gochat/internal/config"
)

var testConfig *config.Config

func TestMain(m *testing.M) {
	testConfig = &config.Config{
		MongoDB: config.MongoDBConfig{
			URI:      os.Getenv("MONGO_TEST_URI"),
			Database: fmt.Sprintf("gochat_test_%d", time.Now().UnixNano()),
		},
	}

	code := m.Run()
	os.Exit(code)
}

func connectOrSkip(t *testing.T) *MongoClient {
	t.Helper()
	if testConfig.MongoDB.URI == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	client, err := NewMongoConnection(testConfig)
	require.NoError(t, err, "Failed to connect to MongoDB at MONGO_TEST_URI")
	t.Cleanup(func() {
		ctx := context.Background()
		_ = client.Database.Drop(ctx)
		_ = client.Close(ctx)
	})
	return client
}

func TestEnsureIndexes_Integration(t *testing.T) {
	ctx := context.Background()
	client := connectOrSkip(t)

	require.NoError(t, EnsureIndexes(ctx, client.Database))
	// second run is a no-op
	require.NoError(t, EnsureIndexes(ctx, client.Database))

	rooms := client.Collection(RoomsCollection)
	_, err := rooms.InsertOne(ctx, bson.M{"pair_key": "a:b", "is_deleted": false})
	require.NoError(t, err)

	_, err = rooms.InsertOne(ctx, bson.M{"pair_key": "a:b", "is_deleted": false})
	assert.True(t, mongo.IsDuplicateKeyError(err))

	// a deleted room does not block a new live room for the same pair
	_, err = rooms.InsertOne(ctx, bson.M{"pair_key": "c:d", "is_deleted": true})
	require.NoError(t, err)
	_, err = rooms.InsertOne(ctx, bson.M{"pair_key": "c:d", "is_deleted": false})
	assert.NoError(t, err)
}
