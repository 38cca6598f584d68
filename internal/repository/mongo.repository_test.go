package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestHistoryOptionsSortNewestFirst(t *testing.T) {
	var opts options.FindOptions
	for _, set := range historyOptions().Opts {
		require.NoError(t, set(&opts))
	}
	assert.Equal(t, bson.D{{Key: "requestTime", Value: -1}}, opts.Sort)
	assert.Nil(t, opts.Limit)
}

func TestWeatherIndexesCoverHistoryQueries(t *testing.T) {
	indexes := weatherIndexes()
	require.Len(t, indexes, 2)
	assert.Equal(t, bson.D{{Key: "postalCode", Value: 1}, {Key: "requestTime", Value: -1}}, indexes[0].Keys)
	assert.Equal(t, bson.D{{Key: "username", Value: 1}, {Key: "requestTime", Value: -1}}, indexes[1].Keys)
}

func TestUsernameIndexIsUnique(t *testing.T) {
	idx := usernameIndex()
	assert.Equal(t, bson.D{{Key: "username", Value: 1}}, idx.Keys)

	var opts options.IndexOptions
	for _, set := range idx.Options.Opts {
		require.NoError(t, set(&opts))
	}
	require.NotNil(t, opts.Unique)
	assert.True(t, *opts.Unique)
	require.NotNil(t, opts.Name)
	assert.Equal(t, "ux_username", *opts.Name)
}

func TestInsertUserError(t *testing.T) {
	assert.NoError(t, insertUserError("alice", nil))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, insertUserError("alice", dup), ErrDuplicate)

	other := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "document failed validation"}}}
	err := insertUserError("alice", other)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "insert user alice")

	boom := errors.New("connection reset")
	assert.ErrorIs(t, insertUserError("alice", boom), boom)
}

func TestMongoRepositoriesUseExpectedCollections(t *testing.T) {
	// Connect does not dial; no server is needed.
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	db := client.Database("weather")

	assert.Equal(t, usersCollection, NewMongoUserRepository(db).coll.Name())
	assert.Equal(t, weatherCollection, NewMongoWeatherRepository(db).coll.Name())
}
