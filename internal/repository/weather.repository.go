package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/duccv/weather-tracker/internal/model"
)

const weatherCollection = "weather_data"

type MongoWeatherRepository struct {
	coll *mongo.Collection
}

func NewMongoWeatherRepository(db *mongo.Database) *MongoWeatherRepository {
	return &MongoWeatherRepository{coll: db.Collection(weatherCollection)}
}

func (r *MongoWeatherRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, weatherIndexes())
	if err != nil {
		return fmt.Errorf("create weather indexes: %w", err)
	}
	return nil
}

func (r *MongoWeatherRepository) Save(ctx context.Context, data *model.WeatherData) error {
	if data.UUID == "" {
		data.UUID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, data); err != nil {
		return fmt.Errorf("insert weather data: %w", err)
	}
	return nil
}

func (r *MongoWeatherRepository) FindByPostalCode(ctx context.Context, postalCode string) ([]model.WeatherData, error) {
	return r.find(ctx, bson.D{{Key: "postalCode", Value: postalCode}})
}

func (r *MongoWeatherRepository) FindByUsername(ctx context.Context, username string) ([]model.WeatherData, error) {
	return r.find(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *MongoWeatherRepository) find(ctx context.Context, filter bson.D) ([]model.WeatherData, error) {
	cursor, err := r.coll.Find(ctx, filter, historyOptions())
	if err != nil {
		return nil, fmt.Errorf("find weather data: %w", err)
	}
	defer cursor.Close(ctx)

	var results []model.WeatherData
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode weather data: %w", err)
	}
	return results, nil
}

func weatherIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "postalCode", Value: 1}, {Key: "requestTime", Value: -1}}},
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "requestTime", Value: -1}}},
	}
}

// historyOptions orders history newest first.
func historyOptions() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "requestTime", Value: -1}})
}
