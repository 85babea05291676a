package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/eduport/eduport-backend/internal/config"
)

// Collection names within the portal database.
const (
	CollectionStudents   = "students"
	CollectionFaculties  = "faculties"
	CollectionCourses    = "universityCourses"
	CollectionAttendance = "studentAttendance"
	CollectionFeedbacks  = "studentsFeedbacks"
)

// NewMongoDatabase creates and validates a MongoDB connection, returning a
// handle to the portal database. The caller owns disconnecting the client.
func NewMongoDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Database, func(context.Context) error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().
		Str("db", cfg.MongoDBName).
		Msg("MongoDB connected")

	return client.Database(cfg.MongoDBName), client.Disconnect, nil
}

// EnsureIndexes creates the unique indexes registration relies on. Duplicate
// emails and usernames are rejected at the database level.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	students := db.Collection(CollectionStudents)
	if _, err := students.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
	}); err != nil {
		return fmt.Errorf("student indexes: %w", err)
	}

	faculties := db.Collection(CollectionFaculties)
	if _, err := faculties.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "facultyId", Value: 1}}, Options: unique},
	}); err != nil {
		return fmt.Errorf("faculty indexes: %w", err)
	}

	return nil
}
