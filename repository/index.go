package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entriesCollection := db.Collection("entries")
	usersCollection := db.Collection("users")
	sessionsCollection := db.Collection("sessions")
	resetTokensCollection := db.Collection("reset_tokens")

	entryIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().
				SetName("entries_created_at"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("users_email_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("users_user_id"),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("sessions_session_id").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("sessions_user_active"),
		},
	}

	resetTokenIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "token", Value: 1}},
			Options: options.Index().
				SetName("reset_tokens_token_unique").
				SetUnique(true),
		},
		// Mongo removes expired tokens on its own.
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("reset_tokens_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	if _, err := entriesCollection.Indexes().CreateMany(ctx, entryIndexes); err != nil {
		return fmt.Errorf("failed to create entry indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	if _, err := sessionsCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	if _, err := resetTokensCollection.Indexes().CreateMany(ctx, resetTokenIndexes); err != nil {
		return fmt.Errorf("failed to create reset token indexes: %w", err)
	}

	log.Println("MongoDB indexes ready")
	return nil
}
