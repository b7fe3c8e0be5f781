package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

type ResetTokenRepo struct {
	MongoCollection *mongo.Collection
}

func GetResetTokenRepo(client *mongo.Client) *ResetTokenRepo {
	return &ResetTokenRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("reset_tokens"),
	}
}

func (r *ResetTokenRepo) CreateToken(ctx context.Context, userID, token string) (*model.ResetToken, error) {
	timer := utils.TrackDBOperation("insert", "reset_tokens")
	defer timer.ObserveDuration()

	now := time.Now().UTC()
	resetToken := &model.ResetToken{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	if _, err := r.MongoCollection.InsertOne(ctx, resetToken); err != nil {
		utils.TrackError("database", "reset_token_creation_failed")
		return nil, err
	}

	return resetToken, nil
}

// ConsumeToken validates and deletes a token in one step; a token can only
// be used once.
func (r *ResetTokenRepo) ConsumeToken(ctx context.Context, token string) (*model.ResetToken, error) {
	timer := utils.TrackDBOperation("delete", "reset_tokens")
	defer timer.ObserveDuration()

	var resetToken model.ResetToken
	err := r.MongoCollection.FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&resetToken)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResetTokenInvalid
		}
		utils.TrackError("database", "reset_token_lookup_error")
		return nil, err
	}

	if !resetToken.IsValid() {
		return nil, ErrResetTokenInvalid
	}

	return &resetToken, nil
}
