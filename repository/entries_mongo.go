package repository

import (
	"context"
	"log"
	"os"
	"strings"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEntryStore implements EntryStore over a Mongo collection with the
// entry id as _id. The unique _id index means duplicate ids cannot be
// persisted at all; instead of the lazy repair pass the count+1 race is
// resolved at write time by bumping the id on a duplicate-key error.
type MongoEntryStore struct {
	MongoCollection *mongo.Collection
}

func GetMongoEntryStore(client *mongo.Client) *MongoEntryStore {
	return &MongoEntryStore{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("entries"),
	}
}

func (s *MongoEntryStore) ListAll(ctx context.Context) []model.Entry {
	timer := utils.TrackDBOperation("read", "entries")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.TrackError("database", "entries_read_failed")
		log.Printf("Failed to list entries: %v", err)
		return []model.Entry{}
	}
	defer cursor.Close(ctx)

	var entries []model.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "entries_decode_failed")
		log.Printf("Failed to decode entries: %v", err)
		return []model.Entry{}
	}
	return entries
}

func (s *MongoEntryStore) FindByIDs(ctx context.Context, ids map[int]struct{}) []model.Entry {
	timer := utils.TrackDBOperation("read", "entries")
	defer timer.ObserveDuration()

	if len(ids) == 0 {
		return []model.Entry{}
	}

	wanted := make([]int, 0, len(ids))
	for id := range ids {
		wanted = append(wanted, id)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.MongoCollection.Find(ctx, bson.M{"_id": bson.M{"$in": wanted}}, opts)
	if err != nil {
		utils.TrackError("database", "entries_read_failed")
		log.Printf("Failed to find entries by id: %v", err)
		return []model.Entry{}
	}
	defer cursor.Close(ctx)

	var entries []model.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "entries_decode_failed")
		log.Printf("Failed to decode entries: %v", err)
		return []model.Entry{}
	}
	return entries
}

func (s *MongoEntryStore) Create(ctx context.Context, title, content string) (*model.Entry, error) {
	timer := utils.TrackDBOperation("insert", "entries")
	defer timer.ObserveDuration()

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" && content == "" {
		return nil, ErrEmptyEntry
	}

	count, err := s.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.TrackError("database", "entries_count_failed")
		return nil, err
	}

	entry := model.Entry{
		ID:        int(count) + 1,
		Title:     title,
		Content:   content,
		CreatedAt: model.NowEntryTime(),
	}

	// Two concurrent creates can compute the same count+1; the unique _id
	// index rejects the loser, which just takes the next free id.
	for {
		_, err := s.MongoCollection.InsertOne(ctx, entry)
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "entry_creation_failed")
			return nil, err
		}
		entry.ID++
	}

	utils.TrackEntryOperation("create")
	return &entry, nil
}

func (s *MongoEntryStore) Update(ctx context.Context, id int, title, content string) error {
	timer := utils.TrackDBOperation("update", "entries")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{
		"title":   strings.TrimSpace(title),
		"content": strings.TrimSpace(content),
	}}

	result, err := s.MongoCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		utils.TrackError("database", "entry_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEntryNotFound
	}

	utils.TrackEntryOperation("update")
	return nil
}

func (s *MongoEntryStore) Delete(ctx context.Context, id int) error {
	timer := utils.TrackDBOperation("delete", "entries")
	defer timer.ObserveDuration()

	if _, err := s.MongoCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		utils.TrackError("database", "entry_delete_failed")
		return err
	}

	utils.TrackEntryOperation("delete")
	return nil
}

func (s *MongoEntryStore) DeleteBulk(ctx context.Context, ids map[int]struct{}) error {
	timer := utils.TrackDBOperation("delete", "entries")
	defer timer.ObserveDuration()

	if len(ids) == 0 {
		return nil
	}

	wanted := make([]int, 0, len(ids))
	for id := range ids {
		wanted = append(wanted, id)
	}

	if _, err := s.MongoCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": wanted}}); err != nil {
		utils.TrackError("database", "entry_delete_failed")
		return err
	}

	utils.TrackEntryOperation("delete_bulk")
	return nil
}
