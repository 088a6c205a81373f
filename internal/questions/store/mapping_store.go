package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/models"
)

// MappingStore defines the persistence interface for question-category join
// documents.
type MappingStore interface {
	InsertMany(ctx context.Context, mappings []models.QuestionCategoryMap) error
	Upsert(ctx context.Context, questionID, categoryID string) (*models.QuestionCategoryMap, error)
	DeleteByPair(ctx context.Context, questionID, categoryID string) (int64, error)
}

// MongoMappingStore implements MappingStore on the 'question_category_map'
// collection.
type MongoMappingStore struct {
	collection *mongo.Collection
}

// NewMongoMappingStore creates a new MongoMappingStore.
func NewMongoMappingStore(db *mongo.Database) *MongoMappingStore {
	return &MongoMappingStore{collection: db.Collection(mongodb.QuestionCategoryMapCollection)}
}

// InsertMany creates the given join documents in one batch. A collision
// with the compound unique index fails the whole batch.
func (s *MongoMappingStore) InsertMany(ctx context.Context, mappings []models.QuestionCategoryMap) error {
	if len(mappings) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(mappings))
	for _, m := range mappings {
		docs = append(docs, m)
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

// Upsert creates the (question_id, category_id) join document if absent and
// returns the resulting document either way.
func (s *MongoMappingStore) Upsert(ctx context.Context, questionID, categoryID string) (*models.QuestionCategoryMap, error) {
	filter := bson.M{"question_id": questionID, "category_id": categoryID}
	update := bson.M{
		"$set": bson.M{
			"question_id": questionID,
			"category_id": categoryID,
		},
		"$setOnInsert": bson.M{
			"createdon_datetime": models.NowMillis(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var mapping models.QuestionCategoryMap
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mapping); err != nil {
		return nil, err
	}
	return &mapping, nil
}

// DeleteByPair removes every join document for the pair and returns the
// deletion count. Deleting a nonexistent pair succeeds with count zero.
func (s *MongoMappingStore) DeleteByPair(ctx context.Context, questionID, categoryID string) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.M{
		"question_id": questionID,
		"category_id": categoryID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
