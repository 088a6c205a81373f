package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/models"
)

// ErrDuplicateName is returned by Create when the unique index on 'name'
// rejects the insert.
var ErrDuplicateName = errors.New("question name already exists")

// QuestionStore defines the persistence interface for question documents.
type QuestionStore interface {
	FindByName(ctx context.Context, name string) (*models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	List(ctx context.Context, opts mongodb.ListOptions) ([]models.Question, error)
}

// MongoQuestionStore implements QuestionStore on the 'questions' collection.
type MongoQuestionStore struct {
	collection *mongo.Collection
}

// NewMongoQuestionStore creates a new MongoQuestionStore.
func NewMongoQuestionStore(db *mongo.Database) *MongoQuestionStore {
	return &MongoQuestionStore{collection: db.Collection(mongodb.QuestionsCollection)}
}

// FindByName looks up a question by exact name match. A missing question is
// reported as (nil, nil).
func (s *MongoQuestionStore) FindByName(ctx context.Context, name string) (*models.Question, error) {
	var question models.Question
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// Create inserts a new question document and backfills the generated id.
// A unique-index collision surfaces as ErrDuplicateName.
func (s *MongoQuestionStore) Create(ctx context.Context, question *models.Question) error {
	res, err := s.collection.InsertOne(ctx, question)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		question.ID = oid
	}
	return nil
}

// List runs the list pipeline built from opts.
func (s *MongoQuestionStore) List(ctx context.Context, opts mongodb.ListOptions) ([]models.Question, error) {
	cursor, err := s.collection.Aggregate(ctx, mongodb.BuildListPipeline(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
