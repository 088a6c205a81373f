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
var ErrDuplicateName = errors.New("category name already exists")

// CategoryStore defines the persistence interface for category documents.
type CategoryStore interface {
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context, opts mongodb.ListOptions) ([]models.Category, error)
	CategoryWiseQuestions(ctx context.Context, categoryID primitive.ObjectID) ([]models.CategoryQuestion, error)
}

// MongoCategoryStore implements CategoryStore on the 'categories'
// collection.
type MongoCategoryStore struct {
	collection *mongo.Collection
}

// NewMongoCategoryStore creates a new MongoCategoryStore.
func NewMongoCategoryStore(db *mongo.Database) *MongoCategoryStore {
	return &MongoCategoryStore{collection: db.Collection(mongodb.CategoriesCollection)}
}

// FindByName looks up a category by exact, case-sensitive name match.
// A missing category is reported as (nil, nil).
func (s *MongoCategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category document and backfills the generated id.
// A unique-index collision surfaces as ErrDuplicateName.
func (s *MongoCategoryStore) Create(ctx context.Context, category *models.Category) error {
	res, err := s.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

// List runs the list pipeline built from opts.
func (s *MongoCategoryStore) List(ctx context.Context, opts mongodb.ListOptions) ([]models.Category, error) {
	cursor, err := s.collection.Aggregate(ctx, mongodb.BuildListPipeline(opts))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryWiseQuestions joins the category with its mapped questions and
// returns one flattened row per (category, question) pair. The mapping
// collection stores ids as strings, hence the $toString/$toObjectId
// conversions inside the lookups.
func (s *MongoCategoryStore) CategoryWiseQuestions(ctx context.Context, categoryID primitive.ObjectID) ([]models.CategoryQuestion, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: categoryID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.QuestionCategoryMapCollection},
			{Key: "let", Value: bson.D{{Key: "category_id", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{
						{Key: "$eq", Value: bson.A{
							bson.D{{Key: "$toString", Value: "$$category_id"}},
							"$category_id",
						}},
					}},
				}}},
				bson.D{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: mongodb.QuestionsCollection},
					{Key: "let", Value: bson.D{{Key: "question_id", Value: "$question_id"}}},
					{Key: "pipeline", Value: bson.A{
						bson.D{{Key: "$match", Value: bson.D{
							{Key: "$expr", Value: bson.D{
								{Key: "$eq", Value: bson.A{
									bson.D{{Key: "$toObjectId", Value: "$$question_id"}},
									"$_id",
								}},
							}},
						}}},
					}},
					{Key: "as", Value: "question"},
				}}},
				bson.D{{Key: "$addFields", Value: bson.D{
					{Key: "question", Value: bson.D{{Key: "$first", Value: "$question"}}},
				}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: "$question._id"},
					{Key: "name", Value: "$question.name"},
					{Key: "createdon_datetime", Value: "$question.createdon_datetime"},
					{Key: "updatedon_datetime", Value: "$question.updatedon_datetime"},
				}}},
			}},
			{Key: "as", Value: "questions"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$questions"},
			{Key: "preserveNullAndEmptyArrays", Value: false},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "category_name", Value: "$name"},
			{Key: "category_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "category_createdon_datetime", Value: "$createdon_datetime"},
			{Key: "category_updated_datetime", Value: "$updatedon_datetime"},
			{Key: "question_id", Value: bson.D{{Key: "$toString", Value: "$questions._id"}}},
			{Key: "question_name", Value: "$questions.name"},
			{Key: "question_createdon_datetime", Value: "$questions.createdon_datetime"},
			{Key: "question_updated_datetime", Value: "$questions.updatedon_datetime"},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []models.CategoryQuestion{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
