package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/models"
)

// UserStore defines the persistence interface for user documents.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ProfileByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.UserProfileUpdate) (*models.User, error)
}

// MongoUserStore implements UserStore on the 'users' collection.
type MongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore creates a new MongoUserStore.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{collection: db.Collection(mongodb.UsersCollection)}
}

// Create inserts a new user document and backfills the generated id.
func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	res, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByEmail looks up a user by exact email match. A missing user is
// reported as (nil, nil).
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "email", Value: email}}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// ProfileByID fetches a user by id with the password projected out.
func (s *MongoUserStore) ProfileByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "password", Value: 0}}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// UpdateProfile applies the non-nil fields of update and returns the new
// document, password projected out.
func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update models.UserProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedon_datetime": models.NowMillis()}
	if update.Firstname != nil {
		set["firstname"] = *update.Firstname
	}
	if update.Lastname != nil {
		set["lastname"] = *update.Lastname
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.ProfileImageURL != nil {
		set["profile_image_url"] = *update.ProfileImageURL
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var user models.User
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
