package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Question represents a document in the 'questions' collection.
// Names are unique and backed by a unique index.
type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedOn int64              `bson:"createdon_datetime" json:"createdon_datetime"`
	UpdatedOn int64              `bson:"updatedon_datetime" json:"updatedon_datetime"`
}

// QuestionCategoryMap is a pure join document in the 'question_category_map'
// collection. The ids are stored as hex strings, matching the historical wire
// format, and the (question_id, category_id) pair carries a compound unique
// index.
type QuestionCategoryMap struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	QuestionID string             `bson:"question_id" json:"question_id"`
	CategoryID string             `bson:"category_id" json:"category_id"`
	CreatedOn  int64              `bson:"createdon_datetime" json:"createdon_datetime"`
}
