package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category represents a document in the 'categories' collection.
// Names are unique (exact, case-sensitive) and backed by a unique index.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedOn int64              `bson:"createdon_datetime" json:"createdon_datetime"`
	UpdatedOn int64              `bson:"updatedon_datetime" json:"updatedon_datetime"`
}

// CategoryQuestion is one flattened row of the category-wise questions
// aggregation: the category fields joined with a single mapped question.
type CategoryQuestion struct {
	CategoryName      string `bson:"category_name" json:"category_name"`
	CategoryID        string `bson:"category_id" json:"category_id"`
	CategoryCreatedOn int64  `bson:"category_createdon_datetime" json:"category_createdon_datetime"`
	CategoryUpdatedOn int64  `bson:"category_updated_datetime" json:"category_updated_datetime"`
	QuestionID        string `bson:"question_id" json:"question_id"`
	QuestionName      string `bson:"question_name" json:"question_name"`
	QuestionCreatedOn int64  `bson:"question_createdon_datetime" json:"question_createdon_datetime"`
	QuestionUpdatedOn int64  `bson:"question_updated_datetime" json:"question_updated_datetime"`
}
