package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListOptions describes a paginated, filterable listing over a collection
// whose documents carry a 'name' field.
type ListOptions struct {
	// Name, when non-empty, filters by case-insensitive substring match.
	Name string
	// SortBy, when non-empty, names the field to sort on.
	SortBy string
	// SortDesc sorts descending; ignored when SortBy is empty.
	SortDesc bool
	// Skip is the number of documents to skip.
	Skip int64
	// Limit caps the result size; zero means unlimited.
	Limit int64
}

// BuildListPipeline translates ListOptions into an aggregation pipeline.
// The stage order is fixed (match, sort, skip, limit) and the returned
// pipeline is built in one pass from the options value alone.
func BuildListPipeline(opts ListOptions) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if opts.Name != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "name", Value: bson.D{
				{Key: "$regex", Value: opts.Name},
				{Key: "$options", Value: "i"},
			}},
		}}})
	}

	if opts.SortBy != "" {
		order := 1
		if opts.SortDesc {
			order = -1
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: opts.SortBy, Value: order},
		}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$skip", Value: opts.Skip}})

	if opts.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
	}

	return pipeline
}
