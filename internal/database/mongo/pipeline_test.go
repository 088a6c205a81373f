package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func stageName(stage bson.D) string {
	if len(stage) == 0 {
		return ""
	}
	return stage[0].Key
}

func TestBuildListPipeline_Defaults(t *testing.T) {
	pipeline := BuildListPipeline(ListOptions{})
	if len(pipeline) != 1 {
		t.Fatalf("expected only a $skip stage, got %d stages", len(pipeline))
	}
	if stageName(pipeline[0]) != "$skip" {
		t.Errorf("stage = %s, want $skip", stageName(pipeline[0]))
	}
	if got := pipeline[0][0].Value; got != int64(0) {
		t.Errorf("$skip = %v, want 0", got)
	}
}

func TestBuildListPipeline_AllOptions(t *testing.T) {
	pipeline := BuildListPipeline(ListOptions{
		Name:     "myth",
		SortBy:   "name",
		SortDesc: true,
		Skip:     10,
		Limit:    5,
	})

	want := []string{"$match", "$sort", "$skip", "$limit"}
	if len(pipeline) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(pipeline))
	}
	for i, name := range want {
		if stageName(pipeline[i]) != name {
			t.Errorf("stage %d = %s, want %s", i, stageName(pipeline[i]), name)
		}
	}

	match := pipeline[0][0].Value.(bson.D)
	nameFilter := match[0].Value.(bson.D)
	if nameFilter[0].Key != "$regex" || nameFilter[0].Value != "myth" {
		t.Errorf("unexpected $match filter: %v", nameFilter)
	}
	if nameFilter[1].Key != "$options" || nameFilter[1].Value != "i" {
		t.Errorf("name match should be case-insensitive: %v", nameFilter)
	}

	sort := pipeline[1][0].Value.(bson.D)
	if sort[0].Key != "name" || sort[0].Value != -1 {
		t.Errorf("unexpected $sort: %v", sort)
	}
}

func TestBuildListPipeline_SortAscendingByDefault(t *testing.T) {
	pipeline := BuildListPipeline(ListOptions{SortBy: "createdon_datetime"})
	sort := pipeline[0][0].Value.(bson.D)
	if sort[0].Value != 1 {
		t.Errorf("sort order = %v, want 1", sort[0].Value)
	}
}

func TestBuildListPipeline_NoLimitStageWhenZero(t *testing.T) {
	pipeline := BuildListPipeline(ListOptions{Name: "x", Limit: 0})
	for _, stage := range pipeline {
		if stageName(stage) == "$limit" {
			t.Error("zero limit must not add a $limit stage")
		}
	}
}
