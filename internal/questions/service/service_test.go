package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/errs"
	"quizbank/internal/models"
	"quizbank/internal/questions/store"
	"quizbank/pkg/logger"
)

// fakeQuestionStore is an in-memory QuestionStore.
type fakeQuestionStore struct {
	byName map[string]*models.Question
}

var _ store.QuestionStore = (*fakeQuestionStore)(nil)

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{byName: map[string]*models.Question{}}
}

func (f *fakeQuestionStore) put(name string) *models.Question {
	q := &models.Question{ID: primitive.NewObjectID(), Name: name}
	f.byName[name] = q
	return q
}

func (f *fakeQuestionStore) FindByName(_ context.Context, name string) (*models.Question, error) {
	return f.byName[name], nil
}

func (f *fakeQuestionStore) Create(_ context.Context, question *models.Question) error {
	if _, exists := f.byName[question.Name]; exists {
		return store.ErrDuplicateName
	}
	question.ID = primitive.NewObjectID()
	f.byName[question.Name] = question
	return nil
}

func (f *fakeQuestionStore) List(context.Context, mongodb.ListOptions) ([]models.Question, error) {
	out := []models.Question{}
	for _, q := range f.byName {
		out = append(out, *q)
	}
	return out, nil
}

// fakeMappingStore is an in-memory MappingStore with a unique pair
// constraint.
type fakeMappingStore struct {
	pairs     map[string]models.QuestionCategoryMap
	insertErr error
}

var _ store.MappingStore = (*fakeMappingStore)(nil)

func newFakeMappingStore() *fakeMappingStore {
	return &fakeMappingStore{pairs: map[string]models.QuestionCategoryMap{}}
}

func pairKey(questionID, categoryID string) string {
	return questionID + "/" + categoryID
}

func (f *fakeMappingStore) InsertMany(_ context.Context, mappings []models.QuestionCategoryMap) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	batch := map[string]struct{}{}
	for _, m := range mappings {
		key := pairKey(m.QuestionID, m.CategoryID)
		if _, exists := f.pairs[key]; exists {
			return errors.New("duplicate key")
		}
		if _, exists := batch[key]; exists {
			return errors.New("duplicate key")
		}
		batch[key] = struct{}{}
	}
	for _, m := range mappings {
		m.ID = primitive.NewObjectID()
		f.pairs[pairKey(m.QuestionID, m.CategoryID)] = m
	}
	return nil
}

func (f *fakeMappingStore) Upsert(_ context.Context, questionID, categoryID string) (*models.QuestionCategoryMap, error) {
	key := pairKey(questionID, categoryID)
	if existing, ok := f.pairs[key]; ok {
		return &existing, nil
	}
	m := models.QuestionCategoryMap{
		ID:         primitive.NewObjectID(),
		QuestionID: questionID,
		CategoryID: categoryID,
		CreatedOn:  models.NowMillis(),
	}
	f.pairs[key] = m
	return &m, nil
}

func (f *fakeMappingStore) DeleteByPair(_ context.Context, questionID, categoryID string) (int64, error) {
	key := pairKey(questionID, categoryID)
	if _, ok := f.pairs[key]; !ok {
		return 0, nil
	}
	delete(f.pairs, key)
	return 1, nil
}

// fakeResolver maps names to fixed ids and can fail specific names. It is
// safe for concurrent use because the orchestrator fans resolution out.
type fakeResolver struct {
	mu      sync.Mutex
	ids     map[string]string
	failing map[string]bool
	calls   int
}

func (f *fakeResolver) Resolve(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing[name] {
		return "", fmt.Errorf("resolving category %q: storage down", name)
	}
	if f.ids == nil {
		f.ids = map[string]string{}
	}
	id, ok := f.ids[name]
	if !ok {
		id = primitive.NewObjectID().Hex()
		f.ids[name] = id
	}
	return id, nil
}

func (f *fakeResolver) id(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[name]
}

func (f *fakeResolver) resolved(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[name]
	return ok
}

func newTestService(questions *fakeQuestionStore, mappings *fakeMappingStore, resolver CategoryResolver) *Service {
	return NewService(questions, mappings, resolver, logger.New("test", "", ""))
}

func TestCreate_LinksCategoriesInOneBatch(t *testing.T) {
	questions := newFakeQuestionStore()
	mappings := newFakeMappingStore()
	svc := newTestService(questions, mappings, &fakeResolver{})

	result, err := svc.Create(context.Background(), "Who killed Ravana?", []string{"cat1", "cat2"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.Question == nil || result.Question.Name != "Who killed Ravana?" {
		t.Fatalf("unexpected question: %+v", result.Question)
	}
	if result.MappingError != "" {
		t.Errorf("unexpected mapping error: %s", result.MappingError)
	}
	if len(mappings.pairs) != 2 {
		t.Errorf("expected 2 mappings, got %d", len(mappings.pairs))
	}
}

func TestCreate_DuplicateNameReturnsConflictWithExisting(t *testing.T) {
	questions := newFakeQuestionStore()
	existing := questions.put("Who killed Ravana?")
	svc := newTestService(questions, newFakeMappingStore(), &fakeResolver{})

	_, err := svc.Create(context.Background(), "Who killed Ravana?", nil)
	conflict, ok := errs.AsConflict(err)
	if !ok {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, ok := conflict.Existing.(*models.Question)
	if !ok || got.ID != existing.ID {
		t.Errorf("conflict should carry the existing record, got %v", conflict.Existing)
	}
	if len(questions.byName) != 1 {
		t.Errorf("no duplicate question record may be created, have %d", len(questions.byName))
	}
}

func TestCreate_MappingFailureIsPartialSuccess(t *testing.T) {
	questions := newFakeQuestionStore()
	mappings := newFakeMappingStore()
	mappings.insertErr = errors.New("E11000 duplicate key")
	svc := newTestService(questions, mappings, &fakeResolver{})

	result, err := svc.Create(context.Background(), "Q", []string{"cat1"})
	if err != nil {
		t.Fatalf("mapping failure must not fail the create: %v", err)
	}
	if result.Question == nil {
		t.Fatal("question should have been created despite the mapping failure")
	}
	if result.MappingError == "" {
		t.Error("partial success must surface the mapping error")
	}
	if questions.byName["Q"] == nil {
		t.Error("question record should remain, no rollback across entity types")
	}
}

func TestCreate_RepeatedCategoryIDsLinkOnce(t *testing.T) {
	mappings := newFakeMappingStore()
	svc := newTestService(newFakeQuestionStore(), mappings, &fakeResolver{})

	result, err := svc.Create(context.Background(), "Q", []string{"cat1", "cat1", "cat2"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if result.MappingError != "" {
		t.Errorf("repeated ids must not break the batch insert: %s", result.MappingError)
	}
	if len(mappings.pairs) != 2 {
		t.Errorf("expected 2 mappings, got %d", len(mappings.pairs))
	}
}

func TestMapCategory_UpsertsInPlace(t *testing.T) {
	mappings := newFakeMappingStore()
	svc := newTestService(newFakeQuestionStore(), mappings, &fakeResolver{})

	first, err := svc.MapCategory(context.Background(), "q1", "c1")
	if err != nil {
		t.Fatalf("MapCategory() error = %v", err)
	}
	second, err := svc.MapCategory(context.Background(), "q1", "c1")
	if err != nil {
		t.Fatalf("MapCategory() error = %v", err)
	}
	if first.ID != second.ID {
		t.Error("re-mapping the same pair must upsert in place, not duplicate")
	}
	if len(mappings.pairs) != 1 {
		t.Errorf("expected 1 mapping, got %d", len(mappings.pairs))
	}
}

func TestUnmapCategory_MissingPairIsZeroCountSuccess(t *testing.T) {
	svc := newTestService(newFakeQuestionStore(), newFakeMappingStore(), &fakeResolver{})

	deleted, err := svc.UnmapCategory(context.Background(), "q1", "c1")
	if err != nil {
		t.Fatalf("UnmapCategory() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
