package service

import (
	"context"
	"errors"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/errs"
	"quizbank/internal/models"
	"quizbank/internal/questions/store"
	"quizbank/pkg/logger"
)

// CategoryResolver resolves a category name to its id, creating the
// category when absent.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Service implements the question workflows.
type Service struct {
	questions store.QuestionStore
	mappings  store.MappingStore
	resolver  CategoryResolver
	logger    *logger.Logger
}

// NewService creates a new question Service.
func NewService(questions store.QuestionStore, mappings store.MappingStore, resolver CategoryResolver, l *logger.Logger) *Service {
	return &Service{questions: questions, mappings: mappings, resolver: resolver, logger: l}
}

// CreateResult is the typed outcome of the question creation workflow.
// MappingError is set when the question was created but the batch insert of
// its category links failed; the question is not rolled back.
type CreateResult struct {
	Question     *models.Question `json:"question"`
	MappingError string           `json:"mapping_error,omitempty"`
}

// Create adds a question and, when category ids are supplied, links them in
// a single batch insert. Repeated category ids collapse to one link so the
// batch cannot collide with the unique pair index. A duplicate name is a
// business conflict carrying the existing record. A mapping failure after
// the question insert is a partial success, reported in the result rather
// than as an error.
func (s *Service) Create(ctx context.Context, name string, categoryIDs []string) (*CreateResult, error) {
	existing, err := s.questions.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewConflict("A question already exists with this name", existing)
	}

	now := models.NowMillis()
	question := &models.Question{Name: name, CreatedOn: now, UpdatedOn: now}
	if err := s.questions.Create(ctx, question); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			winner, ferr := s.questions.FindByName(ctx, name)
			if ferr == nil && winner != nil {
				return nil, errs.NewConflict("A question already exists with this name", winner)
			}
		}
		return nil, err
	}

	result := &CreateResult{Question: question}
	if len(categoryIDs) > 0 {
		seen := make(map[string]struct{}, len(categoryIDs))
		mappings := make([]models.QuestionCategoryMap, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			if _, dup := seen[categoryID]; dup {
				continue
			}
			seen[categoryID] = struct{}{}
			mappings = append(mappings, models.QuestionCategoryMap{
				QuestionID: question.ID.Hex(),
				CategoryID: categoryID,
				CreatedOn:  models.NowMillis(),
			})
		}
		if err := s.mappings.InsertMany(ctx, mappings); err != nil {
			s.logger.WithError(models.ErrorInfo{Message: err.Error()}).
				WithPayload(map[string]interface{}{"question_id": question.ID.Hex()}).
				Warn("question created but category mapping insert failed")
			result.MappingError = "question created but category mappings could not be inserted"
		}
	}
	return result, nil
}

// List returns questions matching the given list options.
func (s *Service) List(ctx context.Context, opts mongodb.ListOptions) ([]models.Question, error) {
	return s.questions.List(ctx, opts)
}

// MapCategory links a question and a category, idempotently: re-issuing the
// same pair upserts in place instead of duplicating.
func (s *Service) MapCategory(ctx context.Context, questionID, categoryID string) (*models.QuestionCategoryMap, error) {
	return s.mappings.Upsert(ctx, questionID, categoryID)
}

// UnmapCategory removes the link between a question and a category. A
// nonexistent pair deletes zero documents and is still a success.
func (s *Service) UnmapCategory(ctx context.Context, questionID, categoryID string) (int64, error) {
	return s.mappings.DeleteByPair(ctx, questionID, categoryID)
}
