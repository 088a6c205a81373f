package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"quizbank/internal/categories/store"
	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/errs"
	"quizbank/internal/models"
)

// Service implements the category workflows, including the idempotent
// find-or-create resolution used by bulk ingestion.
type Service struct {
	store store.CategoryStore
}

// NewService creates a new category Service.
func NewService(s store.CategoryStore) *Service {
	return &Service{store: s}
}

// Create adds a new category. A duplicate name is a business conflict that
// carries the existing record.
func (s *Service) Create(ctx context.Context, name string) (*models.Category, error) {
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewConflict("A category already exists with this name", existing)
	}

	now := models.NowMillis()
	category := &models.Category{Name: name, CreatedOn: now, UpdatedOn: now}
	if err := s.store.Create(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			// Lost a creation race; the winner's record is the conflict.
			winner, ferr := s.store.FindByName(ctx, name)
			if ferr == nil && winner != nil {
				return nil, errs.NewConflict("A category already exists with this name", winner)
			}
		}
		return nil, err
	}
	return category, nil
}

// List returns categories matching the given list options.
func (s *Service) List(ctx context.Context, opts mongodb.ListOptions) ([]models.Category, error) {
	return s.store.List(ctx, opts)
}

// CategoryWiseQuestions returns the flattened (category, question) rows for
// one category id.
func (s *Service) CategoryWiseQuestions(ctx context.Context, categoryID string) ([]models.CategoryQuestion, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, errs.NewValidation("Invalid category id")
	}
	return s.store.CategoryWiseQuestions(ctx, oid)
}

// Resolve returns the id of the category with the given name, creating the
// category when absent. Losing a concurrent creation race is not an error:
// the winner's id is returned instead. Any other storage failure affects
// this name only.
func (s *Service) Resolve(ctx context.Context, name string) (string, error) {
	existing, err := s.store.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolving category %q: %w", name, err)
	}
	if existing != nil {
		return existing.ID.Hex(), nil
	}

	now := models.NowMillis()
	category := &models.Category{Name: name, CreatedOn: now, UpdatedOn: now}
	err = s.store.Create(ctx, category)
	if err == nil {
		return category.ID.Hex(), nil
	}
	if !errors.Is(err, store.ErrDuplicateName) {
		return "", fmt.Errorf("resolving category %q: %w", name, err)
	}

	// A concurrent request created the name first; use its record.
	winner, err := s.store.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolving category %q: %w", name, err)
	}
	if winner == nil {
		return "", fmt.Errorf("resolving category %q: created concurrently but not found", name)
	}
	return winner.ID.Hex(), nil
}
