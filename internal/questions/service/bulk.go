package service

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"quizbank/internal/errs"
	"quizbank/internal/models"
	"quizbank/internal/questions/bulk"
)

// resolveConcurrency caps the category-resolution fan-out within one row so
// a pathological row cannot flood the storage engine.
const resolveConcurrency = 8

// BulkResult is the batch outcome of an ingestion run. Both sequences keep
// the original file's row order.
type BulkResult struct {
	Uploaded      []models.BulkRowResult `json:"uploaded_data"`
	NotUploadable []models.BulkRow       `json:"not_uploadable_data"`
}

// IngestRows drives the bulk pipeline over already-parsed rows: classify,
// resolve categories, create questions, link mappings. Rows are processed
// sequentially; one row's failure never aborts the rest, and the batch
// itself cannot fail once parsing has succeeded.
func (s *Service) IngestRows(ctx context.Context, rows []bulk.Row) BulkResult {
	result := BulkResult{
		Uploaded:      []models.BulkRowResult{},
		NotUploadable: []models.BulkRow{},
	}

	for _, row := range rows {
		classified := bulk.Classify(row)
		if !classified.Uploadable {
			result.NotUploadable = append(result.NotUploadable, classified)
			continue
		}
		result.Uploaded = append(result.Uploaded, s.ingestRow(ctx, classified))
	}

	return result
}

// ingestRow runs one uploadable row through the pipeline and reports its
// terminal state. Category names that fail to resolve are dropped from the
// row rather than failing it.
func (s *Service) ingestRow(ctx context.Context, row models.BulkRow) models.BulkRowResult {
	categoryIDs := s.resolveCategories(ctx, row.CategoryNames)

	created, err := s.Create(ctx, row.QuestionText, categoryIDs)
	if err != nil {
		if conflict, ok := errs.AsConflict(err); ok {
			rowResult := models.BulkRowResult{CategoryIDs: categoryIDs, Error: conflict.Message}
			if existing, ok := conflict.Existing.(*models.Question); ok {
				rowResult.Existing = existing
			}
			return rowResult
		}
		s.logger.WithError(models.ErrorInfo{Message: err.Error()}).
			WithPayload(map[string]interface{}{"question": row.QuestionText}).
			Warn("bulk row failed")
		return models.BulkRowResult{CategoryIDs: categoryIDs, Error: err.Error()}
	}

	return models.BulkRowResult{
		Question:    created.Question,
		CategoryIDs: categoryIDs,
		Error:       created.MappingError,
	}
}

// resolveCategories resolves each distinct name of a row concurrently,
// bounded by resolveConcurrency, and returns the resolved ids in
// first-occurrence order with failed names excluded.
func (s *Service) resolveCategories(ctx context.Context, names []string) []string {
	names = distinctNames(names)
	if len(names) == 0 {
		return []string{}
	}

	ids := make([]string, len(names))
	var mu sync.Mutex
	var failed []string

	var g errgroup.Group
	g.SetLimit(resolveConcurrency)
	for i, name := range names {
		g.Go(func() error {
			id, err := s.resolver.Resolve(ctx, name)
			if err != nil {
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				return nil // a failed name never fails its siblings
			}
			ids[i] = id
			return nil
		})
	}
	g.Wait()

	if len(failed) > 0 {
		s.logger.WithPayload(map[string]interface{}{
			"categories": strings.Join(failed, ", "),
		}).Warn("dropped categories that failed to resolve")
	}

	resolved := make([]string, 0, len(names))
	for _, id := range ids {
		if id != "" {
			resolved = append(resolved, id)
		}
	}
	return resolved
}

// distinctNames drops repeated names, keeping first-occurrence order.
func distinctNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	distinct := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}
	return distinct
}
