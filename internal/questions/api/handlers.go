package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	mongodb "quizbank/internal/database/mongo"
	"quizbank/internal/errs"
	"quizbank/internal/questions/bulk"
	"quizbank/internal/questions/service"
	"quizbank/pkg/response"
)

// Handler bundles the question endpoint handlers.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new question Handler.
func NewHandler(s *service.Service) *Handler {
	return &Handler{service: s}
}

// CreateQuestionRequest is the JSON payload of POST /create-question.
type CreateQuestionRequest struct {
	Name        string   `json:"name" binding:"required"`
	CategoryIDs []string `json:"category_ids"`
}

// CreateQuestion adds a question and links the supplied categories.
func (h *Handler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req.Name, req.CategoryIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result, "Question created succesfully !!")
}

// GetQuestions lists questions with optional filter, sort and pagination.
func (h *Handler) GetQuestions(c *gin.Context) {
	questions, err := h.service.List(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKCount(c, questions, len(questions), "Questions fetched succesfully !!")
}

// MapQuestionCategoryRequest is the JSON payload of the map and delete-map
// endpoints.
type MapQuestionCategoryRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// MapQuestionCategory links a question and a category, idempotently.
func (h *Handler) MapQuestionCategory(c *gin.Context) {
	var req MapQuestionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	mapping, err := h.service.MapCategory(c.Request.Context(), req.QuestionID, req.CategoryID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, mapping, "Question and Category mapped succesfully !!")
}

// DeleteMapQuestionCategory removes the link between a question and a
// category. A missing pair still succeeds, with a zero count.
func (h *Handler) DeleteMapQuestionCategory(c *gin.Context) {
	var req MapQuestionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	deleted, err := h.service.UnmapCategory(c.Request.Context(), req.QuestionID, req.CategoryID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted_count": deleted}, "Question and Category mapping deleted succesfully !!")
}

// BulkUploadCSV ingests a CSV of questions and category names. Only the
// parse step can fail the request; every later failure is a per-row entry.
func (h *Handler) BulkUploadCSV(c *gin.Context) {
	h.bulkUpload(c, ".csv", bulk.ParseCSV)
}

// BulkUploadXLSX ingests the first sheet of an Excel workbook through the
// same pipeline as the CSV route.
func (h *Handler) BulkUploadXLSX(c *gin.Context) {
	h.bulkUpload(c, ".xlsx", bulk.ParseXLSX)
}

func (h *Handler) bulkUpload(c *gin.Context, wantExt string, parse func(io.Reader) ([]bulk.Row, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "Missing 'file' upload", nil)
		return
	}

	if ext := strings.ToLower(path.Ext(fileHeader.Filename)); ext != wantExt {
		response.FromError(c, errs.NewUnsupportedMedia("Only "+strings.ToUpper(strings.TrimPrefix(wantExt, "."))+" files are allowed"))
		return
	}

	rows, err := parseUpload(fileHeader, parse)
	if err != nil {
		response.FromError(c, err)
		return
	}

	result := h.service.IngestRows(c.Request.Context(), rows)

	response.OKExtra(c, "Questions and Categories uploaded succesfully !!", gin.H{
		"uploaded_data":       result.Uploaded,
		"not_uploadable_data": result.NotUploadable,
	})
}

func parseUpload(fileHeader *multipart.FileHeader, parse func(io.Reader) ([]bulk.Row, error)) ([]bulk.Row, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, errs.NewValidation("Unable to read uploaded file")
	}
	defer f.Close()
	return parse(f)
}

// listOptionsFromQuery parses the shared list query parameters. Invalid
// numbers fall back to their zero values, matching the lenient historical
// behavior.
func listOptionsFromQuery(c *gin.Context) mongodb.ListOptions {
	skip, _ := strconv.ParseInt(c.Query("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return mongodb.ListOptions{
		Name:     c.Query("name"),
		SortBy:   c.Query("sortby"),
		SortDesc: strings.EqualFold(strings.TrimSpace(c.Query("sortorder")), "desc"),
		Skip:     skip,
		Limit:    limit,
	}
}
