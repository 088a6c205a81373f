package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quizbank/internal/categories/service"
	mongodb "quizbank/internal/database/mongo"
	"quizbank/pkg/response"
)

// Handler bundles the category endpoint handlers.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new category Handler.
func NewHandler(s *service.Service) *Handler {
	return &Handler{service: s}
}

// CreateCategoryRequest is the JSON payload of POST /create-category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory adds a new category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	category, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, category, "Category created succesfully !!")
}

// GetCategories lists categories with optional filter, sort and pagination.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKCount(c, categories, len(categories), "Category fetched succesfully !!")
}

// GetCategoryWiseQuestions lists the questions mapped to one category.
func (h *Handler) GetCategoryWiseQuestions(c *gin.Context) {
	categoryID := c.Query("category_id")
	if categoryID == "" {
		response.Err(c, http.StatusBadRequest, "category_id is required", nil)
		return
	}

	rows, err := h.service.CategoryWiseQuestions(c.Request.Context(), categoryID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OKCount(c, rows, len(rows), "Category wise questions fetched succesfully !!")
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
