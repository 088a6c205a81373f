package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the question endpoints on the given group. The bulk
// upload routes stay outside the guard so importer clients can post without
// a token.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authGuard gin.HandlerFunc) {
	rg.POST("/bulk-upload-question-category-csv", h.BulkUploadCSV)
	rg.POST("/bulk-upload-question-category-xlsx", h.BulkUploadXLSX)

	guarded := rg.Group("")
	guarded.Use(authGuard)
	{
		guarded.POST("/create-question", h.CreateQuestion)
		guarded.GET("/get-all-questions", h.GetQuestions)
		guarded.POST("/map-question-category", h.MapQuestionCategory)
		guarded.POST("/delete-map-question-category", h.DeleteMapQuestionCategory)
	}
}
