package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the category endpoints on the given group, all
// behind the bearer guard.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authGuard gin.HandlerFunc) {
	rg.Use(authGuard)
	rg.POST("/create-category", h.CreateCategory)
	rg.GET("/get-all-categories", h.GetCategories)
	rg.GET("/get-category-wise-questions", h.GetCategoryWiseQuestions)
}
