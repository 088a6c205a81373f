package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the user endpoints on the given group. The register
// and login routes are open; everything else requires the bearer guard.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authGuard gin.HandlerFunc) {
	rg.POST("/create-user", h.CreateUser)
	rg.POST("/login", h.Login)

	guarded := rg.Group("")
	guarded.Use(authGuard)
	{
		guarded.GET("/profile", h.GetProfile)
		guarded.POST("/edit-profile", h.EditProfile)
		guarded.PATCH("/upload-image", h.UploadImage)
	}
}
