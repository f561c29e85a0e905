package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {

	// --- Form definitions ---
	router.GET("/categories", h.ListCategories)

	// --- Current generation cycle ---
	promptGroup := router.Group("/prompt")
	{
		promptGroup.GET("", h.GetPrompt)
		promptGroup.POST("/category", h.SelectCategory)
		promptGroup.PATCH("/fields", h.SetField)
		promptGroup.POST("/generate", h.Generate)
		promptGroup.POST("/improve", h.Improve)
	}

	// --- Saved prompts ---
	savedGroup := router.Group("/saved")
	{
		savedGroup.GET("", h.ListSaved)
		savedGroup.POST("", h.Save)
		savedGroup.DELETE("/:id", h.DeleteSaved)
		savedGroup.POST("/:id/select", h.SelectSaved)
	}

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
