package itineraries

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/auth"
	"codeberg.org/wayfare/server/internal/itineraries"
)

// registers generation history routes
func RegisterRoutes(router *gin.RouterGroup, repo *itineraries.Repository) {
	group := router.Group("/itineraries", auth.AuthMiddleware())
	{
		group.GET("", ListHandler(repo))
		group.GET("/:id", GetHandler(repo))
	}
}
