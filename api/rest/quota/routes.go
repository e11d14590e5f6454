package quota

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/auth"
	q "codeberg.org/wayfare/server/internal/quota"
)

// registers quota probe routes
func RegisterRoutes(router *gin.RouterGroup, gate *q.Gate) {
	router.GET("/quota", auth.AuthMiddleware(), Handler(gate))
}
