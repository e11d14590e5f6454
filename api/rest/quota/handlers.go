package quota

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/auth"
	"codeberg.org/wayfare/server/internal/errors"
	q "codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/tiers"
)

// creates the handler for the read-only quota probe
func Handler(gate *q.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		daily, monthly, err := gate.Peek(c.Request.Context(), userID, tiers.UsageItineraryGeneration)
		if err != nil {
			errors.InternalError(c, "quota lookup failed", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			UsageType: string(tiers.UsageItineraryGeneration),
			Daily:     daily,
			Monthly:   monthly,
		})
	}
}
