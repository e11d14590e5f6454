package itineraries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/auth"
	apierrors "codeberg.org/wayfare/server/internal/errors"
	"codeberg.org/wayfare/server/internal/itineraries"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// creates the handler listing the caller's generation history
func ListHandler(repo *itineraries.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			if val, err := strconv.Atoi(raw); err == nil && val > 0 && val <= maxListLimit {
				limit = val
			}
		}

		offset := 0
		if raw := c.Query("offset"); raw != "" {
			if val, err := strconv.Atoi(raw); err == nil && val >= 0 {
				offset = val
			}
		}

		records, err := repo.ListByUser(c.Request.Context(), userID, limit, offset)
		if err != nil {
			apierrors.InternalError(c, "failed to list itineraries", err)
			return
		}

		if records == nil {
			records = []itineraries.Record{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Itineraries: records,
			Limit:       limit,
			Offset:      offset,
		})
	}
}

// creates the handler fetching one stored generation by id
func GetHandler(repo *itineraries.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		id := c.Param("id")
		if id == "" {
			apierrors.BadRequest(c, "itinerary id is required", nil)
			return
		}

		record, err := repo.Get(c.Request.Context(), id, userID)
		if errors.Is(err, itineraries.ErrItineraryNotFound) {
			apierrors.NotFound(c, "itinerary")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to fetch itinerary", err)
			return
		}

		c.JSON(http.StatusOK, record)
	}
}
