package itineraries

import (
	"codeberg.org/wayfare/server/internal/itineraries"
)

// ListResponse is the paginated history of a user's generations
type ListResponse struct {
	Itineraries []itineraries.Record `json:"itineraries"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}
