package itineraries

const (
	querySave = `
		INSERT INTO itineraries (
			request_id, user_id, tier, location, days, itinerary,
			quality_score, fallback_used, providers_used, cache_hits, total_latency_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	queryGet = `
		SELECT id, request_id, user_id, tier, location, days, itinerary,
		       quality_score, fallback_used, providers_used, cache_hits, total_latency_ms, created_at
		FROM itineraries
		WHERE id = $1 AND user_id = $2
	`

	queryListByUser = `
		SELECT id, request_id, user_id, tier, location, days, itinerary,
		       quality_score, fallback_used, providers_used, cache_hits, total_latency_ms, created_at
		FROM itineraries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
)
