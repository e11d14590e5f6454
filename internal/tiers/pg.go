package tiers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTier = `
	SELECT tier
	FROM user_subscriptions
	WHERE user_id = $1 AND active = true
	ORDER BY started_at DESC
	LIMIT 1
`

// PGResolver reads the caller's tier from the subscription table owned by
// the billing service. Users without an active subscription are free tier.
type PGResolver struct {
	db *pgxpool.Pool
}

func NewPGResolver(db *pgxpool.Pool) *PGResolver {
	return &PGResolver{db: db}
}

func (r *PGResolver) ResolveTier(ctx context.Context, userID string) (Tier, error) {
	var raw string

	err := r.db.QueryRow(ctx, queryTier, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return TierFree, nil
	}

	if err != nil {
		return TierFree, fmt.Errorf("failed to query subscription: %w", err)
	}

	return Parse(raw), nil
}
