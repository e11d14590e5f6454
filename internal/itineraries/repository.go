package itineraries

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save persists one finished generation and fills in the record's ID and
// creation time
func (r *Repository) Save(ctx context.Context, record *Record) error {
	providersUsed := record.ProvidersUsed
	if providersUsed == nil {
		providersUsed = []string{}
	}

	err := r.db.QueryRow(
		ctx,
		querySave,
		record.RequestID,
		record.UserID,
		record.Tier,
		record.Location,
		record.Days,
		record.Itinerary,
		record.QualityScore,
		record.FallbackUsed,
		providersUsed,
		record.CacheHits,
		record.TotalLatencyMs,
	).Scan(
		&record.ID,
		&record.CreatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id, userID string) (*Record, error) {
	var record Record

	err := r.db.QueryRow(ctx, queryGet, id, userID).Scan(
		&record.ID,
		&record.RequestID,
		&record.UserID,
		&record.Tier,
		&record.Location,
		&record.Days,
		&record.Itinerary,
		&record.QualityScore,
		&record.FallbackUsed,
		&record.ProvidersUsed,
		&record.CacheHits,
		&record.TotalLatencyMs,
		&record.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItineraryNotFound
	}

	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	rows, err := r.db.Query(ctx, queryListByUser, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var records []Record

	for rows.Next() {
		var record Record

		err := rows.Scan(
			&record.ID,
			&record.RequestID,
			&record.UserID,
			&record.Tier,
			&record.Location,
			&record.Days,
			&record.Itinerary,
			&record.QualityScore,
			&record.FallbackUsed,
			&record.ProvidersUsed,
			&record.CacheHits,
			&record.TotalLatencyMs,
			&record.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}
