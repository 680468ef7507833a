package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dealfinder/internal/model"
)

// PricePoint is one observed price for a listing.
type PricePoint struct {
	Source     string
	ItemID     string
	Title      string
	Price      float64
	Shipping   float64
	ObservedAt time.Time
}

// PriceHistoryRepository records every price seen during searches so
// listings can be tracked over time.
type PriceHistoryRepository struct {
	Pool *pgxpool.Pool
}

func (r *PriceHistoryRepository) Record(ctx context.Context, p *model.Product) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO price_history (source, item_id, title, price, shipping, observed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, p.Source, p.ItemID, p.Title, float64(p.Price), p.ShippingCost())
	return err
}

// RecordAll stores a snapshot for every listing; failures are counted,
// not fatal, so one bad row does not lose the batch.
func (r *PriceHistoryRepository) RecordAll(ctx context.Context, products []*model.Product) (int, error) {
	var failed int
	var lastErr error
	for _, p := range products {
		if p.Title == "" {
			continue
		}
		if err := r.Record(ctx, p); err != nil {
			failed++
			lastErr = err
		}
	}
	if failed > 0 {
		return failed, lastErr
	}
	return 0, nil
}

// History lists price points for a listing, oldest first.
func (r *PriceHistoryRepository) History(ctx context.Context, source, itemID string, limit int) ([]PricePoint, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT source, item_id, title, price, shipping, observed_at
		FROM price_history
		WHERE source = $1 AND item_id = $2
		ORDER BY observed_at ASC
		LIMIT $3
	`, source, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []PricePoint
	for rows.Next() {
		var pt PricePoint
		if err := rows.Scan(&pt.Source, &pt.ItemID, &pt.Title, &pt.Price, &pt.Shipping, &pt.ObservedAt); err != nil {
			return nil, err
		}
		points = append(points, pt)
	}
	return points, rows.Err()
}
