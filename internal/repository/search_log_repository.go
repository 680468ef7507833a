package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SearchLog is one answered user query, kept for analytics.
type SearchLog struct {
	ID             string
	SessionID      string
	Query          string
	ProductType    string
	SourceCount    int
	ResultCount    int
	BestDealTitle  string
	BestDealSource string
	CreatedAt      time.Time
}

type SearchLogRepository struct {
	DB *sql.DB
}

func (r *SearchLogRepository) Save(entry SearchLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(`
		INSERT INTO search_log
		(id, session_id, query, product_type, source_count, result_count, best_deal_title, best_deal_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, entry.ID, entry.SessionID, entry.Query, entry.ProductType,
		entry.SourceCount, entry.ResultCount, entry.BestDealTitle, entry.BestDealSource)
	return err
}

// RecentBySession lists the latest queries of one conversation, newest
// first.
func (r *SearchLogRepository) RecentBySession(sessionID string, limit int) ([]SearchLog, error) {
	rows, err := r.DB.Query(`
		SELECT id, session_id, query, product_type, source_count, result_count, best_deal_title, best_deal_source, created_at
		FROM search_log
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []SearchLog
	for rows.Next() {
		var e SearchLog
		rows.Scan(&e.ID, &e.SessionID, &e.Query, &e.ProductType,
			&e.SourceCount, &e.ResultCount, &e.BestDealTitle, &e.BestDealSource, &e.CreatedAt)
		list = append(list, e)
	}
	return list, nil
}
