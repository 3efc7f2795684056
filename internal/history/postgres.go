package history

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

// PostgresStore persists match-run summaries to the match_history table.
type PostgresStore struct {
	db  *sql.DB
	cap int
}

// NewPostgresStore opens a connection for the given DSN. A non-positive cap
// falls back to the default.
func NewPostgresStore(dsn string, cap int) (*PostgresStore, error) {
	if cap <= 0 {
		cap = DefaultCap
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{db: db, cap: cap}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

// Append inserts the record and trims the buyer's history beyond the cap in
// one transaction, keeping the per-buyer bound an invariant of the table.
func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO match_history (
			id, buyer_id, recorded_at, match_count, confidence, methodology, top_match
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.BuyerID, rec.Timestamp, rec.MatchCount,
		rec.Confidence, string(rec.Methodology), rec.TopMatch,
	)
	if err != nil {
		return fmt.Errorf("insert match history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM match_history
		WHERE buyer_id = $1 AND id NOT IN (
			SELECT id FROM match_history
			WHERE buyer_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		)`,
		rec.BuyerID, s.cap,
	)
	if err != nil {
		return fmt.Errorf("trim match history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to n most recent records for the buyer, newest first.
func (s *PostgresStore) Recent(ctx context.Context, buyerID string, n int) ([]Record, error) {
	if n <= 0 || n > s.cap {
		n = s.cap
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, buyer_id, recorded_at, match_count, confidence, methodology, top_match
		FROM match_history
		WHERE buyer_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`,
		buyerID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query match history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var methodology string
		if err := rows.Scan(
			&rec.ID, &rec.BuyerID, &rec.Timestamp, &rec.MatchCount,
			&rec.Confidence, &methodology, &rec.TopMatch,
		); err != nil {
			return nil, fmt.Errorf("scan match history: %w", err)
		}
		rec.Methodology = domain.Methodology(methodology)
		records = append(records, rec)
	}

	return records, rows.Err()
}
