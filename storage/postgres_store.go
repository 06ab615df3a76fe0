package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/tobgu/qframe"

	"house-prices/models"
)

var (
	_ ListingSource   = (*PostgresStore)(nil)
	_ ListingImporter = (*PostgresStore)(nil)
)

// PostgresStore keeps the house sales dataset in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS house_sales (
			id           SERIAL PRIMARY KEY,
			overall_cond INTEGER       NOT NULL,
			utilities    VARCHAR(16)   NOT NULL DEFAULT '',
			foundation   VARCHAR(16)   NOT NULL DEFAULT '',
			year_built   INTEGER       NOT NULL,
			ms_zoning    VARCHAR(16)   NOT NULL DEFAULT '',
			sale_price   NUMERIC(12,2) NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_house_sales_cond_year ON house_sales(overall_cond, year_built);
	`)
	return err
}

// Import replaces the table contents with listings, inserting in batches
// inside one transaction.
func (ps *PostgresStore) Import(ctx context.Context, listings []models.Listing) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM house_sales"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 200
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := insertBatch(ctx, tx, listings[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, batch []models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, l := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			l.OverallCond, l.Utilities, l.Foundation, l.YearBuilt, l.MSZoning, l.SalePrice)
	}

	query := fmt.Sprintf(`
		INSERT INTO house_sales (overall_cond, utilities, foundation, year_built, ms_zoning, sale_price)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// FetchAll retrieves all stored rows in insertion order, numbered from 0.
func (ps *PostgresStore) FetchAll(ctx context.Context) ([]models.Listing, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT overall_cond, utilities, foundation, year_built, ms_zoning, sale_price
		FROM house_sales
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l := models.Listing{Row: len(listings)}
		if err := rows.Scan(
			&l.OverallCond, &l.Utilities, &l.Foundation,
			&l.YearBuilt, &l.MSZoning, &l.SalePrice,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Load returns the stored dataset as a six-column frame.
func (ps *PostgresStore) Load(ctx context.Context) (qframe.QFrame, error) {
	listings, err := ps.FetchAll(ctx)
	if err != nil {
		return qframe.QFrame{}, err
	}
	return NewFrame(listings), nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
