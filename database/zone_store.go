// database/zone_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gewnthar/mareas/backend/models"
)

// ZoneStore is the zone registry backed by the zonas_marea table.
type ZoneStore struct {
	db *sql.DB
}

func NewZoneStore(db *sql.DB) *ZoneStore {
	return &ZoneStore{db: db}
}

// ListZones returns every registered zone ordered by id.
func (s *ZoneStore) ListZones(ctx context.Context) ([]models.Zone, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, lat, lng FROM zonas_marea ORDER BY id`)
	if err != nil {
		return nil, &StoreError{Op: "list zones", Err: err}
	}
	defer rows.Close()

	var zones []models.Zone
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.Lat, &z.Lng); err != nil {
			return nil, &StoreError{Op: "scan zone row", Err: err}
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "iterate zone rows", Err: err}
	}
	return zones, nil
}

// UpsertZones inserts or replaces the given zones in one transaction.
func (s *ZoneStore) UpsertZones(ctx context.Context, zones []models.Zone) error {
	if len(zones) == 0 {
		log.Println("No zones provided to save.")
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Op: "begin zone transaction", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `REPLACE INTO zonas_marea (id, lat, lng) VALUES (?, ?, ?)`)
	if err != nil {
		return &StoreError{Op: "prepare zone upsert", Err: err}
	}
	defer stmt.Close()

	for _, z := range zones {
		if _, err := stmt.ExecContext(ctx, z.ID, z.Lat, z.Lng); err != nil {
			log.Printf("ERROR Database: Failed to upsert zone %s: %v", z.ID, err)
			return &StoreError{Op: "upsert zone", Key: z.ID, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit zone transaction", Err: fmt.Errorf("%d zones: %w", len(zones), err)}
	}

	log.Printf("Database: Successfully saved/updated %d zones.\n", len(zones))
	return nil
}
