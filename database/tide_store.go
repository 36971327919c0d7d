// database/tide_store.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gewnthar/mareas/backend/models"
)

// TideStore persists one DailyMareaDoc per zone in mareas_diarias.
type TideStore struct {
	db *sql.DB
}

func NewTideStore(db *sql.DB) *TideStore {
	return &TideStore{db: db}
}

// SaveDailyMareas overwrites the stored extremes for zoneID.
func (s *TideStore) SaveDailyMareas(ctx context.Context, zoneID string, mareas []json.RawMessage, updatedAt time.Time) error {
	if mareas == nil {
		mareas = []json.RawMessage{}
	}
	payload, err := json.Marshal(mareas)
	if err != nil {
		return &StoreError{Op: "encode daily mareas", Key: zoneID, Err: err}
	}

	_, err = s.db.ExecContext(ctx,
		`REPLACE INTO mareas_diarias (zone_id, mareas_json, ultima_actualizacion) VALUES (?, ?, ?)`,
		zoneID, string(payload), updatedAt.UTC(),
	)
	if err != nil {
		return &StoreError{Op: "save daily mareas", Key: zoneID, Err: err}
	}
	return nil
}

// GetDailyMareas returns the last stored document for zoneID, or ErrNotFound.
func (s *TideStore) GetDailyMareas(ctx context.Context, zoneID string) (*models.DailyMareaDoc, error) {
	var (
		raw       string
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT mareas_json, ultima_actualizacion FROM mareas_diarias WHERE zone_id = ?`,
		zoneID,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily mareas for zone %s: %w", zoneID, ErrNotFound)
	}
	if err != nil {
		return nil, &StoreError{Op: "get daily mareas", Key: zoneID, Err: err}
	}

	doc := &models.DailyMareaDoc{ZoneID: zoneID, UltimaActualizacion: updatedAt.UTC()}
	if err := json.Unmarshal([]byte(raw), &doc.Mareas); err != nil {
		return nil, &StoreError{Op: "decode daily mareas", Key: zoneID, Err: err}
	}
	return doc, nil
}
