package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gewnthar/mareas/backend/config"
	"github.com/gewnthar/mareas/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	return db
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewZoneStore(db).UpsertZones(ctx, []models.Zone{{ID: "arica", Lat: -18.47, Lng: -70.31}}))
	require.NoError(t, EnsureSchema(ctx, db))

	zones, err := NewZoneStore(db).ListZones(ctx)
	require.NoError(t, err)
	assert.Len(t, zones, 1)
}

func TestZoneStore_UpsertAndList(t *testing.T) {
	store := NewZoneStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.UpsertZones(ctx, []models.Zone{
		{ID: "valparaiso", Lat: -33.0472, Lng: -71.6127},
		{ID: "arica", Lat: -18.4783, Lng: -70.3126},
	}))
	require.NoError(t, store.UpsertZones(ctx, []models.Zone{
		{ID: "valparaiso", Lat: -33.05, Lng: -71.61},
	}))

	zones, err := store.ListZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Zone{
		{ID: "arica", Lat: -18.4783, Lng: -70.3126},
		{ID: "valparaiso", Lat: -33.05, Lng: -71.61},
	}, zones)
}

func TestZoneStore_UpsertEmpty(t *testing.T) {
	store := NewZoneStore(newTestDB(t))
	assert.NoError(t, store.UpsertZones(context.Background(), nil))
}

func TestTideStore_SaveOverwrites(t *testing.T) {
	store := NewTideStore(newTestDB(t))
	ctx := context.Background()
	first := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveDailyMareas(ctx, "valparaiso", []json.RawMessage{
		json.RawMessage(`{"height":0.4,"time":"2026-10-18T03:00:00+00:00","type":"low"}`),
	}, first))
	require.NoError(t, store.SaveDailyMareas(ctx, "valparaiso", []json.RawMessage{
		json.RawMessage(`{"height":0.5,"time":"2026-10-19T03:40:00+00:00","type":"low"}`),
		json.RawMessage(`{"height":1.6,"time":"2026-10-19T09:50:00+00:00","type":"high"}`),
	}, second))

	doc, err := store.GetDailyMareas(ctx, "valparaiso")
	require.NoError(t, err)

	assert.Equal(t, "valparaiso", doc.ZoneID)
	assert.True(t, second.Equal(doc.UltimaActualizacion), "ultimaActualizacion = %v, want %v", doc.UltimaActualizacion, second)
	require.Len(t, doc.Mareas, 2)
	assert.JSONEq(t, `{"height":1.6,"time":"2026-10-19T09:50:00+00:00","type":"high"}`, string(doc.Mareas[1]))
}

func TestTideStore_SaveNilMareas(t *testing.T) {
	store := NewTideStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.SaveDailyMareas(ctx, "arica", nil, time.Now()))

	doc, err := store.GetDailyMareas(ctx, "arica")
	require.NoError(t, err)
	assert.Empty(t, doc.Mareas)
}

func TestTideStore_NotFound(t *testing.T) {
	store := NewTideStore(newTestDB(t))

	_, err := store.GetDailyMareas(context.Background(), "atlantis")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTideStore_ClosedDB(t *testing.T) {
	db := newTestDB(t)
	store := NewTideStore(db)
	db.Close()

	err := store.SaveDailyMareas(context.Background(), "arica", nil, time.Now())

	var serr *StoreError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "arica", serr.Key)
}

func TestRefreshRunStore_Lifecycle(t *testing.T) {
	store := NewRefreshRunStore(newTestDB(t))
	ctx := context.Background()

	older := models.RefreshRun{
		ID:        "run-1",
		StartedAt: time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC),
		Status:    models.RefreshStatusRunning,
	}
	newer := models.RefreshRun{
		ID:         "run-2",
		StartedAt:  time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC),
		ZonesTotal: 9,
		Status:     models.RefreshStatusRunning,
	}
	require.NoError(t, store.StartRun(ctx, older))
	require.NoError(t, store.StartRun(ctx, newer))

	finished := newer.StartedAt.Add(3 * time.Second)
	newer.FinishedAt = &finished
	newer.ZonesProcessed = 8
	newer.Status = models.RefreshStatusFailed
	newer.ErrorMessage = "save daily mareas for arica: disk full"
	require.NoError(t, store.FinishRun(ctx, newer))

	runs, err := store.ListRecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, models.RefreshStatusFailed, runs[0].Status)
	assert.Equal(t, 8, runs[0].ZonesProcessed)
	assert.Equal(t, newer.ErrorMessage, runs[0].ErrorMessage)
	require.NotNil(t, runs[0].FinishedAt)
	assert.True(t, finished.Equal(*runs[0].FinishedAt))

	assert.Equal(t, "run-1", runs[1].ID)
	assert.Nil(t, runs[1].FinishedAt)
}

func TestRefreshRunStore_ListFailsOnBadRow(t *testing.T) {
	db := newTestDB(t)
	store := NewRefreshRunStore(db)
	ctx := context.Background()

	require.NoError(t, store.StartRun(ctx, models.RefreshRun{
		ID:        "run-1",
		StartedAt: time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC),
		Status:    models.RefreshStatusRunning,
	}))
	_, err := db.ExecContext(ctx, `INSERT INTO refresh_runs (id, started_at, zones_total, status) VALUES ('run-2', ?, 'many', 'running')`,
		time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	runs, err := store.ListRecentRuns(ctx, 10)

	require.Error(t, err)
	assert.Nil(t, runs)
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
}
