package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gewnthar/mareas/backend/database"
	"github.com/gewnthar/mareas/backend/models"
	"github.com/stretchr/testify/assert"
)

type fakeDailyReader struct {
	docs map[string]*models.DailyMareaDoc
	err  error
}

func (f *fakeDailyReader) GetDailyMareas(ctx context.Context, zoneID string) (*models.DailyMareaDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[zoneID]
	if !ok {
		return nil, fmt.Errorf("daily mareas for zone %s: %w", zoneID, database.ErrNotFound)
	}
	return doc, nil
}

func TestGetDailyMareasHandler(t *testing.T) {
	reader := &fakeDailyReader{docs: map[string]*models.DailyMareaDoc{
		"valparaiso": {
			ZoneID:              "valparaiso",
			Mareas:              []json.RawMessage{json.RawMessage(`{"height":1.58,"type":"high"}`)},
			UltimaActualizacion: time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC),
		},
	}}
	h := GetDailyMareasHandler(reader)

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantBody string
	}{
		{"found", http.MethodGet, "/api/mareas-diarias?zona=valparaiso", http.StatusOK,
			`{"zonaId":"valparaiso","mareas":[{"height":1.58,"type":"high"}],"ultimaActualizacion":"2026-10-19T06:00:00Z"}`},
		{"missing zona", http.MethodGet, "/api/mareas-diarias", http.StatusBadRequest,
			`{"error":"El parámetro \"zona\" es requerido."}`},
		{"unknown zona", http.MethodGet, "/api/mareas-diarias?zona=arica", http.StatusNotFound,
			`{"error":"No hay mareas guardadas para la zona arica."}`},
		{"wrong method", http.MethodPost, "/api/mareas-diarias?zona=valparaiso", http.StatusMethodNotAllowed,
			`{"error":"Method Not Allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGetDailyMareasHandler_StoreError(t *testing.T) {
	h := GetDailyMareasHandler(&fakeDailyReader{err: errors.New("get daily mareas: connection refused")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mareas-diarias?zona=valparaiso", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
