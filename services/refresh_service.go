// services/refresh_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ZoneRegistry lists the zones the refresh should cover.
type ZoneRegistry interface {
	ListZones(ctx context.Context) ([]models.Zone, error)
}

// MarineFetcher fetches raw tide extremes for a point.
type MarineFetcher interface {
	FetchExtremes(ctx context.Context, lat, lng float64) ([]json.RawMessage, error)
}

// TideStoreWriter overwrites the stored extremes for a zone.
type TideStoreWriter interface {
	SaveDailyMareas(ctx context.Context, zoneID string, mareas []json.RawMessage, updatedAt time.Time) error
}

// RunRecorder keeps a log of refresh runs. Optional.
type RunRecorder interface {
	StartRun(ctx context.Context, run models.RefreshRun) error
	FinishRun(ctx context.Context, run models.RefreshRun) error
}

// RefreshOptions bound one refresh run.
type RefreshOptions struct {
	// MaxZones processes only the first MaxZones registered zones. <= 0 means all.
	MaxZones int
	// Concurrency limits simultaneous zone operations. <= 0 means one per zone.
	Concurrency int
}

// RefreshResult summarises a run.
type RefreshResult struct {
	RunID          string
	ZonesTotal     int
	ZonesProcessed int
}

// RefreshService copies marine API tide extremes into the tide store for every registered zone.
type RefreshService struct {
	zones  ZoneRegistry
	marine MarineFetcher
	store  TideStoreWriter
	runs   RunRecorder
	opts   RefreshOptions
	now    func() time.Time
	newID  func() string
}

// NewRefreshService wires the refresh collaborators. runs may be nil.
func NewRefreshService(zones ZoneRegistry, marine MarineFetcher, store TideStoreWriter, runs RunRecorder, opts RefreshOptions) *RefreshService {
	return &RefreshService{
		zones:  zones,
		marine: marine,
		store:  store,
		runs:   runs,
		opts:   opts,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Refresh fetches and stores extremes for each selected zone concurrently and
// waits for all of them. Any zone failure fails the run; zones already written
// in the same run are kept.
func (s *RefreshService) Refresh(ctx context.Context) (RefreshResult, error) {
	run := models.RefreshRun{
		ID:        s.newID(),
		StartedAt: s.now().UTC(),
		Status:    models.RefreshStatusRunning,
	}
	result := RefreshResult{RunID: run.ID}
	log.Printf("Service: Starting scheduled tide refresh (run %s)...\n", run.ID)

	if s.runs != nil {
		if err := s.runs.StartRun(ctx, run); err != nil {
			log.Printf("WARN Service: Could not record start of run %s: %v\n", run.ID, err)
		}
	}

	zones, err := s.zones.ListZones(ctx)
	if err != nil {
		err = fmt.Errorf("reading zone registry: %w", err)
		s.finish(ctx, &run, 0, err)
		return result, err
	}

	selected := s.selectZones(zones)
	result.ZonesTotal = len(selected)
	run.ZonesTotal = len(selected)
	if len(selected) < len(zones) {
		log.Printf("Service: Processing %d of %d registered zones (max_zones=%d)\n", len(selected), len(zones), s.opts.MaxZones)
	}

	limit := s.opts.Concurrency
	if limit <= 0 {
		limit = len(selected)
	}

	var processed int64
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, zone := range selected {
		zone := zone
		g.Go(func() error {
			if err := s.refreshZone(ctx, zone); err != nil {
				log.Printf("ERROR Service: Zone %s failed: %v\n", zone.ID, err)
				return err
			}
			atomic.AddInt64(&processed, 1)
			return nil
		})
	}

	err = g.Wait()
	result.ZonesProcessed = int(atomic.LoadInt64(&processed))
	s.finish(ctx, &run, result.ZonesProcessed, err)

	if err != nil {
		return result, err
	}
	log.Printf("Service: Scheduled tide refresh completed successfully (%d zones).\n", result.ZonesProcessed)
	return result, nil
}

func (s *RefreshService) selectZones(zones []models.Zone) []models.Zone {
	if s.opts.MaxZones > 0 && len(zones) > s.opts.MaxZones {
		return zones[:s.opts.MaxZones]
	}
	return zones
}

func (s *RefreshService) refreshZone(ctx context.Context, zone models.Zone) error {
	log.Printf("Service: Fetching tide extremes for zone %s (%.4f, %.4f)\n", zone.ID, zone.Lat, zone.Lng)

	mareas, err := s.marine.FetchExtremes(ctx, zone.Lat, zone.Lng)
	if err != nil {
		return fmt.Errorf("zone %s: %w", zone.ID, err)
	}
	if err := s.store.SaveDailyMareas(ctx, zone.ID, mareas, s.now().UTC()); err != nil {
		return fmt.Errorf("zone %s: %w", zone.ID, err)
	}
	return nil
}

func (s *RefreshService) finish(ctx context.Context, run *models.RefreshRun, processed int, runErr error) {
	finished := s.now().UTC()
	run.FinishedAt = &finished
	run.ZonesProcessed = processed
	run.Status = models.RefreshStatusSucceeded
	if runErr != nil {
		run.Status = models.RefreshStatusFailed
		run.ErrorMessage = runErr.Error()
		log.Printf("ERROR Service: Scheduled tide refresh %s failed: %v\n", run.ID, runErr)
	}

	if s.runs == nil {
		return
	}
	// Record the outcome even if the run's own context was cancelled.
	if err := s.runs.FinishRun(context.WithoutCancel(ctx), *run); err != nil {
		log.Printf("WARN Service: Could not record outcome of run %s: %v\n", run.ID, err)
	}
}
