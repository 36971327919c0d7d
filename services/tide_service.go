// services/tide_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gewnthar/mareas/backend/models"
	"github.com/gewnthar/mareas/backend/utils"
	"golang.org/x/sync/singleflight"
)

// ErrMissingPort is returned when no port identifier was given.
var ErrMissingPort = errors.New("port identifier is required")

const (
	// dateLayout is the calendar date key format (UTC).
	dateLayout = "2006-01-02"

	defaultFetchTimeout = 15 * time.Second
)

// TideFetcher fetches and parses the tide table for a port.
type TideFetcher interface {
	FetchTideEvents(ctx context.Context, portID string) ([]models.TideEvent, error)
}

// ReportCache holds one report per port for the current day.
type ReportCache interface {
	Lookup(portID, today string) (models.TideReport, bool)
	Store(portID, today string, report models.TideReport)
}

// TideService answers per-port tide queries, fetching at most once per port per day.
type TideService struct {
	fetcher      TideFetcher
	cache        ReportCache
	fetchTimeout time.Duration
	now          func() time.Time
	group        singleflight.Group
}

// NewTideService wires a fetcher and cache. fetchTimeout <= 0 uses 15s.
func NewTideService(fetcher TideFetcher, cache ReportCache, fetchTimeout time.Duration) *TideService {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &TideService{
		fetcher:      fetcher,
		cache:        cache,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// Today returns the current UTC calendar date key.
func (s *TideService) Today() string {
	return s.now().UTC().Format(dateLayout)
}

// GetTideReport returns today's report for portID and whether it was served
// from the cache without waiting on an upstream fetch.
func (s *TideService) GetTideReport(ctx context.Context, portID string) (models.TideReport, bool, error) {
	portID = utils.NormalizePortID(portID)
	if portID == "" {
		return models.TideReport{}, false, ErrMissingPort
	}

	today := s.Today()
	if report, ok := s.cache.Lookup(portID, today); ok {
		log.Printf("Service: [Cache] Returning tide data for %s (%s)\n", portID, today)
		return report, true, nil
	}

	// Concurrent misses for the same port and day share one upstream fetch.
	// The fetch is detached from the caller that started it so one client
	// going away does not fail the others; each caller still stops waiting
	// when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(portID+"|"+today, func() (interface{}, error) {
		if report, ok := s.cache.Lookup(portID, today); ok {
			return report, nil
		}
		return s.fetchReport(fetchCtx, portID, today)
	})

	select {
	case <-ctx.Done():
		log.Printf("WARN Service: Stopped waiting for tide report for %s: %v\n", portID, ctx.Err())
		return models.TideReport{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			log.Printf("ERROR Service: Failed to get tide report for %s: %v\n", portID, res.Err)
			return models.TideReport{}, false, res.Err
		}
		return res.Val.(models.TideReport), false, nil
	}
}

func (s *TideService) fetchReport(ctx context.Context, portID, today string) (models.TideReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	events, err := s.fetcher.FetchTideEvents(ctx, portID)
	if err != nil {
		return models.TideReport{}, fmt.Errorf("fetching tides for %s: %w", portID, err)
	}

	report := models.TideReport{
		Source: models.SourceSHOA,
		PortID: portID,
		Date:   today,
		Events: events,
	}
	s.cache.Store(portID, today, report)
	log.Printf("Service: [API] New tide data for %s cached for %s\n", portID, today)
	return report, nil
}
