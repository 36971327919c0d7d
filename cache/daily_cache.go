// Package cache holds tide reports for the current calendar day.
package cache

import (
	"sync"

	"github.com/gewnthar/mareas/backend/models"
)

type entry struct {
	date   string
	report models.TideReport
}

// DailyCache maps a port to the report fetched for a given day (YYYY-MM-DD).
// A report is only served for the date it was stored under, so yesterday's
// tides are never returned as today's. Safe for concurrent use.
type DailyCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewDailyCache returns an empty cache.
func NewDailyCache() *DailyCache {
	return &DailyCache{entries: make(map[string]entry)}
}

// Lookup returns the report stored for portID only if it was stored for today.
func (c *DailyCache) Lookup(portID, today string) (models.TideReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[portID]
	if !ok || e.date != today {
		return models.TideReport{}, false
	}
	return e.report, true
}

// Store saves report for (portID, today), overwriting any previous value,
// and drops entries left over from other days.
func (c *DailyCache) Store(portID, today string, report models.TideReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[portID] = entry{date: today, report: report}
	for id, e := range c.entries {
		if e.date != today {
			delete(c.entries, id)
		}
	}
}

// Len reports how many entries are held.
func (c *DailyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
