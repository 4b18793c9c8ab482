// internal/workers/onboarding/allocate-employee-id/handler.go
package allocateemployeeid

import (
	"context"
	"strconv"
	"sync"
	"time"

	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/metrics"
)

// EmployeeLister is satisfied by *talenox.Client.
type EmployeeLister interface {
	ListEmployees(ctx context.Context, per int, sort string) ([]map[string]interface{}, error)
}

// Allocator derives the next sequential employee number from recent HR records.
//
// Two processes can still read the same page and issue the same number. Within
// one process the mutex and lastIssued floor keep numbers strictly increasing.
type Allocator struct {
	config    *Config
	lister    EmployeeLister
	extractor IDExtractor
	logger    logger.Logger

	mu         sync.Mutex
	lastIssued int
}

func NewAllocator(config *Config, lister EmployeeLister, extractor IDExtractor, log logger.Logger) *Allocator {
	if config == nil {
		config = DefaultConfig()
	}
	if extractor == nil {
		extractor = NewFieldExtractor()
	}
	return &Allocator{
		config:    config,
		lister:    lister,
		extractor: extractor,
		logger:    log.WithFields(map[string]interface{}{"component": "allocate-employee-id"}),
	}
}

// Next never fails. It returns one more than the highest of the remote page and the
// last id issued by this process. With neither available it returns the fallback, so
// the fallback is only issued once per process; later failed queries continue from it.
func (a *Allocator) Next(ctx context.Context) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	remoteMax, found := a.remoteMax(ctx)

	highest := remoteMax
	if a.lastIssued > highest {
		highest = a.lastIssued
	}

	if highest == 0 {
		a.logger.Info("no existing employee ids found, using fallback", map[string]interface{}{
			"fallback":   a.config.FallbackID,
			"durationMs": time.Since(start).Milliseconds(),
		})
		if n, err := strconv.Atoi(a.config.FallbackID); err == nil {
			a.lastIssued = n
		}
		return a.config.FallbackID
	}

	next := highest + 1
	a.lastIssued = next

	a.logger.Info("allocated employee id", map[string]interface{}{
		"employeeId": next,
		"remoteMax":  remoteMax,
		"candidates": found,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return strconv.Itoa(next)
}

// remoteMax returns the highest valid id on the page and the number of candidates seen.
func (a *Allocator) remoteMax(ctx context.Context) (int, int) {
	if a.lister == nil {
		return 0, 0
	}

	records, err := a.lister.ListEmployees(ctx, a.config.PageSize, a.config.Sort)
	metrics.ObserveCall("list_employees", err)
	if err != nil {
		a.logger.Warn("could not fetch existing employees", map[string]interface{}{
			"error": err,
		})
		return 0, 0
	}

	best, found := 0, 0
	for _, record := range records {
		raw, ok := a.extractor.Extract(record)
		if !ok {
			continue
		}
		found++
		n, ok := NumericValue(raw)
		if !ok || n >= a.config.Ceiling {
			continue
		}
		if n > best {
			best = n
		}
	}

	a.logger.Debug("scanned employee page", map[string]interface{}{
		"records":    len(records),
		"candidates": found,
		"highest":    best,
	})

	return best, found
}
