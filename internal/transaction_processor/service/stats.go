package service

import (
	"sync/atomic"

	"github.com/payments-ledger/internal/domain/shared"
)

// Stats summarizes what a processing service has done so far
type Stats struct {
	Processed int64 `json:"processed"`
	Applied   int64 `json:"applied"`
	Ignored   int64 `json:"ignored"`
}

type counters struct {
	processed atomic.Int64
	applied   atomic.Int64
	ignored   atomic.Int64
}

func (c *counters) observe(outcome shared.Outcome) {
	c.processed.Add(1)
	if outcome.Applied {
		c.applied.Add(1)
	} else {
		c.ignored.Add(1)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Processed: c.processed.Load(),
		Applied:   c.applied.Load(),
		Ignored:   c.ignored.Load(),
	}
}
