package analyzer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"testreport/internal/domain"
	"testreport/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Fallback tries AI providers in order, skipping those with open
// circuits, and settles on the rule-based analyzer when every provider
// is unavailable. It is total: Analyze never returns an error, which is
// what lets result parsing treat analysis as infallible.
type Fallback struct {
	analyzers []port.FailureAnalyzer
	circuits  []*circuitState
	names     []string
	rule      *RuleBased
}

// NewFallback creates a Fallback from an ordered list of providers and their names.
func NewFallback(analyzers []port.FailureAnalyzer, names []string) *Fallback {
	circuits := make([]*circuitState, len(analyzers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &Fallback{
		analyzers: analyzers,
		circuits:  circuits,
		names:     names,
		rule:      NewRuleBased(),
	}
}

func (f *Fallback) Analyze(ctx context.Context, in port.FailureInput) (*domain.FailureAnalysis, error) {
	now := time.Now()

	for i, a := range f.analyzers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("analyzer.Fallback: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			continue
		}

		out, err := a.Analyze(ctx, in)
		if err == nil {
			return out, nil
		}
		log.Printf("analyzer.Fallback: %s failed: %v", f.names[i], err)

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			f.circuits[i].open(now.Add(rlErr.RetryAfter))
		}
	}

	return f.rule.Analyze(ctx, in)
}

// ProviderStatus describes one provider of the chain for the status endpoint.
type ProviderStatus struct {
	Name        string    `json:"name"`
	CircuitOpen bool      `json:"circuit_open"`
	ResetAt     time.Time `json:"reset_at,omitempty"`
}

// Status reports the configured chain and circuit health. The rule-based
// terminal analyzer is always listed last.
func (f *Fallback) Status() []ProviderStatus {
	now := time.Now()
	statuses := make([]ProviderStatus, 0, len(f.analyzers)+1)
	for i, name := range f.names {
		resetAt, open := f.circuits[i].isOpenWithReset(now)
		s := ProviderStatus{Name: name, CircuitOpen: open}
		if open {
			s.ResetAt = resetAt
		}
		statuses = append(statuses, s)
	}
	return append(statuses, ProviderStatus{Name: "rule-based"})
}
