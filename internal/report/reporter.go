// Package report fans final-result reports out to the configured
// sinks. A completed mission may be reported more than once for the
// same session because the core keeps no cross-request state; sinks
// and receivers de-duplicate by sessionId.
package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"honeypot-agent/internal/domain"
)

const defaultDeliveryTimeout = 30 * time.Second

// Sink is one delivery target for a final report.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, report domain.FinalReport) error
}

// Reporter fans a report out to all sinks concurrently and waits for
// every delivery before returning. The Lambda execution environment is
// frozen as soon as the response is posted, so work left running in a
// background goroutine would be suspended or lost; delivery has to
// finish inside the invocation. Each sink gets its own bounded
// context. With no sinks configured, Submit is a no-op.
type Reporter struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
}

func NewReporter(logger *slog.Logger, sinks ...Sink) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		sinks:   sinks,
		timeout: defaultDeliveryTimeout,
		logger:  logger,
	}
}

// Submit dispatches the report to every sink and returns once all
// deliveries have finished or timed out. A sink failure is logged and
// never fails the request.
func (r *Reporter) Submit(ctx context.Context, report domain.FinalReport) {
	var wg sync.WaitGroup
	for _, sink := range r.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			if err := s.Deliver(sinkCtx, report); err != nil {
				r.logger.Error("final report delivery failed",
					"sink", s.Name(),
					"sessionId", report.SessionID,
					"err", err)
				return
			}
			r.logger.Info("final report delivered",
				"sink", s.Name(),
				"sessionId", report.SessionID,
				"messages", report.TotalMessagesExchanged)
		}(sink)
	}
	wg.Wait()
}
