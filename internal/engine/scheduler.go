package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/crecokenya/truthguard/internal/model"
	"github.com/crecokenya/truthguard/internal/store"
)

// Scheduler runs the delayed, simulated AI analysis for newly submitted
// claims. Each scheduled claim gets its own timer goroutine; none of them
// block the submitting caller. The claim is re-fetched when the timer fires,
// so a claim deleted or already analyzed in the meantime is a silent no-op.
type Scheduler struct {
	engine      *Engine
	delay       time.Duration
	verdict     string
	explanation string
	log         *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler bound to the engine
func NewScheduler(engine *Engine, cfg model.AnalysisConfig, log *zap.SugaredLogger) *Scheduler {
	if cfg.Delay <= 0 {
		cfg.Delay = 3 * time.Second
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		engine:      engine,
		delay:       cfg.Delay,
		verdict:     cfg.Verdict,
		explanation: cfg.Explanation,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Schedule queues the analysis transition for a claim. Callers must not
// re-schedule an existing claim id; the aiAnalyzed check at fire time keeps
// a double invocation from applying the transition twice regardless.
func (s *Scheduler) Schedule(claimID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.delay):
		}

		s.fire(claimID)
	}()
}

// fire applies the analysis transition if the claim still exists and has
// not been analyzed
func (s *Scheduler) fire(claimID string) {
	claim, err := s.engine.Claim(claimID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Debugw("analysis skipped, claim gone", "claim", claimID)
			return
		}
		s.log.Warnw("analysis fetch failed", "claim", claimID, "error", err)
		return
	}
	if claim.AIAnalyzed {
		s.log.Debugw("analysis skipped, already analyzed", "claim", claimID)
		return
	}

	analyzed := true
	pendingApproval := true
	status := model.StatusPending
	upd := model.ClaimUpdate{
		AIAnalyzed:        &analyzed,
		AIPendingApproval: &pendingApproval,
		Verdict:           &s.verdict,
		Explanation:       &s.explanation,
		Status:            &status,
	}

	if _, err := s.engine.ApplyUpdate(claimID, upd); err != nil {
		s.log.Warnw("analysis update failed", "claim", claimID, "error", err)
		return
	}

	notified, err := s.engine.Fanout().NotifyAdmins(claimID,
		"AI Analysis Complete", "A claim requires admin approval after AI analysis")
	if err != nil {
		s.log.Warnw("admin notification failed", "claim", claimID, "error", err)
		return
	}

	s.log.Infow("ai analysis complete", "claim", claimID, "admins_notified", notified)
}

// Wait blocks until every in-flight timer has fired and completed
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Shutdown cancels pending timers and waits for running ones to finish
func (s *Scheduler) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
