package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"scholar-sync/internal/config"
	"scholar-sync/internal/domain/eligibility"
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/scoring"
	"scholar-sync/internal/domain/student"
	"scholar-sync/internal/repository"

	"github.com/google/uuid"
)

const (
	stepSelectPopulation = "select_population"
	stepPartition        = "partition"
	stepEvaluate         = "evaluate"
	stepNotify           = "notify"
)

// Notifier delivers a match notification to the student. Implementations
// must tolerate redelivery: the pipeline records the pair durably before
// dispatching, so a crash between record and send drops the message rather
// than duplicating it.
type Notifier interface {
	NotifyMatch(ctx context.Context, st student.Student, sch scholarship.Scholarship, score scoring.Score) error
}

// RunSummary is what one pipeline run reports back.
type RunSummary struct {
	RunID          uuid.UUID
	StartedAt      time.Time
	Duration       time.Duration
	ShortCircuited bool

	StudentsProcessed     int
	ScholarshipsInWindow  int
	PairsEvaluated        int
	EligiblePairs         int
	MatchesCreated        int
	MatchesUpdated        int
	PairsFailed           int
	NotificationsQueued   int
	NotificationsSent     int
	NotificationsFailed   int
	RejectionsByDimension map[eligibility.Dimension]int
}

type MatchingPipeline struct {
	students      repository.StudentRepository
	scholarships  repository.ScholarshipRepository
	matches       repository.MatchRepository
	notifications repository.NotificationRepository
	runs          repository.PipelineRunRepository

	scorer   scoring.Collaborator
	notifier Notifier

	cfg      config.PipelineConfig
	now      func() time.Time
	afterRun func(RunSummary)
}

func NewMatchingPipeline(
	students repository.StudentRepository,
	scholarships repository.ScholarshipRepository,
	matches repository.MatchRepository,
	notifications repository.NotificationRepository,
	runs repository.PipelineRunRepository,
	scorer scoring.Collaborator,
	notifier Notifier,
	cfg config.PipelineConfig,
) *MatchingPipeline {
	if scorer == nil {
		scorer = scoring.NewEngine()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &MatchingPipeline{
		students:      students,
		scholarships:  scholarships,
		matches:       matches,
		notifications: notifications,
		runs:          runs,
		scorer:        scorer,
		notifier:      notifier,
		cfg:           cfg,
		now:           time.Now,
	}
}

// SetAfterRun registers a hook invoked after every successful run, with the
// run's summary. Used to drop stale caches and announce completion.
func (p *MatchingPipeline) SetAfterRun(fn func(RunSummary)) {
	p.afterRun = fn
}

// pendingNotification is a qualifying transition observed during evaluation,
// dispatched by the notify step.
type pendingNotification struct {
	student     student.Student
	scholarship scholarship.Scholarship
	score       scoring.Score
}

// Run executes one full matching pass: load the scholarship window, page
// through matchable students, evaluate every pair through the hard filters
// and the scorer, upsert the matches, then dispatch notifications for
// newly-qualifying top-tier pairs. Individual pair failures are counted and
// skipped; only step-level failures (after retries) abort the run.
func (p *MatchingPipeline) Run(ctx context.Context) (RunSummary, error) {
	startedAt := p.now()
	summary := RunSummary{
		StartedAt:             startedAt,
		RejectionsByDimension: make(map[eligibility.Dimension]int),
	}

	if p.runs != nil {
		runID, err := p.runs.Create(ctx, startedAt)
		if err != nil {
			log.Printf("pipeline=matching step=start status=warn error=%q", err)
		} else {
			summary.RunID = runID
		}
	}

	err := p.execute(ctx, &summary)
	summary.Duration = p.now().Sub(startedAt)

	status := "completed"
	if err != nil {
		status = "failed"
	}
	p.finishRun(&summary, status)

	log.Printf("pipeline=matching status=%s students=%d scholarships=%d eligible=%d created=%d updated=%d failed_pairs=%d notified=%d duration=%s",
		status, summary.StudentsProcessed, summary.ScholarshipsInWindow, summary.EligiblePairs,
		summary.MatchesCreated, summary.MatchesUpdated, summary.PairsFailed, summary.NotificationsSent, summary.Duration)

	if err == nil && p.afterRun != nil {
		p.afterRun(summary)
	}

	return summary, err
}

func (p *MatchingPipeline) execute(ctx context.Context, summary *RunSummary) error {
	var window []scholarship.Scholarship
	err := p.withRetry(ctx, stepSelectPopulation, func(ctx context.Context) error {
		since := p.now().Add(-p.cfg.ScholarshipLookback)
		var err error
		window, err = p.scholarships.ListMatchable(ctx, since)
		return err
	})
	if err != nil {
		return err
	}
	summary.ScholarshipsInWindow = len(window)

	// Nothing new or updated in the window: a successful no-op run.
	if len(window) == 0 {
		summary.ShortCircuited = true
		log.Printf("pipeline=matching step=%s status=short_circuit reason=empty_window", stepSelectPopulation)
		return nil
	}

	var pending []pendingNotification
	offset := 0
	for {
		var batch []student.Student
		err := p.withRetry(ctx, stepPartition, func(ctx context.Context) error {
			var err error
			batch, err = p.students.ListWithProfiles(ctx, p.cfg.MinProfileCompleteness, p.cfg.BatchSize, offset)
			return err
		})
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		batchPending := p.evaluateBatch(ctx, batch, window, summary)
		pending = append(pending, batchPending...)

		summary.StudentsProcessed += len(batch)
		offset += len(batch)
		if len(batch) < p.cfg.BatchSize {
			break
		}
	}

	summary.NotificationsQueued = len(pending)
	return p.withRetry(ctx, stepNotify, func(ctx context.Context) error {
		return p.dispatchNotifications(ctx, pending, summary)
	})
}

// evaluateBatch fans students across the worker pool. Each task owns one
// student end to end (filter, score, upsert), so no two workers touch the
// same pair and the shared summary only needs a mutex around the tallies.
func (p *MatchingPipeline) evaluateBatch(ctx context.Context, batch []student.Student, window []scholarship.Scholarship, summary *RunSummary) []pendingNotification {
	var (
		mu      sync.Mutex
		pending []pendingNotification
	)

	pool := NewWorkerPool(p.cfg.Workers, len(batch))
	results := pool.Run(ctx)
	for i := range batch {
		st := batch[i]
		pool.Submit(func(ctx context.Context) error {
			stPending, stats, tally := p.evaluateStudent(ctx, &st, window)
			mu.Lock()
			summary.PairsEvaluated += stats.Evaluated
			summary.EligiblePairs += stats.Eligible
			summary.PairsFailed += tally.pairs
			summary.MatchesCreated += tally.created
			summary.MatchesUpdated += tally.updated
			for dim, n := range stats.RejectionsByDimension {
				summary.RejectionsByDimension[dim] += n
			}
			pending = append(pending, stPending...)
			mu.Unlock()
			return nil
		})
	}
	pool.Close()
	for range results {
	}

	return pending
}

// studentTally carries per-student upsert counters out of evaluateStudent.
type studentTally struct {
	created int
	updated int
	pairs   int
}

func (p *MatchingPipeline) evaluateStudent(ctx context.Context, st *student.Student, window []scholarship.Scholarship) ([]pendingNotification, eligibility.BatchStats, studentTally) {
	cfg := eligibility.DefaultConfig()
	eligible, stats := eligibility.FilterScholarshipsWithStats(st, window, &cfg)

	var (
		pending []pendingNotification
		tally   studentTally
	)
	calculatedAt := p.now()
	for i := range eligible {
		sch := eligible[i]

		score, err := p.scorer.Score(ctx, st, &sch)
		if err != nil {
			tally.pairs++
			log.Printf("pipeline=matching step=%s status=pair_failed student=%s scholarship=%s error=%q",
				stepEvaluate, st.ID, sch.ID, err)
			continue
		}

		outcome, err := p.matches.Upsert(ctx, repository.MatchUpsert{
			StudentID:     st.ID,
			ScholarshipID: sch.ID,
			Score:         score,
			CalculatedAt:  calculatedAt,
		})
		if err != nil {
			tally.pairs++
			log.Printf("pipeline=matching step=%s status=pair_failed student=%s scholarship=%s error=%q",
				stepEvaluate, st.ID, sch.ID, err)
			continue
		}
		if outcome.Created {
			tally.created++
		} else {
			tally.updated++
		}

		if qualifyingTransition(score.Tier, outcome) {
			pending = append(pending, pendingNotification{student: *st, scholarship: sch, score: score})
		}
	}

	return pending, stats, tally
}

// qualifyingTransition reports whether this upsert moved the pair into
// notification territory: a brand-new top-tier match, or an existing match
// whose previous tier was below the notification cutoff.
func qualifyingTransition(tier string, outcome repository.MatchUpsertOutcome) bool {
	if !scoring.QualifiesForNotification(tier) {
		return false
	}
	if outcome.Created {
		return true
	}
	return !scoring.QualifiesForNotification(outcome.PreviousTier)
}

// dispatchNotifications records each pending pair and delivers it. The
// durable record is what makes retries and re-runs safe: a pair already in
// match_notifications is skipped no matter how it got there. Faults are
// isolated per notification, record and send alike; a pair whose record
// failed is still pending on the next run, so nothing is lost by skipping
// it here.
func (p *MatchingPipeline) dispatchNotifications(ctx context.Context, pending []pendingNotification, summary *RunSummary) error {
	for _, n := range pending {
		isNew, err := p.notifications.RecordIfNew(ctx, repository.NotificationRecord{
			StudentID:     n.student.ID,
			ScholarshipID: n.scholarship.ID,
			Tier:          n.score.Tier,
			OverallScore:  n.score.Overall,
		})
		if err != nil {
			summary.NotificationsFailed++
			log.Printf("pipeline=matching step=%s status=record_failed student=%s scholarship=%s error=%q",
				stepNotify, n.student.ID, n.scholarship.ID, err)
			continue
		}
		if !isNew {
			continue
		}

		if p.notifier == nil {
			summary.NotificationsSent++
			continue
		}
		if err := p.notifier.NotifyMatch(ctx, n.student, n.scholarship, n.score); err != nil {
			summary.NotificationsFailed++
			log.Printf("pipeline=matching step=%s status=send_failed student=%s scholarship=%s error=%q",
				stepNotify, n.student.ID, n.scholarship.ID, err)
			continue
		}
		summary.NotificationsSent++
	}
	return nil
}

// withRetry runs one named step, retrying transient failures with a short
// exponential backoff. Context cancellation aborts immediately.
func (p *MatchingPipeline) withRetry(ctx context.Context, step string, fn func(ctx context.Context) error) error {
	attempts := p.cfg.StepRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				log.Printf("pipeline=matching step=%s status=recovered attempt=%d", step, attempt)
			}
			return nil
		}

		log.Printf("pipeline=matching step=%s status=retry attempt=%d/%d error=%q", step, attempt, attempts, lastErr)
		if attempt < attempts {
			backoff := time.Duration(attempt) * 200 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return fmt.Errorf("step %s: %w", step, lastErr)
}

func (p *MatchingPipeline) finishRun(summary *RunSummary, status string) {
	if p.runs == nil || summary.RunID == uuid.Nil {
		return
	}
	finishedAt := summary.StartedAt.Add(summary.Duration)
	rec := repository.PipelineRunRecord{
		ID:                    summary.RunID,
		StartedAt:             summary.StartedAt,
		FinishedAt:            &finishedAt,
		Status:                status,
		StudentsProcessed:     summary.StudentsProcessed,
		ScholarshipsEvaluated: summary.PairsEvaluated,
		MatchesCreated:        summary.MatchesCreated,
		MatchesUpdated:        summary.MatchesUpdated,
		PairsFailed:           summary.PairsFailed,
		NotificationsSent:     summary.NotificationsSent,
		NotificationsFailed:   summary.NotificationsFailed,
	}
	// Finishing the run record is best effort; the run itself already
	// committed its matches.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.runs.Finish(ctx, rec); err != nil {
		log.Printf("pipeline=matching step=finish status=warn error=%q", err)
	}
}
