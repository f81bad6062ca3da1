package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/vidanutri/nutriview/internal/nutricore"
	"github.com/vidanutri/nutriview/internal/telemetry/metrics"
	"github.com/vidanutri/nutriview/internal/telemetry/tracing"
)

//go:generate mockgen -source=aggregator.go -destination=fetcher_mocks_test.go -package=dashboard

// Fetcher is the slice of the core API the aggregator pulls from.
type Fetcher interface {
	GetProfile(ctx context.Context, subjectID int) (nutricore.Profile, error)
	GetIntakeGoals(ctx context.Context, subjectID int) (nutricore.IntakeGoals, error)
	GetObjectiveAssignments(ctx context.Context, subjectID int) ([]nutricore.ObjectiveAssignment, error)
	GetObjective(ctx context.Context, objectiveID int) (nutricore.Objective, error)
}

// Update is the result of one fetch, tagged with the subject it was issued
// for. Exactly one of the payload fields is set on success, Err on failure.
type Update struct {
	SubjectID int
	Profile   *nutricore.Profile
	Goals     *nutricore.IntakeGoals
	Objective *nutricore.Objective
	Err       error
}

// Dashboard is the merged, render-ready view of one subject. Partial marks
// views where at least one fetch failed, with the failed parts left at their
// zero values.
type Dashboard struct {
	SubjectID int                  `json:"subjectId"`
	Profile   nutricore.Profile    `json:"profile"`
	Goals     nutricore.IntakeGoals `json:"goals"`
	Objective *nutricore.Objective `json:"objective,omitempty"`
	Metrics   DerivedMetrics       `json:"metrics"`
	Partial   bool                 `json:"partial"`
}

// Session accumulates updates for a single subject into a Dashboard. It is
// not safe for concurrent use: the aggregator funnels all updates through a
// single merge loop and applies them here one at a time.
type Session struct {
	subjectID int
	dashboard Dashboard
	err       error

	// OnRecompute, when set, is called after every derived metrics
	// recomputation, with the fresh metrics. Used for progressive rendering.
	OnRecompute func(DerivedMetrics)
}

func NewSession(subjectID int) *Session {
	return &Session{
		subjectID: subjectID,
		dashboard: Dashboard{SubjectID: subjectID},
	}
}

// Apply merges one update into the session. Updates tagged with a different
// subject are dropped, so a slow fetch from a previous subject can never
// bleed into the current view. Returns false for dropped updates.
//
// Derived metrics are recomputed whenever a weight signal is present, either
// a current weight from the profile or an ideal weight from the goals, so
// each successive update refines the previous render instead of waiting for
// all fetches to land.
func (s *Session) Apply(u Update) bool {
	if u.SubjectID != s.subjectID {
		return false
	}

	switch {
	case u.Err != nil:
		s.err = multierr.Append(s.err, u.Err)
		s.dashboard.Partial = true
	case u.Profile != nil:
		s.dashboard.Profile = *u.Profile
	case u.Goals != nil:
		s.dashboard.Goals = *u.Goals
	case u.Objective != nil:
		s.dashboard.Objective = u.Objective
	}

	if s.dashboard.Profile.CurrentWeightKg > 0 || s.dashboard.Goals.IdealWeightKg > 0 {
		s.dashboard.Metrics = ComputeMetrics(s.dashboard.Profile, s.dashboard.Goals)
		if s.OnRecompute != nil {
			s.OnRecompute(s.dashboard.Metrics)
		}
	}

	return true
}

// Result returns the merged dashboard and the combined error of all failed
// fetches. The dashboard is usable even when the error is non-nil.
func (s *Session) Result() (Dashboard, error) {
	return s.dashboard, s.err
}

// Aggregator fans out the dashboard fetches and merges whatever comes back.
type Aggregator struct {
	fetcher        Fetcher
	metricsManager *metrics.Manager
}

func NewAggregator(fetcher Fetcher, metricsManager *metrics.Manager) *Aggregator {
	return &Aggregator{
		fetcher:        fetcher,
		metricsManager: metricsManager,
	}
}

// Aggregate builds the dashboard for one subject. The three fetch chains run
// concurrently and their results are merged in arrival order; a failed chain
// marks the view partial instead of failing it. The returned error is the
// combined fetch error, for logging, and never suppresses the dashboard.
func (a *Aggregator) Aggregate(ctx context.Context, subjectID int) (_ Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.aggregate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()

	updates := make(chan Update, 4)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		profile, err := a.fetcher.GetProfile(ctx, subjectID)
		if err != nil {
			updates <- Update{SubjectID: subjectID, Err: fmt.Errorf("get profile: %w", err)}
			return
		}
		updates <- Update{SubjectID: subjectID, Profile: &profile}
	}()

	go func() {
		defer wg.Done()
		goals, err := a.fetcher.GetIntakeGoals(ctx, subjectID)
		if err != nil {
			updates <- Update{SubjectID: subjectID, Err: fmt.Errorf("get intake goals: %w", err)}
			return
		}
		updates <- Update{SubjectID: subjectID, Goals: &goals}
	}()

	go func() {
		defer wg.Done()
		objective, err := a.fetchAssignedObjective(ctx, subjectID)
		if err != nil {
			updates <- Update{SubjectID: subjectID, Err: err}
			return
		}
		if objective != nil {
			updates <- Update{SubjectID: subjectID, Objective: objective}
		}
	}()

	go func() {
		wg.Wait()
		close(updates)
	}()

	session := NewSession(subjectID)
	for u := range updates {
		if !session.Apply(u) {
			a.metricsManager.CounterStaleUpdatesDropped.Inc()
			log.Warnf("aggregate: dropped update for subject %d while assembling subject %d", u.SubjectID, subjectID)
		}
	}

	dashboard, err := session.Result()

	a.metricsManager.CounterAggregations.Inc()
	if dashboard.Partial {
		a.metricsManager.CounterPartialAggregations.Inc()
	}
	a.metricsManager.HistogramAggregationDuration.Observe(time.Since(start).Seconds())

	return dashboard, err
}

// fetchAssignedObjective resolves the subject's active objective in two hops:
// the assignment list, then the objective behind its most recent entry. The
// list's last element is the active assignment. No assignments is not an
// error, the dashboard simply renders without an objective.
func (a *Aggregator) fetchAssignedObjective(ctx context.Context, subjectID int) (*nutricore.Objective, error) {
	assignments, err := a.fetcher.GetObjectiveAssignments(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get objective assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	active := assignments[len(assignments)-1]
	objective, err := a.fetcher.GetObjective(ctx, active.ObjectiveID)
	if err != nil {
		return nil, fmt.Errorf("get objective %d: %w", active.ObjectiveID, err)
	}
	return &objective, nil
}
