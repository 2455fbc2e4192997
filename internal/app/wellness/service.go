package wellnessapp

import (
	"context"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/burenotti/go_wellness_backend/internal/observability"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"math"
	"sync"
	"time"
)

const (
	DefaultAge         = 30
	DefaultHistoryDays = 30
	DefaultReadTimeout = 5 * time.Second
)

type Options struct {
	// Location decides where a calendar day starts and ends.
	Location    *time.Location
	HistoryDays int
	ReadTimeout time.Duration
	Now         func() time.Time
}

// State is what the presentation layer shows for a user. A failed request only
// replaces Message; Current keeps the last successful score.
type State struct {
	Current   *wellness.Record
	Trend     float64
	Message   string
	UpdatedAt time.Time
}

type Orchestrator struct {
	identity   IdentityProvider
	profiles   ProfileProvider
	health     HealthProvider
	history    HistoryStore
	calculator Calculator
	logger     *slog.Logger

	loc         *time.Location
	historyDays int
	readTimeout time.Duration
	now         func() time.Time

	mu sync.Mutex
	// states holds the last State per user. Entries of other users that were not
	// updated today are dropped on the first apply of each day.
	states   map[string]*State
	prunedAt time.Time
}

func New(
	identity IdentityProvider,
	profiles ProfileProvider,
	health HealthProvider,
	history HistoryStore,
	calculator Calculator,
	logger *slog.Logger,
	opts Options,
) *Orchestrator {
	o := &Orchestrator{
		identity:    identity,
		profiles:    profiles,
		health:      health,
		history:     history,
		calculator:  calculator,
		logger:      logger,
		loc:         opts.Location,
		historyDays: opts.HistoryDays,
		readTimeout: opts.ReadTimeout,
		now:         opts.Now,
		states:      make(map[string]*State),
	}
	if o.loc == nil {
		o.loc = time.Local
	}
	if o.historyDays <= 0 {
		o.historyDays = DefaultHistoryDays
	}
	if o.readTimeout <= 0 {
		o.readTimeout = DefaultReadTimeout
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// LoadLatestOrCompute returns today's stored score, calculating and persisting it
// first when there is none yet.
func (o *Orchestrator) LoadLatestOrCompute(ctx context.Context) (*wellness.Record, error) {
	rec, _, err := o.run(ctx, false)
	return rec, err
}

// ComputeAndPersist calculates a fresh score and overwrites today's record.
func (o *Orchestrator) ComputeAndPersist(ctx context.Context) (*wellness.Record, error) {
	rec, _, err := o.run(ctx, true)
	return rec, err
}

// Trend compares the two newest stored totals of the signed in user.
func (o *Orchestrator) Trend(ctx context.Context) (float64, error) {
	history, err := o.History(ctx, o.historyDays)
	if err != nil {
		return 0, err
	}
	return wellness.Trend(ascending(history)), nil
}

// History returns up to days of stored scores, newest first.
func (o *Orchestrator) History(ctx context.Context, days int) ([]*wellness.Record, error) {
	userID, ok := o.identity.CurrentUserID(ctx)
	if !ok {
		return nil, ErrNotSignedIn
	}
	if days <= 0 {
		days = o.historyDays
	}
	return o.fetchHistory(ctx, userID, o.today(), days)
}

// Refresh is LoadLatestOrCompute reported through the user's State.
func (o *Orchestrator) Refresh(ctx context.Context) State {
	return o.apply(ctx, false)
}

// Recompute is ComputeAndPersist reported through the user's State.
func (o *Orchestrator) Recompute(ctx context.Context) State {
	return o.apply(ctx, true)
}

// CurrentState returns the last state without contacting any collaborator.
func (o *Orchestrator) CurrentState(ctx context.Context) State {
	userID, ok := o.identity.CurrentUserID(ctx)
	if !ok {
		return State{Message: MessageNotSignedIn}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if st, ok := o.states[userID]; ok {
		return *st
	}
	return State{}
}

func (o *Orchestrator) apply(ctx context.Context, force bool) State {
	userID, ok := o.identity.CurrentUserID(ctx)
	if !ok {
		observability.RecordFailure(reason(ErrNotSignedIn))
		return State{Message: MessageNotSignedIn}
	}

	rec, history, err := o.run(ctx, force)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.pruneStates(userID, o.today())

	st, ok := o.states[userID]
	if !ok {
		st = &State{}
		o.states[userID] = st
	}
	st.UpdatedAt = o.now()

	if err != nil {
		o.logger.Error("failed to load wellness score", "user_id", userID, "error", err)
		observability.RecordFailure(reason(err))
		st.Message = Message(err)
		return *st
	}

	st.Current = rec
	st.Trend = trendWith(history, rec)
	st.Message = ""
	return *st
}

func (o *Orchestrator) pruneStates(keep string, today time.Time) {
	if o.prunedAt.Equal(today) {
		return
	}
	for id, st := range o.states {
		if id != keep && wellness.Day(st.UpdatedAt, o.loc).Before(today) {
			delete(o.states, id)
		}
	}
	o.prunedAt = today
}

func (o *Orchestrator) run(ctx context.Context, force bool) (*wellness.Record, []*wellness.Record, error) {
	userID, ok := o.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil, ErrNotSignedIn
	}

	today := o.today()
	history, err := o.fetchHistory(ctx, userID, today, o.historyDays)
	if err != nil {
		return nil, nil, err
	}

	if !force && len(history) > 0 && history[0].Date.Equal(today) {
		observability.RecordScoreReused()
		return history[0], history, nil
	}

	rec, err := o.computeAndPersist(ctx, userID, today, history)
	if err != nil {
		return nil, nil, err
	}
	return rec, history, nil
}

func (o *Orchestrator) computeAndPersist(
	ctx context.Context,
	userID string,
	today time.Time,
	history []*wellness.Record,
) (*wellness.Record, error) {
	p, err := o.profiles.GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, unavailable("get profile", err)
	}

	age, ok := p.Age(o.now().In(o.loc))
	if !ok {
		o.logger.Debug("birth date unknown, using default age", "user_id", userID, "age", DefaultAge)
		age = DefaultAge
	}

	snapshot := wellness.Snapshot{
		Age: age,
		Sex: p.Sex,
	}
	if err := o.readMetrics(ctx, userID, today, &snapshot); err != nil {
		return nil, err
	}
	snapshot.Last7DayTotalScores = previousWeekTotals(history, today)

	components := o.calculator.Calculate(snapshot)

	// Nothing is persisted once the caller gave up.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := wellness.NewRecord(userID, today, components)
	if err := o.history.Upsert(ctx, rec); err != nil {
		return nil, unavailable("upsert score", err)
	}

	observability.RecordScoreComputed(rec.TotalScore)
	o.logger.Info("wellness score calculated",
		"user_id", userID,
		"date", today.Format(time.DateOnly),
		"total", rec.TotalScore,
		"category", rec.Category,
	)
	return rec, nil
}

// readMetrics fetches every reading kind in parallel. A read that runs out of its
// own timeout counts as absent; any other failure aborts the calculation.
func (o *Orchestrator) readMetrics(ctx context.Context, userID string, today time.Time, s *wellness.Snapshot) error {
	from, to := o.dayBounds(today)

	var mu sync.Mutex
	values := make(map[metric.Kind]float64, len(metric.Kinds))

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range metric.Kinds {
		kind := kind
		g.Go(func() error {
			readCtx, cancel := context.WithTimeout(gctx, o.readTimeout)
			defer cancel()

			v, ok, err := o.health.Reading(readCtx, userID, kind, from, to)
			if err != nil {
				if errors.Is(readCtx.Err(), context.DeadlineExceeded) && gctx.Err() == nil {
					o.logger.Warn("health read timed out", "user_id", userID, "kind", kind)
					observability.RecordReadTimeout(string(kind))
					return nil
				}
				return unavailable("read "+string(kind), err)
			}
			if !ok {
				return nil
			}

			mu.Lock()
			values[kind] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	for kind, v := range values {
		applyReading(s, kind, v)
	}
	return nil
}

func applyReading(s *wellness.Snapshot, kind metric.Kind, v float64) {
	asInt := func() *int {
		return lo.ToPtr(int(math.Round(v)))
	}

	switch kind {
	case metric.KindVO2Max:
		s.VO2Max = lo.ToPtr(v)
	case metric.KindRestingHeartRate:
		s.RestingHeartRate = lo.ToPtr(v)
	case metric.KindBloodOxygen:
		s.BloodOxygenPercent = lo.ToPtr(v)
	case metric.KindHeartRateVariability:
		s.HeartRateVariability = lo.ToPtr(v)
	case metric.KindSleepTotalHours:
		s.TotalSleepHours = lo.ToPtr(v)
	case metric.KindSleepDeepHours:
		s.DeepSleepHours = lo.ToPtr(v)
	case metric.KindSleepREMHours:
		s.REMSleepHours = lo.ToPtr(v)
	case metric.KindSleepAwakenings:
		s.SleepAwakenings = asInt()
	case metric.KindSleepAwakeMinutes:
		s.MinutesAwakeDuringSleep = lo.ToPtr(v)
	case metric.KindSteps:
		s.Steps = asInt()
	case metric.KindActiveMinutes:
		s.ActiveMinutes = asInt()
	case metric.KindWorkoutMinutes:
		s.WorkoutMinutes = asInt()
	}
}

func (o *Orchestrator) fetchHistory(
	ctx context.Context,
	userID string,
	today time.Time,
	days int,
) ([]*wellness.Record, error) {
	since := today.AddDate(0, 0, -(days - 1))
	history, err := o.history.FetchRecent(ctx, userID, since)
	if err != nil {
		return nil, unavailable("fetch history", err)
	}
	return history, nil
}

func (o *Orchestrator) today() time.Time {
	return wellness.Day(o.now(), o.loc)
}

// dayBounds converts a date into the instants where it starts and ends in o.loc.
func (o *Orchestrator) dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, o.loc)
	to := time.Date(y, m, d+1, 0, 0, 0, 0, o.loc)
	return from, to
}

// previousWeekTotals returns the totals of the 7 newest records dated before today in
// chronological order, or nil when fewer exist.
func previousWeekTotals(history []*wellness.Record, today time.Time) []float64 {
	previous := lo.Filter(history, func(r *wellness.Record, _ int) bool {
		return r.Date.Before(today)
	})
	if len(previous) < wellness.ConsistencyWindow {
		return nil
	}

	totals := lo.Map(previous[:wellness.ConsistencyWindow], func(r *wellness.Record, _ int) float64 {
		return r.TotalScore
	})
	return lo.Reverse(totals)
}

func ascending(newestFirst []*wellness.Record) []wellness.Components {
	components := lo.Map(newestFirst, func(r *wellness.Record, _ int) wellness.Components {
		return r.Components
	})
	return lo.Reverse(components)
}

// trendWith is the trend after rec replaced or joined history.
func trendWith(history []*wellness.Record, rec *wellness.Record) float64 {
	previous := lo.Filter(history, func(r *wellness.Record, _ int) bool {
		return r.Date.Before(rec.Date)
	})
	return wellness.Trend(append(ascending(previous), rec.Components))
}
