package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"nanowatch/internal/holiday"
	"nanowatch/internal/model"
	"nanowatch/internal/nanowatch"
)

// Minute-of-day window for generated clockings.
const (
	defaultEntranceEarliest = 9 * 60       // 09:00
	defaultEntranceLatest   = 10*60 + 45   // 10:45
	minimumShift            = 9 * 60       // entrance to exit gap
	defaultExitLatest       = 20 * 60      // 20:00
)

const (
	weekendReason   = "Weekend"
	exceptionReason = "Exception (Off Work)"
)

//Submitter is the single operation the generator needs from the session client
type Submitter interface {
	UpdateUserRequest(ctx context.Context, request nanowatch.UserRequest) (json.RawMessage, error)
}

type Generator struct {
	submitter  Submitter
	holidays   holiday.Calendar
	exceptions model.DateSet
	location   *time.Location
	rand       *rand.Rand

	entranceEarliest int
	entranceLatest   int
	exitLatest       int
}

type Option func(*Generator)

//WithRand injects a seedable random source for deterministic runs
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rand = r
	}
}

//WithLocation overrides the fixed offset stamped on generated timestamps
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		g.location = loc
	}
}

func NewGenerator(s Submitter, holidays holiday.Calendar, exceptions model.DateSet, opts ...Option) *Generator {
	g := &Generator{
		submitter:        s,
		holidays:         holidays,
		exceptions:       exceptions,
		location:         nanowatch.Tehran,
		rand:             rand.New(rand.NewSource(time.Now().UnixNano())),
		entranceEarliest: defaultEntranceEarliest,
		entranceLatest:   defaultEntranceLatest,
		exitLatest:       defaultExitLatest,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

//Run walks the date range inclusive and submits an entrance and an exit
//clocking for every working day. A submission failure is recorded on the day
//result and never stops the remaining range.
func (g *Generator) Run(ctx context.Context, startDate time.Time, endDate time.Time) []model.DayResult {
	contextLogger := log.WithContext(ctx)

	var results []model.DayResult
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		results = append(results, g.processDay(ctx, d))
	}

	contextLogger.Infof("Processed %d dates", len(results))
	return results
}

func (g *Generator) processDay(ctx context.Context, date time.Time) model.DayResult {
	contextLogger := log.WithContext(ctx)
	day := date.Format(model.DayFormat)
	result := model.DayResult{Date: date}

	if reason, off := g.offWorkReason(date); off {
		contextLogger.Infof("Skipping %s (%s)", day, reason)
		result.Status = model.StatusSkipped
		result.Reason = reason
		return result
	}

	entranceMinute := g.entranceEarliest + g.rand.Intn(g.entranceLatest-g.entranceEarliest+1)
	exitEarliest := entranceMinute + minimumShift
	if exitEarliest > g.exitLatest {
		// The entrance is discarded rather than resampled. A record with no
		// matching exit must never be submitted.
		contextLogger.Infof("Cannot generate an exit time for %s, entrance is too late", day)
		result.Status = model.StatusUngenerable
		result.Reason = "no exit time fits before the daily cutoff"
		return result
	}
	exitMinute := exitEarliest + g.rand.Intn(g.exitLatest-exitEarliest+1)

	entrance := g.stampAt(date, entranceMinute)
	exit := g.stampAt(date, exitMinute)
	result.Entrance = entrance.Format(nanowatch.StampLayout)
	result.Exit = exit.Format(nanowatch.StampLayout)
	contextLogger.Infof("Processing %s entrance=%s exit=%s", day, result.Entrance, result.Exit)

	result.Status = model.StatusSubmitted
	if err := g.submitClocking(ctx, entrance, nanowatch.DescriptionEntrance); err != nil {
		contextLogger.WithError(err).Errorf("Failed to submit the entrance clocking for %s", day)
		result.Errors = append(result.Errors, fmt.Sprintf("entrance: %v", err))
	}
	if err := g.submitClocking(ctx, exit, nanowatch.DescriptionExit); err != nil {
		contextLogger.WithError(err).Errorf("Failed to submit the exit clocking for %s", day)
		result.Errors = append(result.Errors, fmt.Sprintf("exit: %v", err))
	}

	switch len(result.Errors) {
	case 1:
		result.Status = model.StatusPartial
	case 2:
		result.Status = model.StatusFailed
	}
	return result
}

func (g *Generator) submitClocking(ctx context.Context, stamp time.Time, description string) error {
	_, err := g.submitter.UpdateUserRequest(ctx, nanowatch.UserRequest{
		Type:        nanowatch.RequestTypeAttendance,
		Start:       nanowatch.TimeValue(stamp),
		End:         nanowatch.TimeValue(stamp),
		SubType:     nanowatch.SubTypeClocking,
		Description: description,
	})
	return err
}

//offWorkReason classifies a date as non-working. A user declared exception
//wins the reported reason over the holiday calendar.
func (g *Generator) offWorkReason(date time.Time) (string, bool) {
	if g.exceptions.Contains(date) {
		return exceptionReason, true
	}
	if name, ok := g.holidays.Reason(date); ok {
		return name, true
	}
	switch date.Weekday() {
	case time.Thursday, time.Friday:
		return weekendReason, true
	}
	return "", false
}

func (g *Generator) stampAt(date time.Time, minuteOfDay int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minuteOfDay/60, minuteOfDay%60, 0, 0, g.location)
}
