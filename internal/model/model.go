package model

import (
	"fmt"
	"strings"
	"time"
)

//DayFormat is the calendar date layout used across config, CLI and reports
const DayFormat = "2006-01-02"

//DayStatus classifies the outcome of one calendar date in a bulk run
type DayStatus string

const (
	StatusSkipped     DayStatus = "Skipped"
	StatusUngenerable DayStatus = "Ungenerable"
	StatusSubmitted   DayStatus = "Submitted"
	StatusPartial     DayStatus = "PartialFailure"
	StatusFailed      DayStatus = "Failed"
)

//DayResult records what happened to a single date during a bulk run
type DayResult struct {
	Date     time.Time `json:"date"`
	Status   DayStatus `json:"status"`
	Reason   string    `json:"reason,omitempty"`
	Entrance string    `json:"entrance,omitempty"`
	Exit     string    `json:"exit,omitempty"`
	Errors   []string  `json:"errors,omitempty"`
}

//DateSet is a set of calendar dates keyed by their YYYY-MM-DD form
type DateSet map[string]struct{}

func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[t.Format(DayFormat)]
	return ok
}

//ParseDateSet parses a comma separated list of YYYY-MM-DD dates
func ParseDateSet(days string) (DateSet, error) {
	set := make(DateSet)
	if strings.TrimSpace(days) == "" {
		return set, nil
	}

	for _, raw := range strings.Split(days, ",") {
		day := strings.TrimSpace(raw)
		t, err := time.Parse(DayFormat, day)
		if err != nil {
			return nil, &InputValidationError{Field: "exception days", Value: day, Err: err}
		}
		set[t.Format(DayFormat)] = struct{}{}
	}
	return set, nil
}

//InputValidationError reports a malformed date or timestamp from operator input or configuration
type InputValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputValidationError) Unwrap() error {
	return e.Err
}
