package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// ErrInvalidTimeRange indicates a timetable range that cannot be parsed.
var ErrInvalidTimeRange = errors.New("invalid time range")

var timeRangePattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])\s*-\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])\s*$`)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// On places the clock time on the calendar date of ref, in ref's location.
func (c ClockTime) On(ref time.Time) time.Time {
	year, month, day := ref.Date()
	return time.Date(year, month, day, c.Hour, c.Minute, 0, 0, ref.Location())
}

// TimeRange is a parsed "h:mm AM - h:mm PM" timetable range.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// SessionTiming is the time-relative state of a class session at an instant.
type SessionTiming struct {
	Valid          bool
	Status         string
	Progress       float64
	Remaining      time.Duration
	RemainingLabel string
}

// ParseTimeRange parses a 12-hour range such as "11:00 AM - 12:30 PM".
func ParseTimeRange(raw string) (TimeRange, error) {
	matches := timeRangePattern.FindStringSubmatch(raw)
	if matches == nil {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, raw)
	}

	start, err := parseClock(matches[1], matches[2], matches[3])
	if err != nil {
		return TimeRange{}, err
	}
	end, err := parseClock(matches[4], matches[5], matches[6])
	if err != nil {
		return TimeRange{}, err
	}

	if end.Hour*60+end.Minute < start.Hour*60+start.Minute {
		return TimeRange{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidTimeRange, raw)
	}

	return TimeRange{Start: start, End: end}, nil
}

func parseClock(hourRaw, minuteRaw, meridiem string) (ClockTime, error) {
	hour, err := strconv.Atoi(hourRaw)
	if err != nil || hour < 1 || hour > 12 {
		return ClockTime{}, fmt.Errorf("%w: hour %q", ErrInvalidTimeRange, hourRaw)
	}
	minute, err := strconv.Atoi(minuteRaw)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: minute %q", ErrInvalidTimeRange, minuteRaw)
	}

	switch strings.ToUpper(meridiem) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ClassifySession derives the lifecycle state of a session whose range is
// interpreted on now's calendar date. Both boundary instants count as ongoing.
// A malformed range never fails: it reports Valid=false with zero progress.
func ClassifySession(raw string, now time.Time) SessionTiming {
	timeRange, err := ParseTimeRange(raw)
	if err != nil {
		return SessionTiming{}
	}

	start := timeRange.Start.On(now)
	end := timeRange.End.On(now)

	switch {
	case now.After(end):
		return SessionTiming{Valid: true, Status: models.SessionStatusCompleted, Progress: 1}
	case now.Before(start):
		return SessionTiming{Valid: true, Status: models.SessionStatusUpcoming}
	}

	remaining := end.Sub(now)
	return SessionTiming{
		Valid:          true,
		Status:         models.SessionStatusOngoing,
		Progress:       sessionProgress(start, end, now),
		Remaining:      remaining,
		RemainingLabel: FormatRemaining(remaining),
	}
}

func sessionProgress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	progress := float64(now.Sub(start)) / float64(total)
	return math.Max(0, math.Min(1, progress))
}

// FormatRemaining renders the countdown shown for an ongoing class.
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "Class ended"
	}

	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 60 {
		return fmt.Sprintf("%dm left", minutes)
	}
	return fmt.Sprintf("%dh %dm left", minutes/60, minutes%60)
}
