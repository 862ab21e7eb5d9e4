package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/decadog/internal/constants"
)

// ErrInvalidState is returned for a milestone state other than open, closed or all.
var ErrInvalidState = errors.New("invalid state, expected open, closed or all")

// sprintLength is the default span between a sprint's start and due dates.
const sprintLength = 14 * 24 * time.Hour

func parseIssueNumber(value string) (int, error) {
	number, err := strconv.Atoi(value)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidIssueNumber, value)
	}

	return number, nil
}

// parseSprintNumber checks value is a positive integer and returns it as
// written, since it becomes part of the milestone title.
func parseSprintNumber(value string) (string, error) {
	number, err := strconv.Atoi(value)
	if err != nil || number <= 0 {
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidSprintNumber, value)
	}

	return strconv.Itoa(number), nil
}

func parseEstimate(value string) (int, error) {
	estimate, err := strconv.Atoi(value)
	if err != nil || estimate < 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidEstimate, value)
	}

	return estimate, nil
}

// parseDate parses a YYYY-MM-DD date as midnight UTC.
func parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(constants.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", constants.ErrInvalidDate, value)
	}

	return date, nil
}

// today returns the current UTC date at midnight.
func today(now time.Time) time.Time {
	year, month, day := now.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
