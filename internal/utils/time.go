package utils

import (
	"errors"
	"time"
)

// ParseFutureTime parses an RFC3339 timestamp, normalizes it to UTC and
// requires it to be strictly later than now.
func ParseFutureTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)

	if err != nil {
		return time.Time{}, errors.New("estimated_time must be a valid RFC3339 timestamp")
	}

	parsed = parsed.UTC()

	if !parsed.After(time.Now().UTC()) {
		return time.Time{}, errors.New("estimated_time must be in the future")
	}

	return parsed, nil
}
