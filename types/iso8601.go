package types

import (
	"fmt"
	"time"

	"apartment_rent/utils/errDefs"

	"github.com/kodergarten/iso8601duration"
)

type ISO8601Date = string
type ISO8601Duration = string

func ParseISO8601Duration(val ISO8601Duration, minDuration time.Duration) (dur time.Duration, err error) {
	duration, err := iso8601duration.ParseString(val)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", errDefs.ErrInvalidArgument, val, err)
	}
	dur = duration.ToDuration()
	if dur < minDuration {
		err = fmt.Errorf("%w: duration %q needs to be at least %v", errDefs.ErrInvalidArgument, val, minDuration)
		return
	}
	return
}

func ParseISO8601Date(val ISO8601Date) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, val)
	if err != nil {
		t, err = time.Parse(time.RFC3339, val)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", errDefs.ErrInvalidArgument, val)
	}
	return t.UTC(), nil
}
