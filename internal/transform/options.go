package transform

import "time"

// DateLayout is the ISO-8601 date form used for startDate/endDate
// comparisons.
const DateLayout = "2006-01-02"

// Options tunes a transformation run.
type Options struct {
	// Now returns the current time; the status rules compare against its
	// date. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) today() string {
	now := o.Now
	if now == nil {
		now = time.Now
	}

	return now().Format(DateLayout)
}
