package timeutil

import "time"

// ExperimentTimestampLayout matches the timestamp format the training
// toolbox uses when naming experiment artifacts.
const ExperimentTimestampLayout = "2006-01-02_15:04:05"

func ExperimentTimestamp(t time.Time) string {
	return t.Format(ExperimentTimestampLayout)
}

// FormatDuration renders a duration for run reports, rounded to
// millisecond precision.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
