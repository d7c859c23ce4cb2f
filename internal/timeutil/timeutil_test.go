package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExperimentTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "2024-05-01_09:30:05", ExperimentTimestamp(ts))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "1.235s", FormatDuration(1234900*time.Microsecond))
	assert.Equal(t, "0s", FormatDuration(0))
}
