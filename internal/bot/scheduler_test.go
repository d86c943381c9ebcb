package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresOncePerDay(t *testing.T) {
	w := &orderScheduler{orderTime: "11:30"}

	morning := time.Date(2024, 5, 7, 9, 0, 0, 0, time.Local)
	assert.False(t, w.due(morning))

	lunch := time.Date(2024, 5, 7, 11, 30, 5, 0, time.Local)
	assert.True(t, w.due(lunch))

	later := time.Date(2024, 5, 7, 14, 0, 0, 0, time.Local)
	assert.False(t, w.due(later), "already fired today")

	nextDay := time.Date(2024, 5, 8, 11, 31, 0, 0, time.Local)
	assert.True(t, w.due(nextDay))
}
