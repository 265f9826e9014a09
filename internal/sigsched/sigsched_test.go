package sigsched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleScenarioA(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, durations := scheduler.Schedule([]int{5, 0, 3, 1})

	require.Equal(t, []int{0, 2, 3}, cycle)
	assert.Equal(t, map[int]int{0: 8, 2: 6, 3: 4}, durations)
}

func TestScheduleEmpty(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, durations := scheduler.Schedule([]int{0, 0, 0, 0})

	assert.Empty(t, cycle)
	assert.Empty(t, durations)
}

func TestScheduleSingleLane(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, durations := scheduler.Schedule([]int{0, 7, 0, 0})

	require.Equal(t, []int{1}, cycle)
	assert.Equal(t, 8, durations[1], "a lone lane gets the long green slot")
}

func TestScheduleTwoLanes(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, durations := scheduler.Schedule([]int{2, 0, 0, 9})

	require.Equal(t, []int{3, 0}, cycle)
	assert.Equal(t, 8, durations[3])
	assert.Equal(t, 4, durations[0])
}

func TestScheduleTieBreaksByLaneId(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, _ := scheduler.Schedule([]int{3, 3, 5, 3})

	assert.Equal(t, []int{2, 0, 1, 3}, cycle)
}

func TestScheduleNegativeCountsClampedToZero(t *testing.T) {
	scheduler := NewDefaultScheduler()

	cycle, _ := scheduler.Schedule([]int{-2, 4, -1, 0})

	assert.Equal(t, []int{1}, cycle)
}

func TestScheduleDurationFloor(t *testing.T) {
	scheduler := NewScheduler(8, 2, 1, 4)

	cycle, durations := scheduler.Schedule([]int{4, 3, 2, 1})

	require.Len(t, cycle, 4)
	for _, lane := range cycle {
		assert.GreaterOrEqual(t, durations[lane], 4, "lane %d duration below floor", lane)
	}
}

func TestScheduleAllPositiveLanesIncluded(t *testing.T) {
	scheduler := NewDefaultScheduler()

	counts := []int{1, 2, 3, 4}
	cycle, durations := scheduler.Schedule(counts)

	require.Len(t, cycle, 4)
	assert.Equal(t, []int{3, 2, 1, 0}, cycle)
	for _, lane := range cycle {
		assert.Contains(t, durations, lane)
	}
	assert.Equal(t, 6, durations[2], "interior lanes get the mid slot")
	assert.Equal(t, 6, durations[1], "interior lanes get the mid slot")
}

func TestScheduleDeterministic(t *testing.T) {
	scheduler := NewDefaultScheduler()

	counts := []int{7, 1, 7, 2}
	firstCycle, firstDurations := scheduler.Schedule(counts)
	secondCycle, secondDurations := scheduler.Schedule(counts)

	assert.Equal(t, firstCycle, secondCycle)
	assert.Equal(t, firstDurations, secondDurations)
}
