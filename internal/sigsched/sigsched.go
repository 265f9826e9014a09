package sigsched

import (
	"sort"

	"github.com/samber/lo"

	"github.com/Ndubireagan/Traffic-light-control/internal/sigconsts"
)

// Scheduler turns a per-lane vehicle count vector into an ordered
// activation cycle and a per-lane green duration table. It is pure: no
// I/O, no retained state between calls, deterministic for a given input.
type Scheduler struct {
	LongGreen  int //busiest lane in the cycle
	MidGreen   int //interior lanes
	ShortGreen int //last lane in the cycle
	FloorGreen int //durations are never below this
}

func NewScheduler(longGreen, midGreen, shortGreen, floorGreen int) *Scheduler {
	return &Scheduler{
		LongGreen:  longGreen,
		MidGreen:   midGreen,
		ShortGreen: shortGreen,
		FloorGreen: floorGreen,
	}
}

func NewDefaultScheduler() *Scheduler {
	return NewScheduler(sigconsts.GREEN_LONG, sigconsts.GREEN_MID, sigconsts.GREEN_SHORT, sigconsts.GREEN_FLOOR)
}

type laneCount struct {
	lane  int
	count int
}

// Schedule returns the activation cycle (lane ids with a positive count,
// ordered by descending count, ties broken by ascending lane id) and the
// green duration in seconds for every lane in the cycle. An empty cycle
// means no lane has traffic and the caller must skip the tick entirely.
// Negative counts are treated as zero.
func (s *Scheduler) Schedule(counts []int) ([]int, map[int]int) {
	entries := lo.Map(counts, func(count int, lane int) laneCount {
		return laneCount{lane: lane, count: count}
	})
	entries = lo.Filter(entries, func(entry laneCount, _ int) bool {
		return entry.count > 0
	})

	if len(entries) == 0 {
		return nil, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].lane < entries[j].lane
	})

	cycle := lo.Map(entries, func(entry laneCount, _ int) int {
		return entry.lane
	})

	durations := make(map[int]int, len(cycle))
	for position, lane := range cycle {
		duration := s.MidGreen
		switch position {
		case 0:
			duration = s.LongGreen
		case len(cycle) - 1:
			duration = s.ShortGreen
		}
		if duration < s.FloorGreen {
			duration = s.FloorGreen
		}
		durations[lane] = duration
	}

	return cycle, durations
}
