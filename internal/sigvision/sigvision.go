package sigvision

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
)

var Log = logger.GetLogger()

// VehicleCounter is the boundary to the vision pipeline. The core never
// sees frames or bounding boxes, only the latest vehicle count per lane.
type VehicleCounter interface {
	CountVehicles(lane int) (int, error)
}

// CountInjector is implemented by counters that accept externally observed
// counts, e.g. from an out-of-process vision pipeline or an operator.
type CountInjector interface {
	Inject(lane int, count int) error
}

// CollectCounts queries every lane concurrently and joins the results into
// a single snapshot for the tick. A lane whose counter fails contributes
// zero so one bad camera never stalls the intersection.
func CollectCounts(counter VehicleCounter, numLanes int) []int {
	counts := make([]int, numLanes)

	waitGroup := sync.WaitGroup{}
	for lane := 0; lane < numLanes; lane++ {
		waitGroup.Add(1)
		go func(lane int) {
			defer waitGroup.Done()
			count, err := counter.CountVehicles(lane)
			if err != nil {
				Log.Warn().Msgf("Counting lane %d failed, assuming empty: %v", lane, err)
				return
			}
			if count < 0 {
				Log.Warn().Msgf("Counter reported %d vehicles on lane %d, clamping to 0", count, lane)
				return
			}
			counts[lane] = count
		}(lane)
	}
	waitGroup.Wait()

	return counts
}

// ManualCounter holds counts pushed in from outside the process. Used by
// the production binary, where the vision pipeline reports over the status
// socket.
type ManualCounter struct {
	mtx    sync.Mutex
	counts []int
}

func NewManualCounter(numLanes int) *ManualCounter {
	return &ManualCounter{counts: make([]int, numLanes)}
}

func (mc *ManualCounter) CountVehicles(lane int) (int, error) {
	mc.mtx.Lock()
	defer mc.mtx.Unlock()
	if lane < 0 || lane >= len(mc.counts) {
		return 0, fmt.Errorf("lane %d out of range [0, %d)", lane, len(mc.counts))
	}
	return mc.counts[lane], nil
}

func (mc *ManualCounter) Inject(lane int, count int) error {
	mc.mtx.Lock()
	defer mc.mtx.Unlock()
	if lane < 0 || lane >= len(mc.counts) {
		return fmt.Errorf("lane %d out of range [0, %d)", lane, len(mc.counts))
	}
	if count < 0 {
		count = 0
	}
	mc.counts[lane] = count
	return nil
}

// SimulatedCounter random-walks each lane's count, for demo runs with no
// cameras at all.
type SimulatedCounter struct {
	mtx    sync.Mutex
	counts []int
	rng    *rand.Rand
}

func NewSimulatedCounter(numLanes int, seed int64) *SimulatedCounter {
	return &SimulatedCounter{
		counts: make([]int, numLanes),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (sc *SimulatedCounter) CountVehicles(lane int) (int, error) {
	sc.mtx.Lock()
	defer sc.mtx.Unlock()
	if lane < 0 || lane >= len(sc.counts) {
		return 0, fmt.Errorf("lane %d out of range [0, %d)", lane, len(sc.counts))
	}

	sc.counts[lane] += sc.rng.Intn(3) - 1 //arrive, leave or stay
	if sc.counts[lane] < 0 {
		sc.counts[lane] = 0
	}
	return sc.counts[lane], nil
}

func (sc *SimulatedCounter) Inject(lane int, count int) error {
	sc.mtx.Lock()
	defer sc.mtx.Unlock()
	if lane < 0 || lane >= len(sc.counts) {
		return fmt.Errorf("lane %d out of range [0, %d)", lane, len(sc.counts))
	}
	if count < 0 {
		count = 0
	}
	sc.counts[lane] = count
	return nil
}

// AddVehicles queues extra vehicles on a lane, used by the simulator's
// keyboard bindings.
func (sc *SimulatedCounter) AddVehicles(lane int, vehicles int) error {
	sc.mtx.Lock()
	defer sc.mtx.Unlock()
	if lane < 0 || lane >= len(sc.counts) {
		return fmt.Errorf("lane %d out of range [0, %d)", lane, len(sc.counts))
	}
	sc.counts[lane] += vehicles
	if sc.counts[lane] < 0 {
		sc.counts[lane] = 0
	}
	return nil
}
