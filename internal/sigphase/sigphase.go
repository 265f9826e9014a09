package sigphase

import (
	"context"
	"sync"
	"time"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigcmd"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigconsts"
)

var Log = logger.GetLogger()

// NO_LANE marks the absence of a lane id, e.g. before the first green
const NO_LANE = -1

// CommandSender abstracts the transport so the controller can be tested
// without hardware attached
type CommandSender interface {
	Send(command sigcmd.SignalCommand) error
}

// PhaseController owns the signal phase state and drives the physical
// lights through the green -> yellow -> red sequence. At most one lane is
// ever non-red; the controller only needs to remember which lane was last
// green to know what to clear before advancing.
type PhaseController struct {
	sender    CommandSender
	clearance time.Duration //mandatory yellow hold before red
	minGreen  int           //seconds, floor for any green duration

	stateMtx      sync.Mutex //state is read by the status broadcast goroutine
	lastGreenLane int
	phase         sigconsts.Phase //phase of lastGreenLane
}

func NewPhaseController(sender CommandSender, clearance time.Duration, minGreen int) *PhaseController {
	return &PhaseController{
		sender:        sender,
		clearance:     clearance,
		minGreen:      minGreen,
		lastGreenLane: NO_LANE,
		phase:         sigconsts.None,
	}
}

func (pc *PhaseController) LastGreenLane() int {
	pc.stateMtx.Lock()
	defer pc.stateMtx.Unlock()
	return pc.lastGreenLane
}

func (pc *PhaseController) Phase() sigconsts.Phase {
	pc.stateMtx.Lock()
	defer pc.stateMtx.Unlock()
	return pc.phase
}

func (pc *PhaseController) setState(lane int, phase sigconsts.Phase) {
	pc.stateMtx.Lock()
	pc.lastGreenLane = lane
	pc.phase = phase
	pc.stateMtx.Unlock()
}

// Advance selects the next lane from the activation cycle and drives the
// transition: yellow on the previous lane, the clearance hold, red on the
// previous lane, then green on the selected lane. Selection is round-robin
// from the previous green's position in the cycle, so a single busy lane
// cannot starve the others. Returns the selected lane and its green
// duration in seconds; lane is NO_LANE when the cycle is empty or the
// clearance hold was cancelled.
//
// Send failures do not stop the advance: the state still moves forward and
// the physical lights resynchronise once the link is back, since the next
// transition is computed from the logical cycle, not read back from the
// actuator.
func (pc *PhaseController) Advance(ctx context.Context, cycle []int, durations map[int]int) (int, int, error) {
	if len(cycle) == 0 {
		return NO_LANE, 0, nil
	}

	previousLane := pc.LastGreenLane()

	nextIndex := 0
	if previousIndex := indexOfLane(cycle, previousLane); previousIndex != -1 {
		nextIndex = (previousIndex + 1) % len(cycle)
	}
	lane := cycle[nextIndex]

	duration := durations[lane]
	if duration < pc.minGreen {
		duration = pc.minGreen
	}

	if previousLane != NO_LANE {
		pc.emit(sigcmd.SignalCommand{Value: sigcmd.YellowCommand{Lane: previousLane}})
		pc.setState(previousLane, sigconsts.Yellow)

		clearanceTimer := time.NewTimer(pc.clearance)
		defer clearanceTimer.Stop()
		select {
		case <-ctx.Done():
			Log.Warn().Msgf("Clearance hold cancelled, abandoning transition to lane %d", lane)
			return NO_LANE, 0, ctx.Err()
		case <-clearanceTimer.C:
		}

		pc.emit(sigcmd.SignalCommand{Value: sigcmd.RedCommand{Lane: previousLane}})
	}

	pc.emit(sigcmd.SignalCommand{Value: sigcmd.GreenCommand{Lane: lane, Duration: duration}})
	pc.setState(lane, sigconsts.Green)

	return lane, duration, nil
}

func (pc *PhaseController) emit(command sigcmd.SignalCommand) {
	if err := pc.sender.Send(command); err != nil {
		Log.Warn().Msgf("Emitting %v failed: %v", command.String(), err)
	}
}

func indexOfLane(cycle []int, lane int) int {
	for index, cycleLane := range cycle {
		if cycleLane == lane {
			return index
		}
	}
	return -1
}
