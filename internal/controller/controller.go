package controller

import (
	"context"
	"sync"
	"time"

	"github.com/xyproto/randomstring"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigconfig"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigevent"
	"github.com/Ndubireagan/Traffic-light-control/internal/siglink"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigmetadata"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigphase"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigsched"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigstatus"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigutils"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigvision"
)

var Logger = logger.GetLogger()

const (
	EVENT_CHANNEL_SIZE     = 10
	IDENTIFIER_DEFAULT_LEN = 10
)

var _ sigphase.CommandSender = (*siglink.SerialLink)(nil)

// Controller wires the whole intersection together: once per tick it
// services the serial link, takes a joined count snapshot from the vision
// boundary, schedules the activation cycle and drives the phase
// transition.
type Controller struct {
	MetaData  *sigmetadata.ControllerMetaData //constant controller metadata
	Link      *siglink.SerialLink
	Status    *sigstatus.StatusNetwork
	Phase     *sigphase.PhaseController
	Scheduler *sigsched.Scheduler
	Counter   sigvision.VehicleCounter

	config       sigconfig.Config
	eventChannel chan sigevent.SignalEvent

	countsMtx    sync.Mutex //latestCounts is read by the status broadcast goroutine
	latestCounts []int

	greenUntil  time.Time //current green holds until here unless forced
	forceSwitch bool

	initialised bool //set to true if initialised via NewController Function
	running     bool

	//used for graceful shutdown
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
}

func NewController(config sigconfig.Config, identifier string, counter sigvision.VehicleCounter) *Controller {
	if identifier == "" {
		identifier = randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN) //this should be random enough
		Logger.Warn().Msgf("No controller identifier provided, generated random identifier \"%v\"", identifier)
	}

	metaData := &sigmetadata.ControllerMetaData{
		SoftwareVersion: sigutils.GetGitHash(),
		IpAddress:       sigutils.GetLocalIP(),
		PortNumber:      config.StatusPort,
		Identifier:      identifier,
		TransportPath:   config.TransportPath,
		BaudRate:        config.BaudRate,
		NumLanes:        config.NumLanes,
	}

	link := siglink.NewSerialLink(config.TransportPath, config.BaudRate, config.ReconnectSettle(), config.WarnWindow())
	eventChannel := make(chan sigevent.SignalEvent, EVENT_CHANNEL_SIZE)

	controller := &Controller{
		MetaData:     metaData,
		Link:         link,
		Phase:        sigphase.NewPhaseController(link, config.YellowClearance(), config.MinGreen),
		Scheduler:    sigsched.NewScheduler(config.LongGreen, config.MidGreen, config.ShortGreen, config.MinGreen),
		Counter:      counter,
		config:       config,
		eventChannel: eventChannel,
		latestCounts: make([]int, config.NumLanes),
		initialised:  true,
		running:      false,
	}
	controller.Status = sigstatus.NewStatusNetwork(metaData, controller.snapshot, eventChannel)

	return controller
}

// Events exposes the inbound event channel, e.g. for simulator keyboard
// bindings. The status listener feeds the same channel.
func (c *Controller) Events() chan<- sigevent.SignalEvent {
	return c.eventChannel
}

func (c *Controller) snapshot() sigstatus.StatusSnapshot {
	c.countsMtx.Lock()
	counts := make([]int, len(c.latestCounts))
	copy(counts, c.latestCounts)
	c.countsMtx.Unlock()

	return sigstatus.StatusSnapshot{
		MetaData:      *c.MetaData,
		Connected:     c.Link.IsConnected(),
		LastGreenLane: c.Phase.LastGreenLane(),
		Counts:        counts,
	}
}

func (c *Controller) Start() {
	if !c.initialised {
		Logger.Error().Msg("Controller not initialised")
		return
	}
	if c.running {
		Logger.Error().Msg("Controller already running")
		return
	}

	//Launch Threads One By One
	ctxLoop, cancelLoop := context.WithCancel(context.Background())
	wgLoop := &sync.WaitGroup{}
	c.waitGroupArray = append(c.waitGroupArray, wgLoop)
	c.runLoop(ctxLoop, wgLoop)
	c.cancelArray = append(c.cancelArray, cancelLoop)

	c.running = true
}

func (c *Controller) Stop() {
	if !c.initialised {
		Logger.Error().Msg("Controller not initialised")
		return
	}
	if !c.running {
		Logger.Error().Msg("Controller not running, so cannot stop controller")
		return
	}

	Logger.Debug().Msg("Stopping Controller")

	//Gracefully shutdown all threads one by one
	for i := len(c.cancelArray) - 1; i >= 0; i-- {
		c.cancelArray[i]()
		c.waitGroupArray[i].Wait()
	}

	// Status tasks are started by main but share the controller lifecycle
	if err := c.Status.Broadcast.Stop(); err != nil {
		Logger.Debug().Msgf("Status broadcast already stopped: %v", err)
	}
	if err := c.Status.Listen.Stop(); err != nil {
		Logger.Debug().Msgf("Status listener already stopped: %v", err)
	}

	if err := c.Link.Close(); err != nil {
		Logger.Error().Msgf("Error closing serial link: %v", err)
	}

	Logger.Debug().Msg("Stopped Controller")
	c.running = false
}

func (c *Controller) runLoop(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(1)

	go func() {
		defer waitGroup.Done()
		tickTicker := time.NewTicker(c.config.TickInterval())
		defer tickTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				Logger.Warn().Msgf("Controller tick loop Go routine has been signaled to stop")
				return
			case event := <-c.eventChannel:
				c.handleEvent(event)
			case <-tickTicker.C:
				c.tick(ctx)
			}
		}
	}()
}

func (c *Controller) handleEvent(event sigevent.SignalEvent) {
	switch evnt := event.Value.(type) {
	case sigevent.ForceSwitchEvent:
		Logger.Info().Msg("Force switch requested, truncating current green")
		c.forceSwitch = true
	case sigevent.LaneCountEvent:
		injector, ok := c.Counter.(sigvision.CountInjector)
		if !ok {
			Logger.Warn().Msgf("Counter cannot accept injected counts, dropping %v", event.EventType())
			return
		}
		if err := injector.Inject(evnt.Lane, evnt.Count); err != nil {
			Logger.Error().Msgf("Injecting count failed: %v", err)
		}
	default:
		Logger.Error().Msgf("Unknown event %v", event.EventType())
	}
}

// tick is one iteration of the control loop: reconnect housekeeping, one
// joined count snapshot, one scheduling decision, at most one phase
// transition.
func (c *Controller) tick(ctx context.Context) {
	if !c.config.SimulateLink {
		if err := c.Link.TryReconnect(); err != nil {
			Logger.Debug().Msgf("Reconnect pending: %v", err)
		}
	}

	counts := sigvision.CollectCounts(c.Counter, c.config.NumLanes)
	c.countsMtx.Lock()
	copy(c.latestCounts, counts)
	c.countsMtx.Unlock()

	// Hold the current green for its computed duration unless an operator
	// forced the switch
	if c.config.HonorGreenDuration && !c.forceSwitch && time.Now().Before(c.greenUntil) {
		return
	}

	cycle, durations := c.Scheduler.Schedule(counts)
	if len(cycle) == 0 {
		return
	}

	lane, duration, err := c.Phase.Advance(ctx, cycle, durations)
	if err != nil {
		Logger.Warn().Msgf("Advance abandoned: %v", err)
		return
	}
	if lane == sigphase.NO_LANE {
		return
	}

	c.greenUntil = time.Now().Add(time.Duration(duration) * time.Second)
	c.forceSwitch = false
	Logger.Info().Msgf("Lane %d is green for %ds (cycle %v)", lane, duration, cycle)
}
