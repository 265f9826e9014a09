package siglink

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	serial "github.com/allbin/go-serial"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigcmd"
)

var Log = logger.GetLogger()

var (
	// ErrTransportUnavailable means the link was down when a send was
	// attempted; the command is dropped and retried implicitly next tick
	// once the reconnect succeeds
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrReconnectFailed means the reconnect attempt could not open the
	// serial port; the link stays disconnected
	ErrReconnectFailed = errors.New("reconnect failed")
)

// transport is the subset of the serial port the link needs
type transport interface {
	io.WriteCloser
}

// SerialLink owns the byte-stream connection to the light actuator. No
// other component touches the transport handle.
type SerialLink struct {
	mtx       sync.Mutex
	port      transport
	connected bool

	path        string
	baudRate    int
	settleDelay time.Duration //remote endpoint boot time after open
	warnWindow  time.Duration //minimum gap between reconnect warnings

	lastWarnTime time.Time

	//Overridable for testing without hardware attached
	dial  func(path string, baudRate int) (transport, error)
	sleep func(duration time.Duration)
	now   func() time.Time
}

func NewSerialLink(path string, baudRate int, settleDelay, warnWindow time.Duration) *SerialLink {
	return &SerialLink{
		path:        path,
		baudRate:    baudRate,
		settleDelay: settleDelay,
		warnWindow:  warnWindow,
		dial:        dialSerialPort,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

func dialSerialPort(path string, baudRate int) (transport, error) {
	return serial.Open(path, serial.WithBaudRate(baudRate))
}

func (sl *SerialLink) IsConnected() bool {
	sl.mtx.Lock()
	defer sl.mtx.Unlock()
	return sl.connected
}

// Send encodes the command and writes it to the actuator. When the link is
// down it fails immediately without blocking and logs the frame it would
// have sent, so behaviour stays auditable without hardware attached. A
// failed write marks the link disconnected; the next tick's reconnect
// picks it up.
func (sl *SerialLink) Send(command sigcmd.SignalCommand) error {
	frame, err := command.Encode()
	if err != nil {
		return err
	}

	sl.mtx.Lock()
	defer sl.mtx.Unlock()

	if !sl.connected {
		Log.Warn().Msgf("Link down, would send %v", command.String())
		return ErrTransportUnavailable
	}

	if _, err := sl.port.Write(frame); err != nil {
		Log.Error().Msgf("Write failed for %v, marking link disconnected: %v", command.String(), err)
		sl.port.Close()
		sl.port = nil
		sl.connected = false
		return fmt.Errorf("write %v: %w", command.String(), ErrTransportUnavailable)
	}

	Log.Debug().Msgf("Sent %v", command.String())
	return nil
}

// TryReconnect opens the serial port if the link is down, then waits the
// settle interval so the microcontroller can finish initialising before
// commands arrive. A no-op when already connected. Failures are reported
// with a warning at most once per warnWindow to avoid flooding the log
// under sustained disconnection.
func (sl *SerialLink) TryReconnect() error {
	sl.mtx.Lock()
	if sl.connected {
		sl.mtx.Unlock()
		return nil
	}

	port, err := sl.dial(sl.path, sl.baudRate)
	if err != nil {
		if sl.now().Sub(sl.lastWarnTime) >= sl.warnWindow {
			Log.Warn().Msgf("Cannot open %v: %v", sl.path, err)
			sl.lastWarnTime = sl.now()
		}
		sl.mtx.Unlock()
		return fmt.Errorf("open %v: %w", sl.path, ErrReconnectFailed)
	}
	sl.port = port
	sl.mtx.Unlock()

	sl.sleep(sl.settleDelay)

	sl.mtx.Lock()
	sl.connected = true
	sl.mtx.Unlock()

	Log.Info().Msgf("Connected to %v at %v baud", sl.path, sl.baudRate)
	return nil
}

func (sl *SerialLink) Close() error {
	sl.mtx.Lock()
	defer sl.mtx.Unlock()

	if sl.port == nil {
		return nil
	}
	err := sl.port.Close()
	sl.port = nil
	sl.connected = false
	return err
}
