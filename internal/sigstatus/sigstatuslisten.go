package sigstatus

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Ndubireagan/Traffic-light-control/internal/sigevent"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigmetadata"
)

// StatusListen accepts operator and vision-pipeline datagrams on the
// status port and turns them into controller events:
//
//	FORCE              truncate the current green, advance next tick
//	COUNT <lane> <n>   report n vehicles on lane (0-based)
type StatusListen struct {
	listening    bool                            //internal variable
	startStopCh  chan int                        //internal variable
	conn         *net.UDPConn                    //internal variable
	metaData     *sigmetadata.ControllerMetaData //internal variable
	eventChannel chan<- sigevent.SignalEvent     //internal variable
}

func NewStatusListen(metaData *sigmetadata.ControllerMetaData, eventChannel chan<- sigevent.SignalEvent) *StatusListen {
	return &StatusListen{
		listening:    false,
		startStopCh:  make(chan int),
		conn:         nil,
		metaData:     metaData,
		eventChannel: eventChannel,
	}
}

func (sl *StatusListen) Start() error {
	udpAddress, err := net.ResolveUDPAddr("udp", sl.metaData.GetIPAddressPort())
	if err != nil {
		return fmt.Errorf("error resolving UDP Address: %v", err)
	}

	sl.conn, err = net.ListenUDP("udp", udpAddress)
	if err != nil {
		return fmt.Errorf("error creating UDP Socket: %v", err)
	}
	listenBuffer := make([]byte, BUFFER_LENGTH)
	sl.listening = true

	go func() {
		for {
			n, _, err := sl.conn.ReadFromUDP(listenBuffer)
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					Log.Debug().Msgf("Status listener socket closed, exiting read loop")
					return
				}
				Log.Error().Msgf("Error reading UDP message: %v", err)
				continue
			}
			event, err := parseDatagram(string(listenBuffer[:n]))
			if err != nil {
				Log.Error().Msgf("Dropping datagram: %v", err)
			} else {
				sl.eventChannel <- event
			}
		}
	}()

	go func() {
		defer sl.conn.Close()
		for {
			select {
			case val := <-sl.startStopCh:
				if val == 0 {
					Log.Info().Msgf("Stopping Status Listening task...")
					return
				}
			}
		}
	}()

	return nil
}

func (sl *StatusListen) Stop() error {
	if !sl.listening {
		return errors.New("cannot stop listening if StatusListen is not listening")
	}

	sl.startStopCh <- 0
	sl.listening = false

	return nil
}

func parseDatagram(message string) (sigevent.SignalEvent, error) {
	message = strings.TrimSpace(message)

	if message == "FORCE" {
		return sigevent.SignalEvent{Value: sigevent.ForceSwitchEvent{}}, nil
	}

	var lane, count int
	if _, err := fmt.Sscanf(message, "COUNT %d %d", &lane, &count); err == nil {
		return sigevent.LaneCountEvent{Lane: lane, Count: count}.Wrap(), nil
	}

	return sigevent.SignalEvent{}, fmt.Errorf("unknown datagram %q", message)
}
