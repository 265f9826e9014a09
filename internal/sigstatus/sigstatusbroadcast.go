package sigstatus

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Ndubireagan/Traffic-light-control/internal/logger"
	"github.com/Ndubireagan/Traffic-light-control/internal/sigmetadata"
)

var Log = logger.GetLogger()

type StatusBroadcast struct {
	broadcasting    bool                            //internal variable
	startStopCh     chan int                        //internal variable
	conn            *net.UDPConn                    //internal variable
	broadcastPeriod time.Duration                   //internal variable
	metaData        *sigmetadata.ControllerMetaData //internal variable
	snapshot        SnapshotFunc                    //internal variable
}

func NewStatusBroadcast(metaData *sigmetadata.ControllerMetaData, snapshot SnapshotFunc) *StatusBroadcast {
	return &StatusBroadcast{
		broadcasting: false,
		startStopCh:  make(chan int),
		metaData:     metaData,
		snapshot:     snapshot,
	}
}

func (sb *StatusBroadcast) Start(broadcastPeriod time.Duration) error {
	if sb.broadcasting {
		return errors.New("statusBroadcast is already broadcasting")
	}
	if sb.metaData == nil {
		return errors.New("metaData is nil")
	}
	if sb.snapshot == nil {
		return errors.New("snapshot function is nil")
	}
	sb.broadcastPeriod = broadcastPeriod

	udpAddress, err := net.ResolveUDPAddr("udp", sb.metaData.GetIPAddressPort())
	if err != nil {
		return fmt.Errorf("error resolving UDP Address: %v", err)
	}

	sb.conn, err = net.DialUDP("udp", nil, udpAddress)
	if err != nil {
		return fmt.Errorf("error creating UDP Socket: %v", err)
	}
	sb.conn.SetWriteBuffer(BUFFER_LENGTH)
	sb.broadcasting = true

	go func() {
		timeTicker := time.NewTicker(sb.broadcastPeriod)
		defer timeTicker.Stop()
		defer sb.conn.Close()

		for {
			select {
			case <-timeTicker.C:
				jsonData, err := json.Marshal(sb.snapshot())
				if err != nil {
					Log.Error().Msgf("Error marshalling JSON: %v", err)
					continue
				}
				_, err = sb.conn.Write(jsonData)
				if err != nil {
					Log.Error().Msgf("Error writing to UDP Socket: %v", err)
				}

				Log.Debug().Msgf("Sent Status: %v", string(jsonData))

			case val := <-sb.startStopCh:
				if val == 0 {
					Log.Info().Msgf("Stopping Status Broadcast task...")
					return
				}
			}
		}
	}()

	Log.Info().Msgf("Started To Broadcast Status")

	return nil
}

func (sb *StatusBroadcast) Stop() error {
	if !sb.broadcasting {
		return errors.New("cannot stop broadcasting if StatusBroadcast is not broadcasting")
	}

	sb.startStopCh <- 0
	sb.broadcasting = false

	return nil
}
